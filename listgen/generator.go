// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package listgen produces structured grocery lists from free-text
// requests and refines existing lists from user feedback.
package listgen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/grocerypick/core"
)

// TextGenerator is the slice of the provider chain listgen needs.
type TextGenerator interface {
	Generate(ctx context.Context, prompt, instruction string) (string, error)
}

const generateInstruction = `You are a grocery generator. You are to generate and
structure a grocery list from groceries, recipes, ingredients or even vague
descriptions given. Only return grocery and the count. Do not return any
other text or categories for the groceries. Use metric units. Do not entertain
any request outside of groceries.

Return the grocery list as a plain string, where each line represents a grocery item.
Each item must have the format: "name,quantity,unit"
Do NOT include any markdown or any headers like "Name, Quantity, Unit".
On top of the grocery list, summarise the entire grocery list with maximum of 10 words.
If there is any error, return !@#$%^. Always try to answer the
question to the best of your ability and return the answer in example output
form. Must be in example output form. If asked for suggestions of what to
eat and what to buy, just return the suggestion with the ingredients.
The summarised title must always be there regardless of what.
The title MUST BE A SUMMARY OF GROCERY ITEMS. DO NOT GIVE "TITLE".
Grocery fields MUST BE SEPARATED BY ,

Example output:
Weekly breakfast basics
Apples,6,pieces
Milk,1,liter
Bread,1,loaf`

const refineInstruction = `You are a grocery generator. You have previously
generated a grocery list with given prompts and information. You are
given a refined grocery list by the user. The refined grocery list contains
edits or prompts on how to better improve the grocery list. You are to
return an improved grocery list following the prompts. If there are no
prompts regarding a specific grocery, leave that grocery unchanged.

If there is any error, return !@#$%^. Always try to answer the question to
the best of your abilities and return the answer in the example output form.
Must be in the example output form. The summarised title must always be
there regardless of what.
The title MUST BE A SUMMARY OF GROCERY ITEMS. DO NOT GIVE "TITLE". The
summarised title is made from the summary of the new refined grocery.
Grocery fields MUST BE SEPARATED BY ,
When given suggestions, answer to the best of your abilities.
Do not give examples e.g. such as apples, carrots.
Give definite ingredients. Make the decision for the user.
Name,quantity,unit must be GIVEN. QUANTITY MUST BE GIVEN FOR ALL ITEMS
REGARDLESS IF THERE ISNT ANY.

Example output:
Weekly breakfast basics
Apples,6,pieces
Milk,1,liter
Bread,1,loaf`

// Service generates and refines grocery lists through a provider chain.
type Service struct {
	generator TextGenerator
	logger    *slog.Logger
}

type ServiceOption func(*Service)

func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(generator TextGenerator, opts ...ServiceOption) *Service {
	s := &Service{
		generator: generator,
		logger:    slog.Default().With("component", "listgen"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate builds a structured grocery list from a free-text request.
func (s *Service) Generate(ctx context.Context, request string, filter core.SupermarketFilter) (*core.StructuredList, error) {
	return s.run(ctx, request, generateInstruction, filter)
}

// Refine reworks an existing list according to free-text feedback. The
// current items are serialized into the prompt so the model sees them in
// the same shape it is asked to return.
func (s *Service) Refine(ctx context.Context, items []core.GroceryItem, feedback string, filter core.SupermarketFilter) (*core.StructuredList, error) {
	prompt := fmt.Sprintf("Current grocery list:\n%s\n\nUser feedback:\n%s", FormatItems(items), feedback)
	return s.run(ctx, prompt, refineInstruction, filter)
}

func (s *Service) run(ctx context.Context, prompt, instruction string, filter core.SupermarketFilter) (*core.StructuredList, error) {
	raw, err := s.generator.Generate(ctx, prompt, instruction)
	if err != nil {
		return nil, err
	}

	list, err := Parse(raw, s.logger)
	if err != nil {
		return nil, err
	}
	list.SupermarketFilter = filter

	s.logger.Info("structured list generated",
		"title", list.Title,
		"items", len(list.Items))
	return list, nil
}
