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

// Package selection picks the cheapest suitable catalog product for a
// grocery query by combining vector retrieval with a generative
// comparison step.
package selection

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/poiesic/grocerypick/core"
)

const (
	// DefaultThreshold is the minimum cosine similarity for a candidate.
	DefaultThreshold float32 = 0.5
	// DefaultLimit bounds how many candidates retrieval returns.
	DefaultLimit = 5
	// DefaultTopN bounds how many candidates the provider is shown.
	DefaultTopN = 3
)

const selectionInstruction = `You are a grocery selection assistant. Your goal is to find the CHEAPEST TOTAL COST to fulfill the user's request.

IMPORTANT: Calculate the total cost for each option:
1. Match the product to what the user wants
2. Calculate how many units are needed (e.g., for "100 eggs" with "30 eggs pack" = 4 packs needed)
3. Calculate total cost = (price per unit) x (number of units needed)
4. Choose the option with the LOWEST TOTAL COST

Example: User wants "100 eggs"
- Option A: 30 eggs pack at $5 each, need 4 packs, total $20
- Option B: 12 eggs pack at $2 each, need 9 packs, total $18
- Choose Option B (cheaper total cost)

You must return ONLY a valid JSON object with this exact structure:
{
  "productNumber": 2,
  "amount": 9
}

productNumber: The number of the product with the LOWEST TOTAL COST
amount: How many units are needed to meet the user's requirement
Do not include any text or explanation outside the JSON object.`

// Retriever is the slice of the retrieval layer the selector needs.
type Retriever interface {
	Retrieve(ctx context.Context, query string, threshold float32, limit int, filter core.SupermarketFilter) ([]core.Product, error)
}

// TextGenerator produces text through a provider chain.
type TextGenerator interface {
	Generate(ctx context.Context, prompt, instruction string) (string, error)
}

// Selector chooses one product per query from retrieved candidates.
type Selector struct {
	retriever Retriever
	generator TextGenerator
	threshold float32
	limit     int
	topN      int
	monitor   SelectionMonitor
	logger    *slog.Logger
}

type Option func(*Selector)

// WithThreshold overrides the minimum candidate similarity.
func WithThreshold(threshold float32) Option {
	return func(s *Selector) {
		s.threshold = threshold
	}
}

// WithLimit overrides how many candidates retrieval returns.
func WithLimit(limit int) Option {
	return func(s *Selector) {
		s.limit = limit
	}
}

// WithTopN overrides how many candidates the provider is shown.
func WithTopN(topN int) Option {
	return func(s *Selector) {
		s.topN = topN
	}
}

func WithMonitor(monitor SelectionMonitor) Option {
	return func(s *Selector) {
		s.monitor = monitor
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Selector) {
		s.logger = logger
	}
}

func NewSelector(retriever Retriever, generator TextGenerator, opts ...Option) *Selector {
	s := &Selector{
		retriever: retriever,
		generator: generator,
		threshold: DefaultThreshold,
		limit:     DefaultLimit,
		topN:      DefaultTopN,
		monitor:   &noopMonitor{},
		logger:    slog.Default().With("component", "selection"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// providerChoice is the JSON shape the provider is instructed to return.
type providerChoice struct {
	ProductNumber int     `json:"productNumber"`
	Amount        float64 `json:"amount"`
}

// Selection is one resolved product choice.
type Selection struct {
	SelectedProduct *core.Product
	Amount          int
	AllProducts     []core.Product
}

// SelectBest retrieves candidates for query and asks the provider chain to
// pick the cheapest total-cost option among the top candidates. Provider
// formatting noise never fails the call once candidates exist: any response
// that cannot be parsed, or that points outside the shown range, falls back
// to the first candidate with amount 1.
func (s *Selector) SelectBest(ctx context.Context, query string, filter core.SupermarketFilter) (*Selection, error) {
	s.monitor.Start(query)

	candidates, err := s.retriever.Retrieve(ctx, query, s.threshold, s.limit, filter)
	if err != nil {
		return nil, err
	}
	s.monitor.AfterRetrieval(candidates)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: query %q", core.ErrNoCandidates, query)
	}

	shown := candidates
	if len(shown) > s.topN {
		shown = shown[:s.topN]
	}

	prompt := buildSelectionPrompt(query, shown)
	raw, err := s.generator.Generate(ctx, prompt, selectionInstruction)
	if err != nil {
		return nil, err
	}
	s.monitor.ProviderResponse(raw)

	selected, amount := s.resolveChoice(raw, shown)
	s.monitor.Finish(selected, amount)
	return &Selection{
		SelectedProduct: selected,
		Amount:          amount,
		AllProducts:     candidates,
	}, nil
}

// resolveChoice maps the provider's raw response onto the shown candidates,
// falling back to the first candidate with amount 1 when the response is
// unusable.
func (s *Selector) resolveChoice(raw string, shown []core.Product) (*core.Product, int) {
	var choice providerChoice
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &choice); err != nil {
		s.monitor.ParseFallback(raw, err)
		s.logger.Warn("unparseable selection response, using first candidate", "error", err)
		return &shown[0], 1
	}

	if choice.ProductNumber < 1 || choice.ProductNumber > len(shown) {
		s.monitor.OutOfRangeFallback(choice.ProductNumber)
		s.logger.Warn("selection out of range, using first candidate",
			"productNumber", choice.ProductNumber,
			"candidates", len(shown))
		return &shown[0], 1
	}

	return &shown[choice.ProductNumber-1], resolveAmount(choice.Amount)
}

// maxAmount bounds how many units a selection may ask for. Anything beyond
// it is provider noise, not a plausible purchase.
const maxAmount = 1 << 20

// resolveAmount rounds a provider-supplied amount up to a whole unit.
// Missing, non-positive, non-finite or absurdly large values resolve to 1
// so the positive-amount invariant holds no matter what the provider sent.
func resolveAmount(raw float64) int {
	if raw <= 0 || math.IsNaN(raw) || raw > maxAmount {
		return 1
	}
	return int(math.Ceil(raw))
}

// buildSelectionPrompt enumerates candidates in a compact human-readable
// form so the provider can reference them by number.
func buildSelectionPrompt(query string, candidates []core.Product) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "User request: %q\n\nAvailable products:\n", query)
	for i, p := range candidates {
		store := p.Supermarket
		if store == "" {
			store = "Unknown store"
		}
		qty := p.Quantity
		if qty == "" {
			qty = "N/A"
		}
		fmt.Fprintf(&sb, "%d. %s - %s at %s (%s)\n", i+1, p.Name, p.Price, store, qty)
	}
	sb.WriteString("\nCalculate the total cost for each product option and select the one with the CHEAPEST TOTAL COST to fulfill the request.")
	return sb.String()
}

// stripCodeFences removes a leading/trailing markdown fence some providers
// wrap JSON in despite instructions.
func stripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
