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


package core

import "errors"

// Pipeline stage errors. Callers branch on these with errors.Is; wrapping
// preserves the underlying cause.
var (
	// ErrEmbeddingUnavailable indicates the query embedding could not be
	// generated. Distinct from index errors so callers can tell the two
	// stages apart.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrRetrievalFailure indicates the similarity index query failed.
	ErrRetrievalFailure = errors.New("retrieval failure")

	// ErrNoCandidates indicates retrieval succeeded but matched nothing.
	ErrNoCandidates = errors.New("no candidate products")

	// ErrGenerationUnavailable indicates every configured generative provider
	// failed. This is the sole terminal error in the generative layer.
	ErrGenerationUnavailable = errors.New("all generative providers failed")

	// ErrParseFailure indicates structuring produced zero valid items or the
	// provider returned its reject sentinel.
	ErrParseFailure = errors.New("unparseable generative output")
)

// Domain validation errors
var (
	// ErrInvalidGroceryItem indicates a GroceryItem failed validation.
	ErrInvalidGroceryItem = errors.New("invalid grocery item")

	// ErrInvalidProduct indicates a Product failed validation.
	ErrInvalidProduct = errors.New("invalid product")

	// ErrEmptyItemName indicates the item Name field is empty.
	ErrEmptyItemName = errors.New("item name cannot be empty")

	// ErrInvalidQuantity indicates a quantity that is not a positive finite number.
	ErrInvalidQuantity = errors.New("quantity must be a positive finite number")

	// ErrEmptyUnit indicates the item Unit field is empty.
	ErrEmptyUnit = errors.New("unit cannot be empty")

	// ErrEmptyProductName indicates the product Name field is empty.
	ErrEmptyProductName = errors.New("product name cannot be empty")

	// ErrEmptySupermarket indicates the product Supermarket field is empty.
	ErrEmptySupermarket = errors.New("supermarket cannot be empty")

	// ErrUnknownSupermarket indicates a filter references a store outside the allow-list.
	ErrUnknownSupermarket = errors.New("unknown supermarket")
)
