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

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// ValidateGroceryItem validates a GroceryItem according to domain rules.
//
// Validation rules:
//   - Name must not be empty after trimming
//   - Quantity must be a positive finite number
//   - Unit must not be empty after trimming
func ValidateGroceryItem(item *GroceryItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidGroceryItem)
	}

	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidGroceryItem, ErrEmptyItemName)
	}

	if !IsValidQuantity(item.Quantity) {
		return fmt.Errorf("%w: %w", ErrInvalidGroceryItem, ErrInvalidQuantity)
	}

	if strings.TrimSpace(item.Unit) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidGroceryItem, ErrEmptyUnit)
	}

	return nil
}

// ValidateProduct validates a Product according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Supermarket must not be empty
//
// NOT validated (populated later or tolerated as free text):
//   - Vector (can be empty until the indexer runs)
//   - Price (currency-tolerant text, parsed where needed)
//   - ID (assigned at upsert time when absent)
func ValidateProduct(product *Product) error {
	if product == nil {
		return fmt.Errorf("%w: product is nil", ErrInvalidProduct)
	}

	if product.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, ErrEmptyProductName)
	}

	if product.Supermarket == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, ErrEmptySupermarket)
	}

	return nil
}

// ValidateSupermarketFilter checks every excluded store against the allow-list.
func ValidateSupermarketFilter(filter SupermarketFilter) error {
	for _, store := range filter.Exclude {
		if !IsKnownSupermarket(store) {
			return fmt.Errorf("%w: %q", ErrUnknownSupermarket, store)
		}
	}
	return nil
}

// IsKnownSupermarket reports whether the store name is on the allow-list.
func IsKnownSupermarket(name string) bool {
	return slices.Contains(KnownSupermarkets, name)
}

// IsValidQuantity reports whether q is a positive finite number.
func IsValidQuantity(q float64) bool {
	return q > 0 && !math.IsInf(q, 0) && !math.IsNaN(q)
}
