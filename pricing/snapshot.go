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

// Package pricing implements the purchased-price snapshot policy for
// grocery list items.
package pricing

import (
	"strconv"
	"strings"
)

// ItemUpdate describes a pending list-item status change. PurchasedPrice
// carries a manual override when set.
type ItemUpdate struct {
	Purchased      bool
	PurchasedPrice *float64
}

// PrepareItemUpdate resolves what purchased price an update should record.
//
// On transition to purchased, a manual override always wins. Without one,
// the current catalog price is snapshotted exactly once: an already
// recorded price is never overwritten, so later catalog changes cannot
// retroactively alter what was paid. Unmarking clears the recorded price.
func PrepareItemUpdate(update ItemUpdate, currentCatalogPrice string, existingPurchasedPrice *float64) ItemUpdate {
	if !update.Purchased {
		update.PurchasedPrice = nil
		return update
	}

	if update.PurchasedPrice != nil {
		return update
	}

	if existingPurchasedPrice != nil {
		update.PurchasedPrice = existingPurchasedPrice
		return update
	}

	if price, ok := ParsePrice(currentCatalogPrice); ok {
		update.PurchasedPrice = &price
	}
	return update
}

// ParsePrice extracts a numeric value from a catalog price string,
// tolerating currency symbols and thousands separators ("$3.50", "S$1,200").
func ParsePrice(priceString string) (float64, bool) {
	cleaned := strings.TrimSpace(priceString)
	cleaned = strings.NewReplacer("$", "", ",", "", "S", "").Replace(cleaned)
	if cleaned == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}
