package core

import (
	"errors"
	"math"
	"testing"
)

func TestValidateGroceryItem(t *testing.T) {
	tests := []struct {
		name    string
		item    *GroceryItem
		wantErr error
	}{
		{
			name:    "valid item",
			item:    &GroceryItem{Name: "Apples", Quantity: 6, Unit: "pieces"},
			wantErr: nil,
		},
		{
			name:    "fractional quantity",
			item:    &GroceryItem{Name: "Milk", Quantity: 1.5, Unit: "liter"},
			wantErr: nil,
		},
		{
			name:    "nil item",
			item:    nil,
			wantErr: ErrInvalidGroceryItem,
		},
		{
			name:    "empty name",
			item:    &GroceryItem{Name: "   ", Quantity: 1, Unit: "kg"},
			wantErr: ErrEmptyItemName,
		},
		{
			name:    "zero quantity",
			item:    &GroceryItem{Name: "Rice", Quantity: 0, Unit: "kg"},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "negative quantity",
			item:    &GroceryItem{Name: "Rice", Quantity: -2, Unit: "kg"},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "infinite quantity",
			item:    &GroceryItem{Name: "Rice", Quantity: math.Inf(1), Unit: "kg"},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "NaN quantity",
			item:    &GroceryItem{Name: "Rice", Quantity: math.NaN(), Unit: "kg"},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "empty unit",
			item:    &GroceryItem{Name: "Rice", Quantity: 1, Unit: ""},
			wantErr: ErrEmptyUnit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGroceryItem(tt.item)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateGroceryItem() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateGroceryItem() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateProduct(t *testing.T) {
	tests := []struct {
		name    string
		product *Product
		wantErr error
	}{
		{
			name:    "valid product",
			product: &Product{Name: "Milk", Supermarket: "FairPrice"},
			wantErr: nil,
		},
		{
			name:    "nil product",
			product: nil,
			wantErr: ErrInvalidProduct,
		},
		{
			name:    "empty name",
			product: &Product{Supermarket: "FairPrice"},
			wantErr: ErrEmptyProductName,
		},
		{
			name:    "empty supermarket",
			product: &Product{Name: "Milk"},
			wantErr: ErrEmptySupermarket,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProduct(tt.product)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateProduct() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateProduct() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSupermarketFilter(t *testing.T) {
	if err := ValidateSupermarketFilter(SupermarketFilter{}); err != nil {
		t.Errorf("ValidateSupermarketFilter() error = %v for empty filter", err)
	}

	ok := SupermarketFilter{Exclude: []string{"FairPrice", "Sheng Siong"}}
	if err := ValidateSupermarketFilter(ok); err != nil {
		t.Errorf("ValidateSupermarketFilter() error = %v for known stores", err)
	}

	bad := SupermarketFilter{Exclude: []string{"FairPrice", "Corner Shop"}}
	err := ValidateSupermarketFilter(bad)
	if !errors.Is(err, ErrUnknownSupermarket) {
		t.Errorf("ValidateSupermarketFilter() error = %v, want %v", err, ErrUnknownSupermarket)
	}
}
