package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for catalog entities.
// It is generated using content-based hashing so that repeated uploads of the
// same catalog row resolve to the same key.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// GroceryItem is a single requested grocery entry: what the user wants,
// how much of it, and in which unit. Parsed once and never mutated.
type GroceryItem struct {
	Name     string
	Quantity float64
	Unit     string
}

// Product is a catalog product considered as a candidate match.
// Price is kept as text because catalog feeds carry currency symbols and
// free-form promotions; parsing happens where a number is actually needed.
type Product struct {
	ID          string    `json:"product_id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Supermarket string    `json:"supermarket"`
	Quantity    string    `json:"quantity,omitempty"` // quantity descriptor as printed on the shelf, e.g. "480g"
	Similarity  float32   `json:"similarity,omitempty"`
	ProductURL  string    `json:"product_url,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Vector      []float32 `json:"-"` // embedding for similarity search (populated at upsert time)
}

// ContentID derives the deterministic catalog key for this product from its
// store and name. Used as the upsert key so re-uploading a catalog replaces
// rows instead of duplicating them.
func (p *Product) ContentID() ID {
	return IDFromContent("(" + p.Supermarket + "," + p.Name + ")")
}

// ProductMatch is a product returned from vector similarity search with its score.
type ProductMatch struct {
	Product *Product
	Score   float32
}

// SelectionResult is the per-item outcome of running the product selector.
// Exactly one is produced for every requested item; a failed item carries
// Err and a nil SelectedProduct instead of aborting its siblings.
type SelectionResult struct {
	Item            string
	SelectedProduct *Product
	Amount          int
	AllProducts     []Product
	Err             string
	Query           string
}

// Failed reports whether this result represents a per-item failure.
func (r *SelectionResult) Failed() bool {
	return r.Err != ""
}

// StructuredList is a grocery list recovered from raw generative output.
// Metadata is a human-readable creation timestamp generated locally at parse
// time, never sourced from the provider.
type StructuredList struct {
	Title             string
	Metadata          string
	Items             []GroceryItem
	SupermarketFilter SupermarketFilter
}

// SupermarketFilter excludes stores from retrieval. Store names are validated
// against KnownSupermarkets.
type SupermarketFilter struct {
	Exclude []string
}

// Empty reports whether the filter excludes nothing.
func (f SupermarketFilter) Empty() bool {
	return len(f.Exclude) == 0
}

// KnownSupermarkets is the allow-list of store names a filter may reference.
var KnownSupermarkets = []string{
	"FairPrice",
	"Cold Storage",
	"Sheng Siong",
}
