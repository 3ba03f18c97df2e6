package badger

import (
	"fmt"

	"github.com/poiesic/grocerypick/core"
)

// Key prefixes for different data types
const (
	productRecordPrefix  = "prodrec"
	productCatalogPrefix = "prodcat"
)

// makeProductKey generates a key for a product record by content ID.
func makeProductKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", productRecordPrefix, id))
}

// makeCatalogIDKey generates a key for the catalog-ID index.
// Maps the external string catalog ID to the content ID of the record.
func makeCatalogIDKey(catalogID string) []byte {
	return []byte(productCatalogPrefix + ":" + catalogID)
}
