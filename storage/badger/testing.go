package badger

import (
	"github.com/poiesic/grocerypick/storage"
)

// NewMemoryRepository creates an in-memory product repository for tests.
// The caller owns both the repository and the backend; close the backend when
// done.
func NewMemoryRepository() (storage.ProductRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, err
	}

	repo, err := NewProductRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	return repo, backend, nil
}
