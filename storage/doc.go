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


// Package storage provides the storage abstraction layer for grocerypick.
//
// This package defines the ProductRepository interface that decouples the
// matching core from any concrete similarity index or catalog store. The core
// only ever talks to this boundary; the storage/badger sub-package ships a
// reference adapter over BadgerDB suitable for tests and single-node
// deployments, and alternative backends (pgvector, a hosted index) can be
// plugged in without touching business logic.
//
// # Constructor Return Type Pattern
//
// Public constructors return interface types to enforce abstraction:
//
//	repo, err := badger.NewProductRepository(backend) // returns storage.ProductRepository
//
// # Thread Safety
//
// All repository implementations must be thread-safe: the batch orchestrator
// issues concurrent similarity queries from within a batch.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and timeout
// support.
package storage
