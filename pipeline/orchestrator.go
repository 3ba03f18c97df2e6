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

// Package pipeline fans product selection out over a whole grocery list
// in bounded, rate-limited batches with per-item failure isolation.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/grocerypick/core"
	"github.com/poiesic/grocerypick/selection"
)

const (
	// DefaultBatchSize bounds how many selections run concurrently.
	DefaultBatchSize = 5
	// DefaultBatchDelay paces consecutive batches against provider rate limits.
	DefaultBatchDelay = 500 * time.Millisecond
)

// ProductSelector is the slice of the selection layer the orchestrator needs.
type ProductSelector interface {
	SelectBest(ctx context.Context, query string, filter core.SupermarketFilter) (*selection.Selection, error)
}

// Orchestrator runs product selection for every item of a grocery list.
type Orchestrator struct {
	selector   ProductSelector
	pool       *ants.Pool
	batchSize  int
	batchDelay time.Duration
	logger     *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithBatchSize sets how many items are processed concurrently per batch.
func WithBatchSize(size int) Option {
	return func(o *Orchestrator) error {
		if size < 1 {
			return fmt.Errorf("batch size must be positive, got %d", size)
		}
		if o.pool != nil {
			o.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		o.pool = pool
		o.batchSize = size
		return nil
	}
}

// WithBatchDelay sets the pause between consecutive batches.
func WithBatchDelay(delay time.Duration) Option {
	return func(o *Orchestrator) error {
		if delay < 0 {
			return fmt.Errorf("batch delay must not be negative, got %v", delay)
		}
		o.batchDelay = delay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates a batch orchestrator around a product selector.
func NewOrchestrator(selector ProductSelector, opts ...Option) (*Orchestrator, error) {
	if selector == nil {
		return nil, ErrSelectorRequired
	}

	pool, err := ants.NewPool(DefaultBatchSize)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		selector:   selector,
		pool:       pool,
		batchSize:  DefaultBatchSize,
		batchDelay: DefaultBatchDelay,
		logger:     slog.Default().With("component", "pipeline"),
	}

	for _, opt := range opts {
		if optErr := opt(o); optErr != nil {
			o.Release()
			return nil, optErr
		}
	}

	return o, nil
}

// ProcessAll resolves one SelectionResult per item, in input order. Items
// within a batch run concurrently; a failed or panicking item produces a
// result carrying its error and never aborts siblings. Context cancellation
// is honored between batches, not inside one.
func (o *Orchestrator) ProcessAll(ctx context.Context, items []core.GroceryItem, filter core.SupermarketFilter) []core.SelectionResult {
	results := make([]core.SelectionResult, len(items))

	for start := 0; start < len(items); start += o.batchSize {
		if start > 0 {
			select {
			case <-ctx.Done():
				o.fillCancelled(results, items, start, ctx.Err())
				return results
			case <-time.After(o.batchDelay):
			}
		}

		end := start + o.batchSize
		if end > len(items) {
			end = len(items)
		}
		o.runBatch(ctx, items[start:end], filter, results[start:end])

		o.logger.Debug("batch complete",
			"from", start,
			"to", end,
			"total", len(items))
	}

	return results
}

// runBatch submits every item of the batch to the worker pool and joins.
// Result slots are index-stable so completion order never matters.
func (o *Orchestrator) runBatch(ctx context.Context, items []core.GroceryItem, filter core.SupermarketFilter, results []core.SelectionResult) {
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		item := items[i]
		slot := &results[i]

		err := o.pool.Submit(func() {
			defer wg.Done()
			*slot = o.selectOne(ctx, item, filter)
		})
		if err != nil {
			wg.Done()
			*slot = failedResult(item, err)
		}
	}
	wg.Wait()
}

// selectOne runs a single selection, converting errors and panics into a
// failed result for that item alone.
func (o *Orchestrator) selectOne(ctx context.Context, item core.GroceryItem, filter core.SupermarketFilter) (result core.SelectionResult) {
	query := buildQuery(item)
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("selection panicked", "item", item.Name, "panic", r)
			result = failedResult(item, fmt.Errorf("selection panicked: %v", r))
		}
	}()

	sel, err := o.selector.SelectBest(ctx, query, filter)
	if err != nil {
		o.logger.Warn("selection failed", "item", item.Name, "err", err)
		return failedResult(item, err)
	}

	return core.SelectionResult{
		Item:            item.Name,
		SelectedProduct: sel.SelectedProduct,
		Amount:          sel.Amount,
		AllProducts:     sel.AllProducts,
		Query:           query,
	}
}

func (o *Orchestrator) fillCancelled(results []core.SelectionResult, items []core.GroceryItem, from int, err error) {
	o.logger.Warn("processing cancelled", "completed", from, "total", len(items))
	for i := from; i < len(items); i++ {
		results[i] = failedResult(items[i], err)
	}
}

// Release releases the worker pool.
// The orchestrator should not be used after calling Release.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}

// buildQuery renders a grocery item as the retrieval query string.
func buildQuery(item core.GroceryItem) string {
	return fmt.Sprintf("%s %v %s", item.Name, item.Quantity, item.Unit)
}

func failedResult(item core.GroceryItem, err error) core.SelectionResult {
	return core.SelectionResult{
		Item:  item.Name,
		Err:   err.Error(),
		Query: buildQuery(item),
	}
}
