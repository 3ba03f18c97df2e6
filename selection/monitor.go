package selection

import "github.com/poiesic/grocerypick/core"

// SelectionMonitor provides hooks to observe the selection process.
// Implement this interface to track candidate retrieval, provider decisions
// and fallbacks during product selection.
type SelectionMonitor interface {
	Start(query string)
	AfterRetrieval(candidates []core.Product)
	ProviderResponse(raw string)
	ParseFallback(raw string, reason error)
	OutOfRangeFallback(productNumber int)
	Finish(selected *core.Product, amount int)
}

// noopMonitor is a no-op implementation of SelectionMonitor
type noopMonitor struct{}

var _ SelectionMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                      {}
func (n *noopMonitor) AfterRetrieval(_ []core.Product)     {}
func (n *noopMonitor) ProviderResponse(_ string)           {}
func (n *noopMonitor) ParseFallback(_ string, _ error)     {}
func (n *noopMonitor) OutOfRangeFallback(_ int)            {}
func (n *noopMonitor) Finish(_ *core.Product, _ int)       {}
