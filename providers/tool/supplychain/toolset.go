// Package supplychain provides the ten domain tools the disruption-response
// agent dispatches against: grounding, data retrieval, analysis, planning and
// (mock) execution. All tools read from an in-memory Dataset except the
// supplier document search, which queries a pluggable DocSearcher.
package supplychain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/procurea/scdra/providers/tool"
	"github.com/procurea/scdra/providers/vectorstore"
)

// DocSearcher is the similarity-search capability behind search_supplier_docs.
// *vectorstore.Store satisfies it.
type DocSearcher interface {
	Search(ctx context.Context, query string, topK int) ([]vectorstore.Result, error)
}

// Config wires a Toolset. Zero fields fall back to sensible defaults; only
// Docs is mandatory.
type Config struct {
	// Data is the mock dataset backing the retrieval tools. Empty tables are
	// replaced with DefaultDataset.
	Data Dataset

	// Docs answers supplier document searches.
	Docs DocSearcher

	// Impact overrides the financial impact multipliers. The zero value means
	// DefaultImpactPolicy.
	Impact ImpactPolicy

	// Now supplies timestamps for generated payloads. Defaults to time.Now in
	// UTC. Tests inject a fixed clock.
	Now func() time.Time

	// NewID mints identifiers for plans and synthesized alerts. Defaults to a
	// random UUID fragment.
	NewID func() string
}

// Toolset holds the constructed domain tools for one agent run.
type Toolset struct {
	data   Dataset
	docs   DocSearcher
	impact ImpactPolicy
	now    func() time.Time
	newID  func() string
}

// New builds a Toolset from cfg, filling in defaults for unset fields.
func New(cfg Config) *Toolset {
	if len(cfg.Data.Inventory) == 0 && len(cfg.Data.PurchaseOrders) == 0 &&
		len(cfg.Data.History) == 0 && len(cfg.Data.Pricing) == 0 && len(cfg.Data.SOPPages) == 0 {
		cfg.Data = DefaultDataset()
	}
	if cfg.Impact == (ImpactPolicy{}) {
		cfg.Impact = DefaultImpactPolicy()
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	if cfg.NewID == nil {
		cfg.NewID = func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		}
	}
	return &Toolset{
		data:   cfg.Data,
		docs:   cfg.Docs,
		impact: cfg.Impact,
		now:    cfg.Now,
		newID:  cfg.NewID,
	}
}

// All returns every tool in the set, in catalog registration order.
func (ts *Toolset) All() []tool.GenericTool {
	return []tool.GenericTool{
		ts.SearchSupplierDocs(),
		ts.QueryInventoryDB(),
		ts.FetchDisruptionAlerts(),
		ts.LoadDisruptionHistory(),
		ts.GetSupplierPricing(),
		ts.SearchSOPWiki(),
		ts.CalculateFinancialImpact(),
		ts.DraftResponsePlan(),
		ts.SendNotification(),
		ts.UpdatePurchaseOrder(),
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
