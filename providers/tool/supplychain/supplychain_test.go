package supplychain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurea/scdra/providers/tool"
	"github.com/procurea/scdra/providers/vectorstore"
)

var fixedTime = time.Date(2025, 2, 10, 9, 30, 0, 0, time.UTC)

func newTestToolset(docs DocSearcher) *Toolset {
	counter := 0
	return New(Config{
		Docs:  docs,
		Now:   func() time.Time { return fixedTime },
		NewID: func() string { counter++; return fmt.Sprintf("test%04d", counter) },
	})
}

func call[T any](t *testing.T, gt tool.GenericTool, args string) T {
	t.Helper()
	raw, err := gt.Call(context.Background(), args)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestToolsetProvidesTenTools(t *testing.T) {
	ts := newTestToolset(nil)
	all := ts.All()
	require.Len(t, all, 10)

	worldChanging := 0
	for _, gt := range all {
		if gt.SideEffect() == tool.SideEffectWorldChanging {
			worldChanging++
		}
	}
	assert.Equal(t, 2, worldChanging)
}

func TestQueryInventoryBySupplier(t *testing.T) {
	ts := newTestToolset(nil)
	out := call[inventoryQueryOutput](t, ts.QueryInventoryDB(), `{"query":"stock levels for supplier TPA-001"}`)

	assert.Equal(t, "inventory", out.Table)
	require.Len(t, out.Items, 3)
	for _, item := range out.Items {
		assert.Equal(t, "TPA-001", item.SupplierID)
	}
}

func TestQueryInventoryRoutesToPurchaseOrders(t *testing.T) {
	ts := newTestToolset(nil)
	out := call[inventoryQueryOutput](t, ts.QueryInventoryDB(), `{"query":"open purchase orders for TPA-001"}`)

	assert.Equal(t, "purchase_orders", out.Table)
	require.NotEmpty(t, out.POs)
	for _, po := range out.POs {
		assert.Equal(t, "TPA-001", po.SupplierID)
	}
}

func TestQueryInventoryFallsBackToFullTable(t *testing.T) {
	ts := newTestToolset(nil)
	out := call[inventoryQueryOutput](t, ts.QueryInventoryDB(), `{"query":"show me everything"}`)

	assert.Equal(t, "inventory", out.Table)
	assert.Len(t, out.Items, len(DefaultDataset().Inventory))
}

func TestFetchDisruptionAlerts(t *testing.T) {
	ts := newTestToolset(nil)
	out := call[fetchAlertsOutput](t, ts.FetchDisruptionAlerts(), `{"region":"Asia","category":"supplier_failure"}`)

	require.Len(t, out.Alerts, 1)
	alert := out.Alerts[0]
	assert.Equal(t, "Asia", alert.Region)
	assert.Equal(t, "supplier_failure", alert.Category)
	assert.Contains(t, alert.AffectedSuppliers, "TPA-001")
	assert.Equal(t, "2025-02-10T09:30:00Z", alert.IssuedAt)
	assert.True(t, strings.HasPrefix(alert.AlertID, "ALERT-"))
}

func TestFetchDisruptionAlertsUnknownRegion(t *testing.T) {
	ts := newTestToolset(nil)
	out := call[fetchAlertsOutput](t, ts.FetchDisruptionAlerts(), `{"region":"Atlantis","category":"geopolitical"}`)

	require.Len(t, out.Alerts, 1)
	assert.Empty(t, out.Alerts[0].AffectedSuppliers)
}

func TestLoadDisruptionHistoryFiltersByType(t *testing.T) {
	ts := newTestToolset(nil)
	out := call[loadHistoryOutput](t, ts.LoadDisruptionHistory(), `{"disruption_type":"supplier_failure"}`)

	assert.True(t, out.Matched)
	require.Len(t, out.Events, 1)
	assert.Equal(t, "ECG-002 factory fire 2022", out.Events[0].Event)
}

func TestGetSupplierPricing(t *testing.T) {
	ts := newTestToolset(nil)
	out := call[pricingOutput](t, ts.GetSupplierPricing(), `{"supplier_id":"alt-003","sku":"sku-mcu2200"}`)

	assert.Equal(t, "ALT-003", out.SupplierID)
	assert.Equal(t, 5.25, out.UnitPrice)
	assert.Equal(t, 12, out.LeadTimeDays)
	assert.Equal(t, 2000, out.MOQ)
}

func TestGetSupplierPricingUnknownPair(t *testing.T) {
	ts := newTestToolset(nil)
	_, err := ts.GetSupplierPricing().Call(context.Background(), `{"supplier_id":"ALT-003","sku":"SKU-RES10K"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pricing on file")
}

func TestSearchSOPWikiReturnsMarkdown(t *testing.T) {
	ts := newTestToolset(nil)
	out := call[searchSOPOutput](t, ts.SearchSOPWiki(), `{"query":"what is the supplier failure protocol"}`)

	assert.Equal(t, "SOP-001: Supplier Failure Response Protocol", out.Title)
	assert.NotContains(t, out.Markdown, "<li>")
	assert.NotContains(t, out.Markdown, "<ol>")
	assert.Contains(t, out.Markdown, "backup suppliers")
}

func TestSearchSOPWikiFallsBackToGeneralGuidance(t *testing.T) {
	ts := newTestToolset(nil)
	out := call[searchSOPOutput](t, ts.SearchSOPWiki(), `{"query":"volcanic eruption"}`)

	assert.Equal(t, "General Disruption Guidance", out.Title)
	assert.Contains(t, out.Markdown, "Quantify financial exposure")
}

func TestCalculateFinancialImpact(t *testing.T) {
	ts := newTestToolset(nil)
	args := `{"affected_orders":"[{\"po_id\":\"PO-2024-001\",\"total_value\":45000.0}]"}`
	out := call[ImpactAssessment](t, ts.CalculateFinancialImpact(), args)

	assert.Equal(t, 1, out.OrdersAssessed)
	assert.Equal(t, 45000.0, out.TotalOriginalValue)
	assert.Equal(t, 6750.0, out.EstimatedCostIncrease)
	assert.Equal(t, 3600.0, out.ExpediteShippingFees)
	assert.Equal(t, 112500.0, out.RevenueAtRisk)
	assert.Equal(t, 10350.0, out.TotalFinancialExposure)
	assert.Equal(t, 0.15, out.RiskScore)
	assert.Equal(t, "low", out.RiskLevel)
	assert.False(t, out.AltPricingConsidered)
}

func TestCalculateFinancialImpactWithAltPricing(t *testing.T) {
	ts := newTestToolset(nil)
	args := `{"affected_orders":"[{\"total_value\":1000}]","alternative_pricing":"{\"unit_price\":5.25}"}`
	out := call[ImpactAssessment](t, ts.CalculateFinancialImpact(), args)
	assert.True(t, out.AltPricingConsidered)
}

func TestCalculateFinancialImpactRejectsBadJSON(t *testing.T) {
	ts := newTestToolset(nil)
	_, err := ts.CalculateFinancialImpact().Call(context.Background(), `{"affected_orders":"]["}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid JSON array")
}

func TestCustomImpactPolicy(t *testing.T) {
	ts := New(Config{
		Impact: ImpactPolicy{CostIncreaseRate: 0.5, ExpediteFeeRate: 0.1, RevenueMultiplier: 1, RiskScoreCap: 0.4},
	})
	args := `{"affected_orders":"[{\"total_value\":1000}]"}`
	out := call[ImpactAssessment](t, ts.CalculateFinancialImpact(), args)

	assert.Equal(t, 500.0, out.EstimatedCostIncrease)
	// The raw score of 0.5 is capped by the policy.
	assert.Equal(t, 0.4, out.RiskScore)
	assert.Equal(t, "medium", out.RiskLevel)
}

func TestDraftResponsePlan(t *testing.T) {
	ts := newTestToolset(nil)
	out := call[ResponsePlan](t, ts.DraftResponsePlan(), `{"context":"TPA-001 halt, POs at risk"}`)

	assert.True(t, strings.HasPrefix(out.PlanID, "PLAN-"))
	assert.Equal(t, PlanStatusDraft, out.Status)
	assert.True(t, out.RequiresHumanApproval)
	assert.Len(t, out.RecommendedActions, 5)
	assert.Equal(t, 1, out.RecommendedActions[0].Priority)
}

func TestDraftResponsePlanTruncatesContext(t *testing.T) {
	ts := newTestToolset(nil)
	long := strings.Repeat("x", 800)
	out := call[ResponsePlan](t, ts.DraftResponsePlan(), `{"context":"`+long+`"}`)
	assert.Len(t, out.ContextSummary, contextSummaryLimit)
}

func TestSendNotificationIsMock(t *testing.T) {
	ts := newTestToolset(nil)
	out := call[sendNotificationOutput](t, ts.SendNotification(),
		`{"channel":"slack","recipients":"#supply-chain-ops, vp@example.com","message":"Plan PLAN-1 approved and underway."}`)

	assert.Equal(t, "sent", out.Status)
	assert.Equal(t, []string{"#supply-chain-ops", "vp@example.com"}, out.Recipients)
	assert.Contains(t, out.Note, "[MOCK]")
	assert.Equal(t, "2025-02-10T09:30:00Z", out.SentAt)
}

func TestUpdatePurchaseOrderLooksUpPreviousSupplier(t *testing.T) {
	ts := newTestToolset(nil)
	out := call[updatePOOutput](t, ts.UpdatePurchaseOrder(),
		`{"po_id":"po-2024-001","new_supplier":"alt-003"}`)

	assert.Equal(t, "updated", out.Status)
	assert.Equal(t, "PO-2024-001", out.POID)
	assert.Equal(t, "TPA-001", out.PreviousSupplier)
	assert.Equal(t, "ALT-003", out.NewSupplier)
	assert.Contains(t, out.Note, "[MOCK]")
}

func TestUpdatePurchaseOrderUnknownPO(t *testing.T) {
	ts := newTestToolset(nil)
	_, err := ts.UpdatePurchaseOrder().Call(context.Background(),
		`{"po_id":"PO-9999-404","new_supplier":"ALT-003"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

type stubSearcher struct {
	results []vectorstore.Result
	err     error
	gotTopK int
}

func (s *stubSearcher) Search(_ context.Context, _ string, topK int) ([]vectorstore.Result, error) {
	s.gotTopK = topK
	return s.results, s.err
}

func TestSearchSupplierDocs(t *testing.T) {
	searcher := &stubSearcher{results: []vectorstore.Result{
		{Document: vectorstore.Document{ID: "TPA-001", Content: "profile", Metadata: map[string]string{"region": "Asia"}}, Score: 0.9},
	}}
	ts := newTestToolset(searcher)

	out := call[searchSupplierDocsOutput](t, ts.SearchSupplierDocs(), `{"query":"backup supplier","top_k":2}`)
	assert.Equal(t, 2, searcher.gotTopK)
	require.Len(t, out.Matches, 1)
	assert.Equal(t, "TPA-001", out.Matches[0].DocumentID)
	assert.Equal(t, "Asia", out.Matches[0].Metadata["region"])
}

func TestSearchSupplierDocsWithoutIndex(t *testing.T) {
	ts := newTestToolset(nil)
	_, err := ts.SearchSupplierDocs().Call(context.Background(), `{"query":"anything"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}
