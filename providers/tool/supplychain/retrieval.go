package supplychain

import (
	"context"
	"fmt"
	"strings"

	"github.com/procurea/scdra/providers/tool"
)

type searchSupplierDocsInput struct {
	Query string `json:"query" jsonschema:"description=Natural language query about supplier capabilities or certifications or performance,minLength=1,required"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"description=Number of best matching documents to return between 1 and 10,default=3"`
}

type docMatch struct {
	DocumentID string            `json:"document_id"`
	Score      float64           `json:"score"`
	Content    string            `json:"content"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type searchSupplierDocsOutput struct {
	Query   string     `json:"query"`
	Matches []docMatch `json:"matches"`
}

// SearchSupplierDocs performs similarity search over the supplier
// qualification corpus.
func (ts *Toolset) SearchSupplierDocs() tool.GenericTool {
	return tool.New("search_supplier_docs",
		func(ctx context.Context, in searchSupplierDocsInput) (searchSupplierDocsOutput, error) {
			if ts.docs == nil {
				return searchSupplierDocsOutput{}, fmt.Errorf("supplier document index is not available")
			}

			results, err := ts.docs.Search(ctx, in.Query, in.TopK)
			if err != nil {
				return searchSupplierDocsOutput{}, fmt.Errorf("document search: %w", err)
			}

			out := searchSupplierDocsOutput{Query: in.Query, Matches: make([]docMatch, 0, len(results))}
			for _, r := range results {
				out.Matches = append(out.Matches, docMatch{
					DocumentID: r.ID,
					Score:      r.Score,
					Content:    r.Content,
					Metadata:   r.Metadata,
				})
			}
			return out, nil
		},
		tool.WithDescription("Search the supplier knowledge base for qualification documents: profiles, certifications, audit results, performance rankings and compliance records."),
	)
}

type queryInventoryInput struct {
	Query string `json:"query" jsonschema:"description=Plain text description of the inventory or purchase order records to look up. Mention a supplier ID or SKU to filter. Mention purchase orders or PO to query orders instead of stock.,minLength=1,required"`
}

type inventoryQueryOutput struct {
	Table string          `json:"table"`
	Items []InventoryItem `json:"items,omitempty"`
	POs   []PurchaseOrder `json:"purchase_orders,omitempty"`
}

// QueryInventoryDB answers keyword-routed lookups against the inventory and
// purchase order tables. An unrecognised query falls back to the full
// inventory table rather than failing, so the model can re-orient.
func (ts *Toolset) QueryInventoryDB() tool.GenericTool {
	return tool.New("query_inventory_db",
		func(_ context.Context, in queryInventoryInput) (inventoryQueryOutput, error) {
			q := strings.ToLower(in.Query)

			if strings.Contains(q, "purchase_order") || strings.Contains(q, "purchase order") || strings.Contains(q, "po-") || strings.Contains(q, " po ") || strings.HasPrefix(q, "po ") {
				return inventoryQueryOutput{
					Table: "purchase_orders",
					POs:   ts.filterPurchaseOrders(q),
				}, nil
			}

			return inventoryQueryOutput{
				Table: "inventory",
				Items: ts.filterInventory(q),
			}, nil
		},
		tool.WithDescription("Query the inventory database for stock levels and open purchase orders. Describe what you need in plain text. Include a supplier ID such as TPA-001 or a SKU such as SKU-MCU2200 to filter."),
	)
}

func (ts *Toolset) filterInventory(q string) []InventoryItem {
	matched := make([]InventoryItem, 0)
	for _, item := range ts.data.Inventory {
		if strings.Contains(q, strings.ToLower(item.SupplierID)) ||
			strings.Contains(q, strings.ToLower(item.SKU)) ||
			strings.Contains(q, strings.ToLower(item.Category)) {
			matched = append(matched, item)
		}
	}
	if len(matched) == 0 {
		// No recognisable filter: return the whole table.
		return append([]InventoryItem(nil), ts.data.Inventory...)
	}
	return matched
}

func (ts *Toolset) filterPurchaseOrders(q string) []PurchaseOrder {
	matched := make([]PurchaseOrder, 0)
	for _, po := range ts.data.PurchaseOrders {
		if strings.Contains(q, strings.ToLower(po.POID)) ||
			strings.Contains(q, strings.ToLower(po.SupplierID)) ||
			strings.Contains(q, strings.ToLower(po.SKU)) {
			matched = append(matched, po)
		}
	}
	if len(matched) == 0 {
		return append([]PurchaseOrder(nil), ts.data.PurchaseOrders...)
	}
	return matched
}

type fetchAlertsInput struct {
	Region   string `json:"region" jsonschema:"description=Geographic region to pull alerts for such as Asia or Europe,minLength=1,required"`
	Category string `json:"category" jsonschema:"description=Disruption category to filter on,enum=supplier_failure,enum=logistics_delay,enum=quality_recall,enum=price_spike,enum=geopolitical,required"`
}

// Alert is one entry in the synthesized disruption feed.
type Alert struct {
	AlertID           string   `json:"alert_id"`
	Region            string   `json:"region"`
	Category          string   `json:"category"`
	Severity          string   `json:"severity"`
	Headline          string   `json:"headline"`
	Detail            string   `json:"detail"`
	AffectedSuppliers []string `json:"affected_suppliers"`
	IssuedAt          string   `json:"issued_at"`
}

type fetchAlertsOutput struct {
	Region   string  `json:"region"`
	Category string  `json:"category"`
	Alerts   []Alert `json:"alerts"`
}

// FetchDisruptionAlerts synthesizes a live alert for the requested region and
// category, naming the suppliers in that region from the document corpus.
func (ts *Toolset) FetchDisruptionAlerts() tool.GenericTool {
	return tool.New("fetch_disruption_alerts",
		func(_ context.Context, in fetchAlertsInput) (fetchAlertsOutput, error) {
			suppliers := ts.suppliersInRegion(in.Region)

			alert := Alert{
				AlertID:           "ALERT-" + ts.newID(),
				Region:            in.Region,
				Category:          in.Category,
				Severity:          "high",
				Headline:          fmt.Sprintf("Active %s disruption reported in %s", strings.ReplaceAll(in.Category, "_", " "), in.Region),
				Detail:            fmt.Sprintf("Monitoring feeds report an ongoing %s event affecting suppliers in %s. Expect lead time impact on open orders until further notice.", strings.ReplaceAll(in.Category, "_", " "), in.Region),
				AffectedSuppliers: suppliers,
				IssuedAt:          ts.now().Format("2006-01-02T15:04:05Z07:00"),
			}

			return fetchAlertsOutput{Region: in.Region, Category: in.Category, Alerts: []Alert{alert}}, nil
		},
		tool.WithDescription("Fetch current disruption alerts from monitoring feeds for a region and category. Returns active alerts with severity and the suppliers likely affected."),
	)
}

// suppliersInRegion maps a region onto the supplier IDs the mock tables place
// there. Unknown regions yield an empty list, not an error.
func (ts *Toolset) suppliersInRegion(region string) []string {
	regions := map[string][]string{
		"asia":          {"TPA-001", "ALT-003", "RAW-008", "PCK-009", "LOG-006"},
		"europe":        {"ECG-002", "ALT-004", "LOG-007"},
		"north america": {"MFG-005"},
	}
	suppliers, ok := regions[strings.ToLower(strings.TrimSpace(region))]
	if !ok {
		return []string{}
	}
	return append([]string(nil), suppliers...)
}

type loadHistoryInput struct {
	DisruptionType string `json:"disruption_type" jsonschema:"description=Type of past disruption to look up,enum=supplier_failure,enum=logistics_delay,enum=quality_recall,enum=price_spike,enum=geopolitical,required"`
}

type loadHistoryOutput struct {
	DisruptionType string            `json:"disruption_type"`
	Matched        bool              `json:"matched"`
	Events         []DisruptionEvent `json:"events"`
}

// LoadDisruptionHistory returns past disruption events of the given type. If
// none match, the full history is returned with Matched set to false so the
// model still has precedent to reason from.
func (ts *Toolset) LoadDisruptionHistory() tool.GenericTool {
	return tool.New("load_disruption_history",
		func(_ context.Context, in loadHistoryInput) (loadHistoryOutput, error) {
			matched := make([]DisruptionEvent, 0)
			for _, ev := range ts.data.History {
				if ev.Type == in.DisruptionType {
					matched = append(matched, ev)
				}
			}
			if len(matched) == 0 {
				return loadHistoryOutput{
					DisruptionType: in.DisruptionType,
					Matched:        false,
					Events:         append([]DisruptionEvent(nil), ts.data.History...),
				}, nil
			}
			return loadHistoryOutput{DisruptionType: in.DisruptionType, Matched: true, Events: matched}, nil
		},
		tool.WithDescription("Load historical disruption events of a given type: what happened, how it was handled, what it cost and how long resolution took."),
	)
}

type pricingInput struct {
	SupplierID string `json:"supplier_id" jsonschema:"description=Supplier identifier such as ALT-003,minLength=1,required"`
	SKU        string `json:"sku" jsonschema:"description=Stock keeping unit such as SKU-MCU2200,minLength=1,required"`
}

type pricingOutput struct {
	SupplierID   string  `json:"supplier_id"`
	SKU          string  `json:"sku"`
	UnitPrice    float64 `json:"unit_price"`
	LeadTimeDays int     `json:"lead_time_days"`
	MOQ          int     `json:"moq"`
}

// GetSupplierPricing looks up the standing quote for a supplier and SKU pair.
// A missing pair is an error the executor reports back to the model, which
// can then try an alternative supplier.
func (ts *Toolset) GetSupplierPricing() tool.GenericTool {
	return tool.New("get_supplier_pricing",
		func(_ context.Context, in pricingInput) (pricingOutput, error) {
			supplier := strings.ToUpper(strings.TrimSpace(in.SupplierID))
			sku := strings.ToUpper(strings.TrimSpace(in.SKU))

			for _, quote := range ts.data.Pricing {
				if quote.SupplierID == supplier && quote.SKU == sku {
					return pricingOutput{
						SupplierID:   quote.SupplierID,
						SKU:          quote.SKU,
						UnitPrice:    quote.Price,
						LeadTimeDays: quote.LeadTimeDays,
						MOQ:          quote.MOQ,
					}, nil
				}
			}
			return pricingOutput{}, fmt.Errorf("no pricing on file for supplier %s and SKU %s", supplier, sku)
		},
		tool.WithDescription("Get current unit pricing with lead time and minimum order quantity for a specific supplier and SKU."),
	)
}
