package supplychain

// Mock datasets standing in for the real inventory database, ERP, risk feeds
// and SOP wiki. They are plain values handed to New at construction, never
// package globals, so ownership stays explicit and tests can substitute
// their own fixtures.

// InventoryItem is one row of the inventory table.
type InventoryItem struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Stock        int     `json:"stock"`
	ReorderPoint int     `json:"reorder_point"`
	SupplierID   string  `json:"supplier_id"`
	UnitCost     float64 `json:"unit_cost"`
	Category     string  `json:"category"`
}

// PurchaseOrder is one open or in-transit order in the ERP.
type PurchaseOrder struct {
	POID             string  `json:"po_id"`
	SupplierID       string  `json:"supplier_id"`
	SKU              string  `json:"sku"`
	Quantity         int     `json:"quantity"`
	Status           string  `json:"status"`
	ExpectedDelivery string  `json:"expected_delivery"`
	TotalValue       float64 `json:"total_value"`
}

// DisruptionEvent records how a past disruption was handled.
type DisruptionEvent struct {
	Event               string   `json:"event"`
	Type                string   `json:"type"`
	DurationDays        int      `json:"duration_days"`
	AffectedSuppliers   []string `json:"affected_suppliers"`
	Response            string   `json:"response"`
	CostImpact          float64  `json:"cost_impact"`
	ResolutionTimeHours int      `json:"resolution_time_hours"`
}

// PriceQuote is a supplier's standing quote for one SKU.
type PriceQuote struct {
	SupplierID   string  `json:"supplier_id"`
	SKU          string  `json:"sku"`
	Price        float64 `json:"price"`
	LeadTimeDays int     `json:"lead_time_days"`
	MOQ          int     `json:"moq"`
}

// SOPPage is one page of the standard-operating-procedure wiki. Pages are
// authored as HTML (the wiki's native format) and converted to markdown when
// retrieved for the model.
type SOPPage struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// Dataset bundles every mock table the tools read from.
type Dataset struct {
	Inventory      []InventoryItem
	PurchaseOrders []PurchaseOrder
	History        []DisruptionEvent
	Pricing        []PriceQuote
	SOPPages       []SOPPage
}

// DisruptionTypes enumerates the recognised disruption categories.
var DisruptionTypes = []string{
	"supplier_failure",
	"logistics_delay",
	"quality_recall",
	"price_spike",
	"geopolitical",
}

// DefaultDataset returns the bundled demonstration data. A fresh value is
// built on every call so callers can never mutate the canonical tables.
func DefaultDataset() Dataset {
	return Dataset{
		Inventory: []InventoryItem{
			{SKU: "SKU-MCU2200", Name: "Microcontroller MCU-2200", Stock: 1200, ReorderPoint: 500, SupplierID: "TPA-001", UnitCost: 4.50, Category: "semiconductor"},
			{SKU: "SKU-MCU3300", Name: "Microcontroller MCU-3300", Stock: 300, ReorderPoint: 400, SupplierID: "TPA-001", UnitCost: 6.75, Category: "semiconductor"},
			{SKU: "SKU-RES10K", Name: "Resistor 10K Ohm", Stock: 50000, ReorderPoint: 10000, SupplierID: "ECG-002", UnitCost: 0.02, Category: "passive"},
			{SKU: "SKU-RES47K", Name: "Resistor 47K Ohm", Stock: 35000, ReorderPoint: 8000, SupplierID: "ECG-002", UnitCost: 0.02, Category: "passive"},
			{SKU: "SKU-CAP100", Name: "Capacitor 100nF", Stock: 42000, ReorderPoint: 15000, SupplierID: "TPA-001", UnitCost: 0.05, Category: "passive"},
			{SKU: "SKU-IND100", Name: "Inductor 100uH", Stock: 18000, ReorderPoint: 5000, SupplierID: "ECG-002", UnitCost: 0.08, Category: "passive"},
		},
		PurchaseOrders: []PurchaseOrder{
			{POID: "PO-2024-001", SupplierID: "TPA-001", SKU: "SKU-MCU2200", Quantity: 10000, Status: "open", ExpectedDelivery: "2025-03-15", TotalValue: 45000.00},
			{POID: "PO-2024-002", SupplierID: "TPA-001", SKU: "SKU-MCU3300", Quantity: 5000, Status: "open", ExpectedDelivery: "2025-03-20", TotalValue: 33750.00},
			{POID: "PO-2024-003", SupplierID: "ECG-002", SKU: "SKU-RES10K", Quantity: 100000, Status: "open", ExpectedDelivery: "2025-03-05", TotalValue: 2000.00},
			{POID: "PO-2024-004", SupplierID: "TPA-001", SKU: "SKU-CAP100", Quantity: 50000, Status: "in_transit", ExpectedDelivery: "2025-02-28", TotalValue: 2500.00},
		},
		History: []DisruptionEvent{
			{
				Event: "Shenzhen port closure 2023", Type: "logistics_delay", DurationDays: 14,
				AffectedSuppliers: []string{"TPA-001", "PCK-009"},
				Response:          "Rerouted via Hong Kong air freight. Activated ALT-003 for urgent MCU orders.",
				CostImpact:        125000, ResolutionTimeHours: 6,
			},
			{
				Event: "TPA-001 quality excursion Q2 2023", Type: "quality_recall", DurationDays: 21,
				AffectedSuppliers: []string{"TPA-001"},
				Response:          "Quarantined affected lots. Shifted 60% allocation to ALT-003 for 3 weeks.",
				CostImpact:        85000, ResolutionTimeHours: 4,
			},
			{
				Event: "Semiconductor price spike 2022", Type: "price_spike", DurationDays: 90,
				AffectedSuppliers: []string{"TPA-001", "ALT-003", "RAW-008"},
				Response:          "Locked in 6-month forward contracts. Negotiated volume discounts with MFG-005.",
				CostImpact:        340000, ResolutionTimeHours: 48,
			},
			{
				Event: "Taiwan strait tensions 2024", Type: "geopolitical", DurationDays: 30,
				AffectedSuppliers: []string{"ALT-003"},
				Response:          "Pre-positioned 30-day safety stock. Activated European backup suppliers.",
				CostImpact:        200000, ResolutionTimeHours: 12,
			},
			{
				Event: "ECG-002 factory fire 2022", Type: "supplier_failure", DurationDays: 45,
				AffectedSuppliers: []string{"ECG-002"},
				Response:          "Switched passive components to ALT-004. Expedited orders via air freight.",
				CostImpact:        95000, ResolutionTimeHours: 8,
			},
		},
		Pricing: []PriceQuote{
			{SupplierID: "TPA-001", SKU: "SKU-MCU2200", Price: 4.50, LeadTimeDays: 18, MOQ: 5000},
			{SupplierID: "TPA-001", SKU: "SKU-MCU3300", Price: 6.75, LeadTimeDays: 18, MOQ: 5000},
			{SupplierID: "TPA-001", SKU: "SKU-CAP100", Price: 0.05, LeadTimeDays: 14, MOQ: 10000},
			{SupplierID: "ALT-003", SKU: "SKU-MCU2200", Price: 5.25, LeadTimeDays: 12, MOQ: 2000},
			{SupplierID: "ALT-003", SKU: "SKU-MCU3300", Price: 7.80, LeadTimeDays: 12, MOQ: 2000},
			{SupplierID: "ALT-004", SKU: "SKU-RES10K", Price: 0.025, LeadTimeDays: 10, MOQ: 500},
			{SupplierID: "ALT-004", SKU: "SKU-CAP100", Price: 0.06, LeadTimeDays: 12, MOQ: 500},
			{SupplierID: "ECG-002", SKU: "SKU-RES10K", Price: 0.02, LeadTimeDays: 8, MOQ: 1000},
			{SupplierID: "ECG-002", SKU: "SKU-RES47K", Price: 0.02, LeadTimeDays: 8, MOQ: 1000},
			{SupplierID: "ECG-002", SKU: "SKU-IND100", Price: 0.08, LeadTimeDays: 8, MOQ: 1000},
			{SupplierID: "MFG-005", SKU: "SKU-MCU2200", Price: 9.00, LeadTimeDays: 25, MOQ: 1000},
			{SupplierID: "MFG-005", SKU: "SKU-MCU3300", Price: 13.50, LeadTimeDays: 25, MOQ: 1000},
		},
		SOPPages: []SOPPage{
			{
				Type:  "supplier_failure",
				Title: "SOP-001: Supplier Failure Response Protocol",
				HTML: "<h2>SOP-001: Supplier Failure Response Protocol</h2><ol>" +
					"<li>Immediately assess which SKUs and open POs are affected.</li>" +
					"<li>Check current inventory levels against 30-day demand forecast.</li>" +
					"<li>Activate pre-qualified backup suppliers within 4 hours.</li>" +
					"<li>Issue expedited POs to backup suppliers if stock falls below reorder point.</li>" +
					"<li>Notify logistics team of new inbound shipment timelines.</li>" +
					"<li>Escalate to VP Supply Chain if financial exposure exceeds $100K.</li>" +
					"<li>Schedule daily status calls until resolution.</li>" +
					"<li>Document lessons learned within 7 days of resolution.</li></ol>",
			},
			{
				Type:  "logistics_delay",
				Title: "SOP-002: Logistics Delay Response Protocol",
				HTML: "<h2>SOP-002: Logistics Delay Response Protocol</h2><ol>" +
					"<li>Confirm delay duration and root cause with logistics provider.</li>" +
					"<li>Check if in-transit shipments can be rerouted via alternative ports/carriers.</li>" +
					"<li>Assess production impact based on current inventory runway.</li>" +
					"<li>If delay exceeds 7 days, activate backup logistics provider (LOG-007).</li>" +
					"<li>Consider air freight for critical components (40% surcharge applies).</li>" +
					"<li>Update ERP delivery dates for affected POs.</li>" +
					"<li>Notify production planning of revised timelines.</li></ol>",
			},
			{
				Type:  "quality_recall",
				Title: "SOP-003: Quality Recall Response Protocol",
				HTML: "<h2>SOP-003: Quality Recall Response Protocol</h2><ol>" +
					"<li>Quarantine all affected lots immediately.</li>" +
					"<li>Trace affected components through BOM to finished goods.</li>" +
					"<li>Issue supplier corrective action request (SCAR) within 24 hours.</li>" +
					"<li>Source replacement components from backup suppliers.</li>" +
					"<li>Conduct incoming inspection at 100% for next 3 shipments.</li>" +
					"<li>Review supplier scorecard and adjust quality rating.</li></ol>",
			},
			{
				Type:  "price_spike",
				Title: "SOP-004: Price Spike Response Protocol",
				HTML: "<h2>SOP-004: Price Spike Response Protocol</h2><ol>" +
					"<li>Verify price increase validity with supplier.</li>" +
					"<li>Check contractual pricing commitments and long-term agreements.</li>" +
					"<li>Evaluate total cost impact across all affected SKUs.</li>" +
					"<li>Negotiate volume commitments for price protection.</li>" +
					"<li>Explore forward contracts to lock in current pricing.</li>" +
					"<li>If increase exceeds 15%, trigger dual-sourcing evaluation.</li></ol>",
			},
			{
				Type:  "geopolitical",
				Title: "SOP-005: Geopolitical Risk Response Protocol",
				HTML: "<h2>SOP-005: Geopolitical Risk Response Protocol</h2><ol>" +
					"<li>Monitor situation via approved intelligence feeds.</li>" +
					"<li>Assess exposure by mapping all suppliers in affected region.</li>" +
					"<li>Pre-position 30-day safety stock for critical components.</li>" +
					"<li>Activate suppliers in unaffected regions.</li>" +
					"<li>Review trade compliance and sanctions implications.</li>" +
					"<li>Escalate to legal team if sanctions are involved.</li></ol>",
			},
		},
	}
}
