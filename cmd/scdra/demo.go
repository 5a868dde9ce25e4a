package main

import (
	"github.com/procurea/scdra/providers/ai"
	"github.com/procurea/scdra/providers/ai/scripted"
)

// newDemoProvider returns a scripted model that walks the standard
// investigation workflow against the bundled data, so the full loop can be
// demonstrated without network access or an API key.
func newDemoProvider() ai.Provider {
	return scripted.New(
		scripted.Turn{Calls: []scripted.Call{
			{Name: "fetch_disruption_alerts", Arguments: `{"region": "Asia", "category": "supplier_failure"}`},
		}},
		scripted.Turn{Calls: []scripted.Call{
			{Name: "search_sop_wiki", Arguments: `{"query": "supplier failure response protocol"}`},
			{Name: "search_supplier_docs", Arguments: `{"query": "backup supplier for TPA-001 microcontrollers", "top_k": 3}`},
		}},
		scripted.Turn{Calls: []scripted.Call{
			{Name: "query_inventory_db", Arguments: `{"query": "open purchase orders for supplier TPA-001"}`},
			{Name: "load_disruption_history", Arguments: `{"disruption_type": "supplier_failure"}`},
		}},
		scripted.Turn{Calls: []scripted.Call{
			{Name: "get_supplier_pricing", Arguments: `{"supplier_id": "ALT-003", "sku": "SKU-MCU2200"}`},
		}},
		scripted.Turn{Calls: []scripted.Call{
			{Name: "calculate_financial_impact", Arguments: `{"affected_orders": "[{\"po_id\": \"PO-2024-001\", \"total_value\": 45000.0}, {\"po_id\": \"PO-2024-002\", \"total_value\": 33750.0}]", "alternative_pricing": "{\"supplier_id\": \"ALT-003\", \"unit_price\": 5.25}"}`},
		}},
		scripted.Turn{Calls: []scripted.Call{
			{Name: "draft_response_plan", Arguments: `{"context": "TPA-001 production halt in Shenzhen. Open POs PO-2024-001 and PO-2024-002 at risk (total $78,750). Backup ALT-003 qualified for both MCU SKUs at a 15% premium with shorter lead time. Historical precedent: 2022 ECG-002 factory fire resolved by switching to backup and expediting via air freight."}`},
		}},
		scripted.Turn{Content: "Investigation complete. TPA-001's Shenzhen halt puts two open purchase orders " +
			"worth $78,750 at risk. Estimated exposure is $18,113 in extra cost and expedite fees, with $196,875 " +
			"of downstream revenue at risk. ALT-003 is a qualified backup for both affected MCU SKUs at a 15% " +
			"premium and faster lead time. A response plan has been drafted and is awaiting human approval; no " +
			"notifications were sent and no purchase orders were changed."},
	)
}
