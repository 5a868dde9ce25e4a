package supplychain

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/procurea/scdra/core/parse"
	"github.com/procurea/scdra/providers/tool"
)

// ImpactPolicy holds the multipliers the financial model applies to the total
// value of affected orders. The defaults are deliberately rough planning
// estimates, not actuarial figures.
type ImpactPolicy struct {
	// CostIncreaseRate estimates the procurement cost delta from switching
	// to alternative sourcing.
	CostIncreaseRate float64

	// ExpediteFeeRate estimates expedited shipping surcharges.
	ExpediteFeeRate float64

	// RevenueMultiplier estimates downstream revenue at risk per dollar of
	// disrupted supply.
	RevenueMultiplier float64

	// RiskScoreCap bounds the computed risk score from above.
	RiskScoreCap float64
}

// DefaultImpactPolicy returns the standard planning multipliers.
func DefaultImpactPolicy() ImpactPolicy {
	return ImpactPolicy{
		CostIncreaseRate:  0.15,
		ExpediteFeeRate:   0.08,
		RevenueMultiplier: 2.5,
		RiskScoreCap:      0.85,
	}
}

type impactInput struct {
	AffectedOrders string `json:"affected_orders" jsonschema:"description=JSON array of affected purchase orders. Each entry needs at least a total_value field. Pass the orders returned by query_inventory_db.,minLength=1,required"`
	AltPricing     string `json:"alternative_pricing,omitempty" jsonschema:"description=Optional JSON from get_supplier_pricing describing the alternative source under consideration."`
}

type affectedOrder struct {
	POID       string  `json:"po_id"`
	TotalValue float64 `json:"total_value"`
}

// ImpactAssessment is the financial exposure estimate for a disruption.
type ImpactAssessment struct {
	OrdersAssessed         int     `json:"orders_assessed"`
	TotalOriginalValue     float64 `json:"total_original_value"`
	EstimatedCostIncrease  float64 `json:"estimated_cost_increase"`
	ExpediteShippingFees   float64 `json:"expedite_shipping_fees"`
	RevenueAtRisk          float64 `json:"revenue_at_risk"`
	TotalFinancialExposure float64 `json:"total_financial_exposure"`
	RiskScore              float64 `json:"risk_score"`
	RiskLevel              string  `json:"risk_level"`
	AltPricingConsidered   bool    `json:"alternative_pricing_considered"`
}

// CalculateFinancialImpact estimates exposure across the affected orders
// using the toolset's ImpactPolicy. Malformed order JSON is an input error
// reported back to the model, never a process fault.
func (ts *Toolset) CalculateFinancialImpact() tool.GenericTool {
	return tool.New("calculate_financial_impact",
		func(_ context.Context, in impactInput) (ImpactAssessment, error) {
			orders, err := parse.ParseStringAs[[]affectedOrder](in.AffectedOrders)
			if err != nil {
				return ImpactAssessment{}, fmt.Errorf("affected_orders is not a valid JSON array of orders: %v", err)
			}

			var total float64
			for _, order := range orders {
				total += order.TotalValue
			}

			policy := ts.impact
			costIncrease := total * policy.CostIncreaseRate
			expediteFees := total * policy.ExpediteFeeRate
			revenueAtRisk := total * policy.RevenueMultiplier

			riskScore := math.Min(policy.RiskScoreCap, costIncrease/math.Max(total, 1))
			riskScore = math.Round(riskScore*100) / 100

			altConsidered := false
			if in.AltPricing != "" {
				// Alternative pricing only has to be parseable to count; the
				// multipliers already assume a switch to backup sourcing.
				altConsidered = json.Valid([]byte(in.AltPricing))
			}

			return ImpactAssessment{
				OrdersAssessed:         len(orders),
				TotalOriginalValue:     round2(total),
				EstimatedCostIncrease:  round2(costIncrease),
				ExpediteShippingFees:   round2(expediteFees),
				RevenueAtRisk:          round2(revenueAtRisk),
				TotalFinancialExposure: round2(costIncrease + expediteFees),
				RiskScore:              riskScore,
				RiskLevel:              riskLevel(riskScore),
				AltPricingConsidered:   altConsidered,
			}, nil
		},
		tool.WithDescription("Calculate the financial impact of a disruption across affected purchase orders: cost increase from alternative sourcing, expedite fees, revenue at risk and an overall risk score."),
	)
}

func riskLevel(score float64) string {
	switch {
	case score > 0.6:
		return "high"
	case score > 0.3:
		return "medium"
	default:
		return "low"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
