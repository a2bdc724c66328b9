package finance

// CostItem is one line of a work order's internal cost budget: the planned
// quantity/price pair plus whatever has been recorded during execution.
//
// An actual cost can be expressed two ways, with a single precedence rule:
// a nonzero ActualValue override is authoritative; otherwise the actual is
// derived as ActualQuantity x ActualUnitPrice. When the override is set the
// actual quantity/price components are advisory only.
type CostItem struct {
	Description     string
	Quantity        float64
	UnitPrice       float64
	ActualQuantity  float64
	ActualUnitPrice float64
	ActualValue     float64
}

// EstimatedTotal returns the budgeted cost of the line.
func (c CostItem) EstimatedTotal() float64 {
	return c.Quantity * c.UnitPrice
}

// ActualTotal returns the incurred cost of the line under the override rule.
func (c CostItem) ActualTotal() float64 {
	if c.ActualValue != 0 {
		return c.ActualValue
	}
	return c.ActualQuantity * c.ActualUnitPrice
}

// ItemVariance is the per-line output of a reconciliation pass.
// Variance is estimated minus actual: positive means under budget.
type ItemVariance struct {
	Description string  `json:"description"`
	Estimated   float64 `json:"estimated"`
	Actual      float64 `json:"actual"`
	Variance    float64 `json:"variance"`
}

// CostReport aggregates a work order's planned-vs-actual position.
type CostReport struct {
	EstimatedCost float64        `json:"estimatedCost"`
	ActualCost    float64        `json:"actualCost"`
	Revenue       float64        `json:"revenue"`
	PlannedProfit float64        `json:"plannedProfit"`
	ActualProfit  float64        `json:"actualProfit"`
	Items         []ItemVariance `json:"items"`
}

// Reconcile compares a work order's cost budget against recorded actuals.
//
// Revenue is the contract price when one is set (> 0); otherwise it falls
// back to the computed planned cost, which makes the planned profit zero by
// construction (break-even). PlannedProfit is revenue minus plannedCost,
// ActualProfit is revenue minus the summed actual costs.
func Reconcile(items []CostItem, plannedCost, contractPrice float64) CostReport {
	revenue := plannedCost
	if contractPrice > 0 {
		revenue = contractPrice
	}

	report := CostReport{
		Revenue: revenue,
		Items:   make([]ItemVariance, 0, len(items)),
	}

	for _, it := range items {
		est := it.EstimatedTotal()
		act := it.ActualTotal()
		report.EstimatedCost += est
		report.ActualCost += act
		report.Items = append(report.Items, ItemVariance{
			Description: it.Description,
			Estimated:   est,
			Actual:      act,
			Variance:    est - act,
		})
	}

	report.PlannedProfit = revenue - plannedCost
	report.ActualProfit = revenue - report.ActualCost
	return report
}
