package finance

// LineItem is the minimal shape the engine needs from an order line:
// a quantity and a unit price. Negative or zero values are accepted
// arithmetically; input validation belongs to the API layer.
type LineItem struct {
	Quantity  float64
	UnitPrice float64
}

// Breakdown holds every derived monetary figure for an order.
// All values are unrounded; callers round when formatting.
type Breakdown struct {
	Subtotal    float64 `json:"subtotal"`
	MarkupValue float64 `json:"markupValue"`
	TaxValue    float64 `json:"taxValue"`
	PlannedCost float64 `json:"plannedCost"`
	FinalTotal  float64 `json:"finalTotal"`
}

// Subtotal sums quantity x unit price over the items. No currency rounding
// is applied mid-sum, so the result is order-independent and does not
// accumulate per-item rounding error.
func Subtotal(items []LineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Quantity * it.UnitPrice
	}
	return total
}

// Compute derives the full financial breakdown for an order.
//
// The cascade is deliberate: markup applies to the subtotal, tax applies
// to the markup-inclusive base (subtotal + markup), and planned cost is
// the sum of all three. Markup before tax is a design decision, not an
// accident of ordering.
//
// A markupRate or taxRate of zero means "no markup/tax", never an error.
// A contractPrice > 0 is a negotiated lump sum: it becomes the final total
// and overrides the itemized build-up entirely, while PlannedCost remains
// available for comparison.
func Compute(items []LineItem, markupRate, taxRate, contractPrice float64) Breakdown {
	sub := Subtotal(items)

	var markup float64
	if markupRate != 0 {
		markup = sub * (markupRate / 100)
	}

	var tax float64
	if taxRate != 0 {
		tax = (sub + markup) * (taxRate / 100)
	}

	planned := sub + markup + tax

	final := planned
	if contractPrice > 0 {
		final = contractPrice
	}

	return Breakdown{
		Subtotal:    sub,
		MarkupValue: markup,
		TaxValue:    tax,
		PlannedCost: planned,
		FinalTotal:  final,
	}
}
