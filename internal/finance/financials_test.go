package finance_test

import (
	"testing"

	"github.com/primeorcamentos/backoffice-api/internal/finance"
	"github.com/stretchr/testify/assert"
)

func TestSubtotal_Empty(t *testing.T) {
	assert.Equal(t, 0.0, finance.Subtotal(nil))
	assert.Equal(t, 0.0, finance.Subtotal([]finance.LineItem{}))
}

func TestSubtotal_SumsQuantityTimesPrice(t *testing.T) {
	items := []finance.LineItem{
		{Quantity: 2, UnitPrice: 100},
		{Quantity: 0.5, UnitPrice: 40},
		{Quantity: 3, UnitPrice: 9.99},
	}
	assert.InDelta(t, 200+20+29.97, finance.Subtotal(items), 1e-9)
}

func TestSubtotal_OrderIndependent(t *testing.T) {
	a := []finance.LineItem{{Quantity: 1, UnitPrice: 10.10}, {Quantity: 7, UnitPrice: 3.33}, {Quantity: 2.5, UnitPrice: 80}}
	b := []finance.LineItem{a[2], a[0], a[1]}
	assert.Equal(t, finance.Subtotal(a), finance.Subtotal(b))
}

func TestSubtotal_NegativeQuantitiesAccepted(t *testing.T) {
	// Validation is the API layer's job; the engine is plain arithmetic.
	items := []finance.LineItem{{Quantity: -2, UnitPrice: 50}}
	assert.Equal(t, -100.0, finance.Subtotal(items))
}

func TestCompute_Cascade(t *testing.T) {
	items := []finance.LineItem{{Quantity: 2, UnitPrice: 100}}

	got := finance.Compute(items, 10, 5, 0)

	assert.Equal(t, 200.0, got.Subtotal)
	assert.Equal(t, 20.0, got.MarkupValue)
	assert.InDelta(t, 11.0, got.TaxValue, 1e-9) // tax on 220, not on 200
	assert.InDelta(t, 231.0, got.PlannedCost, 1e-9)
	assert.InDelta(t, 231.0, got.FinalTotal, 1e-9)
}

func TestCompute_TaxAppliesToMarkupInclusiveBase(t *testing.T) {
	items := []finance.LineItem{{Quantity: 1, UnitPrice: 1000}}

	noMarkup := finance.Compute(items, 0, 10, 0)
	withMarkup := finance.Compute(items, 20, 10, 0)

	// Same tax rate, different tax value: markup feeds the tax base.
	assert.InDelta(t, 100.0, noMarkup.TaxValue, 1e-9)
	assert.InDelta(t, 120.0, withMarkup.TaxValue, 1e-9)
}

func TestCompute_MissingRatesAreZeroContribution(t *testing.T) {
	items := []finance.LineItem{{Quantity: 4, UnitPrice: 25}}

	got := finance.Compute(items, 0, 0, 0)

	assert.Equal(t, 100.0, got.Subtotal)
	assert.Equal(t, 0.0, got.MarkupValue)
	assert.Equal(t, 0.0, got.TaxValue)
	assert.Equal(t, 100.0, got.PlannedCost)
	assert.Equal(t, 100.0, got.FinalTotal)
}

func TestCompute_ContractPriceOverridesFinalTotal(t *testing.T) {
	items := []finance.LineItem{{Quantity: 2, UnitPrice: 100}}

	got := finance.Compute(items, 10, 5, 500)

	assert.Equal(t, 500.0, got.FinalTotal)
	// The itemized build-up stays retrievable alongside the override.
	assert.InDelta(t, 231.0, got.PlannedCost, 1e-9)
}

func TestCompute_ZeroContractPriceDoesNotOverride(t *testing.T) {
	items := []finance.LineItem{{Quantity: 2, UnitPrice: 100}}

	got := finance.Compute(items, 0, 0, 0)
	assert.Equal(t, got.PlannedCost, got.FinalTotal)
}

func TestCompute_EmptyItemsWithContractPrice(t *testing.T) {
	got := finance.Compute(nil, 10, 5, 1500)

	assert.Equal(t, 0.0, got.Subtotal)
	assert.Equal(t, 0.0, got.PlannedCost)
	assert.Equal(t, 1500.0, got.FinalTotal)
}
