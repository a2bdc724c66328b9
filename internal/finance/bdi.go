// Package finance implements the pure financial core of the back office:
// the BDI composite markup formula, the subtotal/markup/tax cascade for
// orders, and the planned-vs-actual cost reconciliation for work orders.
//
// Every function in this package is a pure function of its arguments. No
// ambient configuration is read and no state is retained between calls, so
// all entry points are safe for concurrent use and may be recomputed at any
// time from stored inputs.
package finance

import (
	"errors"
	"math"
)

// ErrTaxShareTooHigh is returned by ComputeBDI when the tax-group rates
// (ISS + PIS + COFINS + CPRB) sum to 100% or more. The formula divides by
// (1 - taxes), so such a configuration has no meaningful result and is
// rejected instead of producing a negative or infinite percentage.
var ErrTaxShareTooHigh = errors.New("bdi tax rates sum to 100% or more")

// BdiRates holds the named percentage inputs of the BDI formula.
// All values are percentages (4.5 means 4.5%), conventionally 0-100.
// A missing rate is simply zero and contributes nothing.
type BdiRates struct {
	Administration float64 `json:"administration"` // AC - administracao central
	Insurance      float64 `json:"insurance"`      // S - seguros
	Guarantee      float64 `json:"guarantee"`      // G - garantias
	Risk           float64 `json:"risk"`           // R - riscos
	Financial      float64 `json:"financial"`      // DF - despesas financeiras
	Profit         float64 `json:"profit"`         // L - lucro
	ISS            float64 `json:"iss"`
	PIS            float64 `json:"pis"`
	COFINS         float64 `json:"cofins"`
	CPRB           float64 `json:"cprb"` // optional payroll-substitution tax
}

// TaxShare returns the combined tax-group share as a fraction (0.1315 for 13.15%).
func (r BdiRates) TaxShare() float64 {
	return (r.ISS + r.PIS + r.COFINS + r.CPRB) / 100
}

// ComputeBDI converts the named rates into a single composite markup
// percentage using the standard multiplicative formula:
//
//	BDI = (((1+AC+S+G+R) x (1+DF) x (1+L)) / (1-I)) - 1
//
// where every rate is taken as a fraction and I is the tax-group sum.
// The result is a percentage rounded to two decimals.
//
// Returns ErrTaxShareTooHigh when I >= 1.
func ComputeBDI(r BdiRates) (float64, error) {
	tax := r.TaxShare()
	if tax >= 1 {
		return 0, ErrTaxShareTooHigh
	}

	ac := r.Administration / 100
	s := r.Insurance / 100
	g := r.Guarantee / 100
	rk := r.Risk / 100
	df := r.Financial / 100
	l := r.Profit / 100

	bdi := ((1+ac+s+g+rk)*(1+df)*(1+l))/(1-tax) - 1
	return Round2(bdi * 100), nil
}

// Round2 rounds a value to two decimal places. Used only at the edges
// (formatting, snapshots); running sums are never rounded mid-computation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
