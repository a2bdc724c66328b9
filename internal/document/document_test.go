package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/primeorcamentos/backoffice-api/internal/config"
	"github.com/primeorcamentos/backoffice-api/internal/domain"
)

func testRenderer() *Renderer {
	return NewRenderer(&config.DocumentsConfig{
		CompanyName:    "Prime Orcamentos LTDA",
		CompanyTaxID:   "12.345.678/0001-90",
		CompanyAddress: "Rua das Obras, 42 - Belo Horizonte/MG",
		CompanyEmail:   "contato@primeorcamentos.com.br",
		FooterNote:     "Proposta sujeita a confirmacao de disponibilidade.",
	})
}

func sampleOrder() *domain.OrderDTO {
	validUntil := "2026-02-10T00:00:00Z"
	return &domain.OrderDTO{
		Number:       "QT-2026-014",
		Type:         domain.OrderTypeQuote,
		CustomerName: "Construtora Almeida",
		Title:        "Reforma escritorio",
		MarkupRate:   10,
		TaxRate:      5,
		Subtotal:     200,
		MarkupValue:  20,
		TaxValue:     11,
		PlannedCost:  231,
		TotalAmount:  231,
		ValidUntil:   &validUntil,
		CreatedAt:    "2026-01-10T08:00:00Z",
		Items: []domain.OrderItemDTO{
			{Description: "Pintura de paredes", Quantity: 2, Unit: "m2", UnitPrice: 100, Total: 200},
		},
	}
}

func TestProposalPDF(t *testing.T) {
	data, err := testRenderer().ProposalPDF(sampleOrder())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestCostReportPDF(t *testing.T) {
	report := &domain.CostReportDTO{
		Number:        "OB-2026-003",
		Revenue:       500,
		EstimatedCost: 100,
		ActualCost:    88,
		PlannedProfit: 269,
		ActualProfit:  412,
		Items: []domain.CostItemDTO{
			{Description: "Material", EstimatedTotal: 100, ActualTotal: 88, Variance: 12},
		},
	}

	data, err := testRenderer().CostReportPDF(report)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestOrderBookXLSX(t *testing.T) {
	orders := []domain.OrderSummaryDTO{
		{Number: "QT-2026-014", Type: domain.OrderTypeQuote, Status: domain.OrderStatusDraft, CustomerName: "Construtora Almeida", Title: "Reforma", TotalAmount: 231},
	}

	data, err := testRenderer().OrderBookXLSX(orders)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	// xlsx files are zip archives
	assert.Equal(t, "PK", string(data[:2]))
}

func TestCostReportXLSX(t *testing.T) {
	report := &domain.CostReportDTO{Number: "OB-2026-003"}

	data, err := testRenderer().CostReportXLSX(report)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "PK", string(data[:2]))
}

func TestCurrencySymbolDefault(t *testing.T) {
	r := NewRenderer(&config.DocumentsConfig{CompanyName: "X"})
	assert.Equal(t, "R$ 10.00", r.money(10))
}
