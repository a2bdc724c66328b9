package mapper

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"github.com/primeorcamentos/backoffice-api/internal/finance"
)

func TestToCustomerDTO(t *testing.T) {
	ts := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	customer := &domain.Customer{
		BaseModel: domain.BaseModel{
			ID:        uuid.New(),
			CreatedAt: ts,
			UpdatedAt: ts,
		},
		Name:     "Construtora Almeida",
		TaxID:    "12345678000190",
		City:     "Belo Horizonte",
		State:    "MG",
		IsActive: true,
	}

	dto := ToCustomerDTO(customer, 3)

	assert.Equal(t, customer.ID, dto.ID)
	assert.Equal(t, "Construtora Almeida", dto.Name)
	assert.Equal(t, "12345678000190", dto.TaxID)
	assert.Equal(t, 3, dto.OpenOrders)
	assert.Equal(t, "2026-03-15T10:30:00Z", dto.CreatedAt)
	assert.True(t, dto.IsActive)
}

func TestToCostItemDTO_DerivedActual(t *testing.T) {
	item := &domain.OrderCostItem{
		Description:     "Cimento CP-II 50kg",
		Quantity:        10,
		UnitPrice:       10,
		ActualQuantity:  8,
		ActualUnitPrice: 11,
	}

	dto := ToCostItemDTO(item)

	assert.Equal(t, 100.0, dto.EstimatedTotal)
	assert.Equal(t, 88.0, dto.ActualTotal)
	assert.Equal(t, 12.0, dto.Variance)
}

func TestToCostItemDTO_OverrideWins(t *testing.T) {
	item := &domain.OrderCostItem{
		Description:     "Frete",
		Quantity:        1,
		UnitPrice:       100,
		ActualQuantity:  8,
		ActualUnitPrice: 11,
		ActualValue:     95,
	}

	dto := ToCostItemDTO(item)

	assert.Equal(t, 95.0, dto.ActualTotal)
	assert.Equal(t, 5.0, dto.Variance)
}

func TestToOrderDTO(t *testing.T) {
	ts := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	validUntil := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	order := &domain.Order{
		BaseModel: domain.BaseModel{
			ID:        uuid.New(),
			CreatedAt: ts,
			UpdatedAt: ts,
		},
		Number:       "QT-2026-014",
		Type:         domain.OrderTypeQuote,
		CustomerID:   uuid.New(),
		CustomerName: "Construtora Almeida",
		Status:       domain.OrderStatusDraft,
		Title:        "Reforma escritorio",
		MarkupRate:   10,
		TaxRate:      5,
		Subtotal:     200,
		MarkupValue:  20,
		TaxValue:     11,
		PlannedCost:  231,
		TotalAmount:  231,
		ValidUntil:   &validUntil,
		Items: []domain.OrderItem{
			{Description: "Pintura", Quantity: 2, UnitPrice: 100, Total: 200},
		},
		CostItems: []domain.OrderCostItem{
			{Description: "Tinta", Quantity: 5, UnitPrice: 20},
		},
	}

	dto := ToOrderDTO(order)

	assert.Equal(t, "QT-2026-014", dto.Number)
	assert.Len(t, dto.Items, 1)
	assert.Equal(t, 200.0, dto.Items[0].Total)
	assert.Equal(t, 231.0, dto.TotalAmount)
	if assert.NotNil(t, dto.ValidUntil) {
		assert.Equal(t, "2026-02-10T00:00:00Z", *dto.ValidUntil)
	}
	// cost items are internal to work orders and never exposed on quotes
	assert.Nil(t, dto.CostItems)
}

func TestToOrderDTO_WorkOrderCostItems(t *testing.T) {
	order := &domain.Order{
		Type:   domain.OrderTypeWorkOrder,
		Number: "OB-2026-003",
		CostItems: []domain.OrderCostItem{
			{Description: "Areia", Quantity: 3, UnitPrice: 50},
		},
	}

	dto := ToOrderDTO(order)

	assert.Len(t, dto.CostItems, 1)
	assert.Equal(t, 150.0, dto.CostItems[0].EstimatedTotal)
}

func TestToCostReportDTO(t *testing.T) {
	order := &domain.Order{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		Number:    "OB-2026-007",
		Type:      domain.OrderTypeWorkOrder,
		CostItems: []domain.OrderCostItem{
			{Description: "Material", Quantity: 10, UnitPrice: 10, ActualQuantity: 8, ActualUnitPrice: 11},
		},
	}

	report := finance.Reconcile(ToFinanceCostItems(order.CostItems), 231, 500)
	dto := ToCostReportDTO(order, report)

	assert.Equal(t, order.ID, dto.OrderID)
	assert.Equal(t, 500.0, dto.Revenue)
	assert.Equal(t, 100.0, dto.EstimatedCost)
	assert.Equal(t, 88.0, dto.ActualCost)
	assert.Equal(t, 269.0, dto.PlannedProfit)
	assert.Equal(t, 412.0, dto.ActualProfit)
	assert.Len(t, dto.Items, 1)
}

func TestToBdiRates(t *testing.T) {
	cfg := &domain.BdiConfig{
		Administration: 4.0,
		Insurance:      0.8,
		Guarantee:      0.5,
		Risk:           1.27,
		Financial:      1.23,
		Profit:         7.4,
		ISS:            5.0,
		PIS:            0.65,
		COFINS:         3.0,
		CPRB:           4.5,
	}

	rates := ToBdiRates(cfg)
	assert.InDelta(t, 0.1315, rates.TaxShare(), 1e-9)
}

func TestFormatError(t *testing.T) {
	base := errors.New("boom")
	err := FormatError("order", "create", base)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "failed to create order: boom", err.Error())
}
