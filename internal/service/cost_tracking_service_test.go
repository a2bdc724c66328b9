package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"github.com/primeorcamentos/backoffice-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestWorkOrder(t *testing.T, svcs *testServices, customerID uuid.UUID, contractPrice float64) *domain.OrderDTO {
	order, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:          domain.OrderTypeWorkOrder,
		CustomerID:    customerID,
		Title:         "Obra de teste",
		ContractPrice: contractPrice,
	})
	require.NoError(t, err)
	return order
}

func TestCostTrackingService_AddItem_RefreshesOrderAggregates(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Sigma")
	order := createTestWorkOrder(t, svcs, customer.ID, 1000)

	item, err := svcs.costs.AddItem(context.Background(), order.ID, &domain.CreateCostItemRequest{
		Description: "Cimento",
		Kind:        domain.ItemKindMaterial,
		Quantity:    4,
		UnitPrice:   100,
	})
	require.NoError(t, err)

	assert.Equal(t, 400.0, item.EstimatedTotal)
	assert.Equal(t, 0.0, item.ActualTotal)
	assert.Equal(t, 400.0, item.Variance)
	assert.Equal(t, 1, item.DisplayOrder)

	refreshed, err := svcs.orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, refreshed.ActualCost)
	// Revenue is the contract price; nothing spent yet.
	assert.Equal(t, 1000.0, refreshed.ActualProfit)
}

func TestCostTrackingService_RecordActual_DerivedFromPair(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Tau")
	order := createTestWorkOrder(t, svcs, customer.ID, 1000)

	item, err := svcs.costs.AddItem(context.Background(), order.ID, &domain.CreateCostItemRequest{
		Description: "Areia",
		Quantity:    10,
		UnitPrice:   10,
	})
	require.NoError(t, err)

	updated, err := svcs.costs.RecordActual(context.Background(), order.ID, item.ID, &domain.RecordActualRequest{
		ActualQuantity:  11,
		ActualUnitPrice: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, 88.0, updated.ActualTotal)
	assert.Equal(t, 12.0, updated.Variance)

	refreshed, err := svcs.orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 88.0, refreshed.ActualCost)
	assert.Equal(t, 912.0, refreshed.ActualProfit)
}

func TestCostTrackingService_RecordActual_OverrideWins(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Ypsilon")
	order := createTestWorkOrder(t, svcs, customer.ID, 0)

	item, err := svcs.costs.AddItem(context.Background(), order.ID, &domain.CreateCostItemRequest{
		Description: "Frete",
		Quantity:    1,
		UnitPrice:   100,
	})
	require.NoError(t, err)

	updated, err := svcs.costs.RecordActual(context.Background(), order.ID, item.ID, &domain.RecordActualRequest{
		ActualQuantity:  2,
		ActualUnitPrice: 50,
		ActualValue:     95,
	})
	require.NoError(t, err)

	// The direct value is authoritative over the quantity/price pair.
	assert.Equal(t, 95.0, updated.ActualTotal)
	assert.Equal(t, 5.0, updated.Variance)
}

func TestCostTrackingService_GetReport(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Fi")
	order := createTestWorkOrder(t, svcs, customer.ID, 500)

	first, err := svcs.costs.AddItem(context.Background(), order.ID, &domain.CreateCostItemRequest{
		Description: "Material",
		Quantity:    1,
		UnitPrice:   100,
	})
	require.NoError(t, err)

	_, err = svcs.costs.RecordActual(context.Background(), order.ID, first.ID, &domain.RecordActualRequest{
		ActualValue: 88,
	})
	require.NoError(t, err)

	report, err := svcs.costs.GetReport(context.Background(), order.ID)
	require.NoError(t, err)

	assert.Equal(t, order.ID, report.OrderID)
	assert.Equal(t, 500.0, report.Revenue)
	assert.Equal(t, 100.0, report.EstimatedCost)
	assert.Equal(t, 88.0, report.ActualCost)
	assert.Equal(t, 412.0, report.ActualProfit)
	require.Len(t, report.Items, 1)
	assert.Equal(t, 12.0, report.Items[0].Variance)
}

func TestCostTrackingService_GetReport_ReadableWhenLocked(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Chi")
	order := createTestWorkOrder(t, svcs, customer.ID, 500)

	_, err := svcs.costs.AddItem(context.Background(), order.ID, &domain.CreateCostItemRequest{
		Description: "Material",
		Quantity:    1,
		UnitPrice:   100,
	})
	require.NoError(t, err)
	setOrderStatus(t, db, order.ID, domain.OrderStatusCompleted)

	_, err = svcs.costs.AddItem(context.Background(), order.ID, &domain.CreateCostItemRequest{
		Description: "Tarde demais",
		Quantity:    1,
		UnitPrice:   50,
	})
	assert.ErrorIs(t, err, service.ErrOrderLocked)

	report, err := svcs.costs.GetReport(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, report.EstimatedCost)
}

func TestCostTrackingService_RejectsNonWorkOrders(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Psi")

	quote, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeQuote,
		CustomerID: customer.ID,
		Title:      "Sem custos internos",
	})
	require.NoError(t, err)

	_, err = svcs.costs.AddItem(context.Background(), quote.ID, &domain.CreateCostItemRequest{
		Description: "Material",
		Quantity:    1,
		UnitPrice:   10,
	})
	assert.ErrorIs(t, err, service.ErrNotWorkOrder)

	_, err = svcs.costs.GetReport(context.Background(), quote.ID)
	assert.ErrorIs(t, err, service.ErrNotWorkOrder)
}

func TestCostTrackingService_DeleteItem(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Omega")
	order := createTestWorkOrder(t, svcs, customer.ID, 0)
	other := createTestWorkOrder(t, svcs, customer.ID, 0)

	item, err := svcs.costs.AddItem(context.Background(), order.ID, &domain.CreateCostItemRequest{
		Description: "Descartavel",
		Quantity:    2,
		UnitPrice:   30,
	})
	require.NoError(t, err)

	// Items are only addressable through their own order.
	err = svcs.costs.DeleteItem(context.Background(), other.ID, item.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, svcs.costs.DeleteItem(context.Background(), order.ID, item.ID))

	report, err := svcs.costs.GetReport(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Empty(t, report.Items)
	assert.Equal(t, 0.0, report.EstimatedCost)
}
