package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"github.com/primeorcamentos/backoffice-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_Create_FinancialCascade(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Alfa")

	created, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeQuote,
		CustomerID: customer.ID,
		Title:      "Reforma de escritorio",
		MarkupRate: 25,
		TaxRate:    10,
		Items: []domain.CreateOrderItemRequest{
			{Description: "Mao de obra", Kind: domain.ItemKindService, Quantity: 10, UnitPrice: 20},
			{Description: "Tinta acrilica", Kind: domain.ItemKindMaterial, Quantity: 2, UnitPrice: 25},
		},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(created.Number, "QT-"))
	assert.Equal(t, domain.OrderStatusDraft, created.Status)
	assert.Equal(t, customer.Name, created.CustomerName)
	assert.Len(t, created.Items, 2)

	// 250 + 25% markup (62.50) + 10% tax on 312.50 (31.25)
	assert.Equal(t, 250.0, created.Subtotal)
	assert.Equal(t, 62.5, created.MarkupValue)
	assert.Equal(t, 31.25, created.TaxValue)
	assert.Equal(t, 343.75, created.PlannedCost)
	assert.Equal(t, 343.75, created.TotalAmount)
}

func TestOrderService_Create_ContractPriceOverridesItemizedTotal(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Beta")

	created, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:          domain.OrderTypeServiceOrder,
		CustomerID:    customer.ID,
		Title:         "Manutencao predial",
		MarkupRate:    25,
		TaxRate:       10,
		ContractPrice: 500,
		Items: []domain.CreateOrderItemRequest{
			{Description: "Servicos gerais", Quantity: 10, UnitPrice: 25},
		},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(created.Number, "OS-"))
	assert.Equal(t, 500.0, created.TotalAmount)
	// The itemized build-up stays visible next to the negotiated price.
	assert.Equal(t, 343.75, created.PlannedCost)
}

func TestOrderService_Create_InactiveCustomer(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Cliente Inativo")
	require.NoError(t, db.Exec("UPDATE customers SET is_active = false WHERE id = ?", customer.ID).Error)

	_, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeQuote,
		CustomerID: customer.ID,
		Title:      "Orcamento rejeitado",
	})
	assert.ErrorIs(t, err, service.ErrCustomerInactive)
}

func TestOrderService_Update_RecomputesFinancials(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Gama")

	created, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeQuote,
		CustomerID: customer.ID,
		Title:      "Orcamento inicial",
		Items: []domain.CreateOrderItemRequest{
			{Description: "Item unico", Quantity: 1, UnitPrice: 100},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, created.TotalAmount)

	updated, err := svcs.orders.Update(context.Background(), created.ID, &domain.UpdateOrderRequest{
		Title:      "Orcamento revisado",
		MarkupRate: 10,
		Items: []domain.CreateOrderItemRequest{
			{Description: "Item unico", Quantity: 2, UnitPrice: 100},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Orcamento revisado", updated.Title)
	assert.Equal(t, 200.0, updated.Subtotal)
	assert.Equal(t, 20.0, updated.MarkupValue)
	assert.Equal(t, 220.0, updated.TotalAmount)
	assert.Len(t, updated.Items, 1)
}

func TestOrderService_Update_LockedOrder(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Delta")

	created, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeServiceOrder,
		CustomerID: customer.ID,
		Title:      "Ordem encerrada",
	})
	require.NoError(t, err)
	setOrderStatus(t, db, created.ID, domain.OrderStatusCompleted)

	_, err = svcs.orders.Update(context.Background(), created.ID, &domain.UpdateOrderRequest{
		Title: "Tentativa de edicao",
	})
	assert.ErrorIs(t, err, service.ErrOrderLocked)
}

func TestOrderService_Delete_OnlyDrafts(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Epsilon")

	draft, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeQuote,
		CustomerID: customer.ID,
		Title:      "Rascunho",
	})
	require.NoError(t, err)

	pending, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeQuote,
		CustomerID: customer.ID,
		Title:      "Enviado ao cliente",
	})
	require.NoError(t, err)
	setOrderStatus(t, db, pending.ID, domain.OrderStatusPending)

	assert.NoError(t, svcs.orders.Delete(context.Background(), draft.ID))
	assert.ErrorIs(t, svcs.orders.Delete(context.Background(), pending.ID), service.ErrConflict)

	_, err = svcs.orders.GetByID(context.Background(), draft.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestOrderService_NumberPrefixPerType(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Zeta")

	cases := []struct {
		orderType domain.OrderType
		prefix    string
	}{
		{domain.OrderTypeQuote, "QT-"},
		{domain.OrderTypeServiceOrder, "OS-"},
		{domain.OrderTypeWorkOrder, "OB-"},
	}

	for _, tc := range cases {
		created, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
			Type:       tc.orderType,
			CustomerID: customer.ID,
			Title:      "Numeracao",
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(created.Number, tc.prefix),
			"order %s should have prefix %s", created.Number, tc.prefix)
	}
}

func TestOrderService_SequentialNumbers(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Eta")

	first, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeQuote,
		CustomerID: customer.ID,
		Title:      "Primeiro",
	})
	require.NoError(t, err)

	second, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeQuote,
		CustomerID: customer.ID,
		Title:      "Segundo",
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.Number, second.Number)
	assert.Greater(t, second.Number, first.Number)
}

func TestOrderService_List_Filters(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Theta")
	other := createTestCustomer(t, db, "Construtora Iota")

	_, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeQuote,
		CustomerID: customer.ID,
		Title:      "Cobertura metalica",
	})
	require.NoError(t, err)

	_, err = svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeWorkOrder,
		CustomerID: other.ID,
		Title:      "Fundacao",
	})
	require.NoError(t, err)

	quotes, err := svcs.orders.List(context.Background(), domain.ListOrdersFilter{Type: domain.OrderTypeQuote})
	require.NoError(t, err)
	for _, o := range quotes {
		assert.Equal(t, domain.OrderTypeQuote, o.Type)
	}

	byCustomer, err := svcs.orders.List(context.Background(), domain.ListOrdersFilter{CustomerID: &other.ID})
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, "Fundacao", byCustomer[0].Title)

	bySearch, err := svcs.orders.List(context.Background(), domain.ListOrdersFilter{Search: "metalica"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Cobertura metalica", bySearch[0].Title)
}

func TestOrderService_RecalculateUpdatedSince_RepairsTamperedTotals(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Kappa")

	created, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeQuote,
		CustomerID: customer.ID,
		Title:      "Totais corrompidos",
		Items: []domain.CreateOrderItemRequest{
			{Description: "Item", Quantity: 3, UnitPrice: 100},
		},
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec(
		"UPDATE orders SET total_amount = 999999 WHERE id = ?", created.ID,
	).Error)

	checked, corrected, err := svcs.orders.RecalculateUpdatedSince(context.Background(), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, checked, 1)
	assert.GreaterOrEqual(t, corrected, 1)

	repaired, err := svcs.orders.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 300.0, repaired.TotalAmount)
}
