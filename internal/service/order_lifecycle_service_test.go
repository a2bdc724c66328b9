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

func TestOrderLifecycleService_UpdateStatus_HappyPath(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Lambda")

	created, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeQuote,
		CustomerID: customer.ID,
		Title:      "Ciclo de aprovacao",
	})
	require.NoError(t, err)

	pending, err := svcs.lifecycle.UpdateStatus(context.Background(), created.ID, domain.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, pending.Status)

	approved, err := svcs.lifecycle.UpdateStatus(context.Background(), created.ID, domain.OrderStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusApproved, approved.Status)
}

func TestOrderLifecycleService_UpdateStatus_InvalidTransition(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Mi")

	created, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeQuote,
		CustomerID: customer.ID,
		Title:      "Salto de status",
	})
	require.NoError(t, err)

	_, err = svcs.lifecycle.UpdateStatus(context.Background(), created.ID, domain.OrderStatusPaid)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestOrderLifecycleService_UpdateStatus_TerminalIsFinal(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Ni")

	created, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeServiceOrder,
		CustomerID: customer.ID,
		Title:      "Ordem cancelada",
	})
	require.NoError(t, err)

	_, err = svcs.lifecycle.UpdateStatus(context.Background(), created.ID, domain.OrderStatusCancelled)
	require.NoError(t, err)

	_, err = svcs.lifecycle.UpdateStatus(context.Background(), created.ID, domain.OrderStatusPending)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestOrderLifecycleService_Convert_QuoteToWorkOrder(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Xi")

	quote, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeQuote,
		CustomerID: customer.ID,
		Title:      "Obra de ampliacao",
		MarkupRate: 20,
		Items: []domain.CreateOrderItemRequest{
			{Description: "Estrutura metalica", Kind: domain.ItemKindMaterial, Quantity: 2, UnitPrice: 1000},
			{Description: "Montagem", Kind: domain.ItemKindService, Quantity: 40, UnitPrice: 50},
		},
	})
	require.NoError(t, err)
	setOrderStatus(t, db, quote.ID, domain.OrderStatusApproved)

	workOrder, err := svcs.lifecycle.Convert(context.Background(), quote.ID, domain.OrderTypeWorkOrder)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderTypeWorkOrder, workOrder.Type)
	assert.Equal(t, domain.OrderStatusApproved, workOrder.Status)
	assert.True(t, strings.HasPrefix(workOrder.Number, "OB-"))
	require.NotNil(t, workOrder.SourceQuoteID)
	assert.Equal(t, quote.ID, *workOrder.SourceQuoteID)
	assert.Equal(t, quote.Title, workOrder.Title)

	assert.Len(t, workOrder.Items, 2)
	// Work orders start their cost budget from the quoted lines.
	assert.Len(t, workOrder.CostItems, 2)
	assert.Equal(t, quote.Subtotal, workOrder.Subtotal)

	// The quote itself is untouched.
	source, err := svcs.orders.GetByID(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderTypeQuote, source.Type)
	assert.Equal(t, domain.OrderStatusApproved, source.Status)
}

func TestOrderLifecycleService_Convert_QuoteToServiceOrder(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Omicron")

	quote, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeQuote,
		CustomerID: customer.ID,
		Title:      "Limpeza de fachada",
		Items: []domain.CreateOrderItemRequest{
			{Description: "Servico", Quantity: 1, UnitPrice: 800},
		},
	})
	require.NoError(t, err)
	setOrderStatus(t, db, quote.ID, domain.OrderStatusApproved)

	serviceOrder, err := svcs.lifecycle.Convert(context.Background(), quote.ID, domain.OrderTypeServiceOrder)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderTypeServiceOrder, serviceOrder.Type)
	assert.True(t, strings.HasPrefix(serviceOrder.Number, "OS-"))
	assert.Empty(t, serviceOrder.CostItems)
}

func TestOrderLifecycleService_Convert_Guards(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Pi")

	quote, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeQuote,
		CustomerID: customer.ID,
		Title:      "Ainda em rascunho",
	})
	require.NoError(t, err)

	_, err = svcs.lifecycle.Convert(context.Background(), quote.ID, domain.OrderTypeWorkOrder)
	assert.ErrorIs(t, err, service.ErrQuoteNotApproved)

	setOrderStatus(t, db, quote.ID, domain.OrderStatusApproved)
	_, err = svcs.lifecycle.Convert(context.Background(), quote.ID, domain.OrderTypeQuote)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	serviceOrder, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeServiceOrder,
		CustomerID: customer.ID,
		Title:      "Nao e orcamento",
	})
	require.NoError(t, err)
	setOrderStatus(t, db, serviceOrder.ID, domain.OrderStatusApproved)

	_, err = svcs.lifecycle.Convert(context.Background(), serviceOrder.ID, domain.OrderTypeWorkOrder)
	assert.ErrorIs(t, err, service.ErrNotQuote)
}

func TestOrderLifecycleService_ExpireQuotes(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Construtora Ro")

	expired, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeQuote,
		CustomerID: customer.ID,
		Title:      "Validade vencida",
	})
	require.NoError(t, err)
	setOrderStatus(t, db, expired.ID, domain.OrderStatusPending)
	require.NoError(t, db.Exec(
		"UPDATE orders SET valid_until = ? WHERE id = ?",
		time.Now().AddDate(0, 0, -2), expired.ID,
	).Error)

	current, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeQuote,
		CustomerID: customer.ID,
		Title:      "Ainda valido",
	})
	require.NoError(t, err)
	setOrderStatus(t, db, current.ID, domain.OrderStatusPending)
	require.NoError(t, db.Exec(
		"UPDATE orders SET valid_until = ? WHERE id = ?",
		time.Now().AddDate(0, 0, 30), current.ID,
	).Error)

	count, err := svcs.lifecycle.ExpireQuotes(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := svcs.orders.GetByID(context.Background(), expired.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, got.Status)

	untouched, err := svcs.orders.GetByID(context.Background(), current.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, untouched.Status)
}
