package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"github.com/primeorcamentos/backoffice-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueTaxID() string {
	return fmt.Sprintf("%014d", time.Now().UnixNano()%100000000000000)
}

func TestCustomerService_Create(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)

	created, err := svcs.customers.Create(context.Background(), &domain.CreateCustomerRequest{
		Name:       "Metalurgica Andrade",
		TaxID:      uniqueTaxID(),
		Email:      "contato@andrade.com.br",
		City:       "Campinas",
		State:      "SP",
		PostalCode: "13010-000",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "", created.ID.String())
	assert.Equal(t, "Metalurgica Andrade", created.Name)
	assert.True(t, created.IsActive)
	assert.Equal(t, 0, created.OpenOrders)
}

func TestCustomerService_Create_DuplicateTaxID(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	taxID := uniqueTaxID()

	_, err := svcs.customers.Create(context.Background(), &domain.CreateCustomerRequest{
		Name:  "Original",
		TaxID: taxID,
	})
	require.NoError(t, err)

	_, err = svcs.customers.Create(context.Background(), &domain.CreateCustomerRequest{
		Name:  "Duplicado",
		TaxID: taxID,
	})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestCustomerService_Update_CanDeactivate(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)

	created, err := svcs.customers.Create(context.Background(), &domain.CreateCustomerRequest{
		Name: "Cliente Ativo",
	})
	require.NoError(t, err)

	inactive := false
	updated, err := svcs.customers.Update(context.Background(), created.ID, &domain.UpdateCustomerRequest{
		Name:     "Cliente Desativado",
		IsActive: &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "Cliente Desativado", updated.Name)
	assert.False(t, updated.IsActive)
}

func TestCustomerService_Delete_BlockedByOpenOrders(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Cliente Com Pedidos")

	_, err := svcs.orders.Create(context.Background(), &domain.CreateOrderRequest{
		Type:       domain.OrderTypeQuote,
		CustomerID: customer.ID,
		Title:      "Pedido em aberto",
	})
	require.NoError(t, err)

	err = svcs.customers.Delete(context.Background(), customer.ID)
	assert.ErrorIs(t, err, service.ErrCustomerHasOrders)

	got, err := svcs.customers.GetByID(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.OpenOrders)
}

func TestCustomerService_Delete(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)
	customer := createTestCustomer(t, db, "Cliente Sem Pedidos")

	require.NoError(t, svcs.customers.Delete(context.Background(), customer.ID))

	_, err := svcs.customers.GetByID(context.Background(), customer.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCustomerService_List_SearchAndActiveFilter(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)

	_, err := svcs.customers.Create(context.Background(), &domain.CreateCustomerRequest{Name: "Padaria Sao Jorge"})
	require.NoError(t, err)

	inactive := createTestCustomer(t, db, "Antigo Fornecedor")
	require.NoError(t, db.Exec("UPDATE customers SET is_active = false WHERE id = ?", inactive.ID).Error)

	results, err := svcs.customers.List(context.Background(), "sao jorge", false, 50, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Padaria Sao Jorge", results[0].Name)

	active, err := svcs.customers.List(context.Background(), "", true, 50, 0)
	require.NoError(t, err)
	for _, c := range active {
		assert.True(t, c.IsActive)
	}
}

func TestCustomerService_Lookup_DisabledWithoutClient(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)

	_, err := svcs.customers.LookupTaxID(context.Background(), "12345678000190")
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svcs.customers.LookupPostalCode(context.Background(), "01310-100")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
