package service_test

import (
	"context"
	"testing"

	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"github.com/primeorcamentos/backoffice-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBdiService_Create_ComputesTotalRate(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)

	created, err := svcs.bdi.Create(context.Background(), &domain.SaveBdiConfigRequest{
		Name:           "Obras publicas 2026",
		Administration: 4,
		Insurance:      0.8,
		Guarantee:      0.2,
		Risk:           0.97,
		Financial:      0.59,
		Profit:         7.4,
		ISS:            5,
		PIS:            0.65,
		COFINS:         3,
		CPRB:           4.5,
	})
	require.NoError(t, err)

	assert.Equal(t, "Obras publicas 2026", created.Name)
	assert.InDelta(t, 31.82, created.TotalRate, 0.05)
}

func TestBdiService_Create_TaxShareTooHigh(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)

	_, err := svcs.bdi.Create(context.Background(), &domain.SaveBdiConfigRequest{
		Name: "Configuracao invalida",
		ISS:  60,
		PIS:  40,
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestBdiService_Update_Recomputes(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)

	created, err := svcs.bdi.Create(context.Background(), &domain.SaveBdiConfigRequest{
		Name:   "Somente lucro",
		Profit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, created.TotalRate)

	updated, err := svcs.bdi.Update(context.Background(), created.ID, &domain.SaveBdiConfigRequest{
		Name:   "Somente lucro",
		Profit: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 20.0, updated.TotalRate)
}

func TestBdiService_Preview_Stateless(t *testing.T) {
	svc := service.NewBdiService(nil, zap.NewNop())

	resp, err := svc.Preview(context.Background(), &domain.BdiPreviewRequest{Profit: 10})
	require.NoError(t, err)
	assert.Equal(t, 10.0, resp.TotalRate)

	_, err = svc.Preview(context.Background(), &domain.BdiPreviewRequest{ISS: 70, COFINS: 30})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestBdiService_List_OrderedByName(t *testing.T) {
	db := setupTestDB(t)
	svcs := setupServices(t, db)

	for _, name := range []string{"Zeladoria", "Alvenaria"} {
		_, err := svcs.bdi.Create(context.Background(), &domain.SaveBdiConfigRequest{Name: name, Profit: 5})
		require.NoError(t, err)
	}

	configs, err := svcs.bdi.List(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, "Alvenaria", configs[0].Name)
	assert.Equal(t, "Zeladoria", configs[1].Name)
}
