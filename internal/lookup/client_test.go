package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/primeorcamentos/backoffice-api/internal/config"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(&config.LookupConfig{
		Enabled:        true,
		PostalBaseURL:  srv.URL,
		TaxIDBaseURL:   srv.URL,
		TimeoutSeconds: 2,
	}, zap.NewNop())
	require.NotNil(t, client)
	return client, srv
}

func TestNewClient_Disabled(t *testing.T) {
	client := NewClient(&config.LookupConfig{Enabled: false}, zap.NewNop())
	assert.Nil(t, client)
}

func TestPostalCode(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/01310100/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"Sao Paulo","uf":"SP"}`))
	}))

	addr, err := client.PostalCode(context.Background(), "01310-100")
	require.NoError(t, err)
	assert.Equal(t, "Avenida Paulista", addr.Street)
	assert.Equal(t, "Sao Paulo", addr.City)
	assert.Equal(t, "SP", addr.State)
}

func TestPostalCode_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"erro": true}`))
	}))

	_, err := client.PostalCode(context.Background(), "99999999")
	assert.Error(t, err)
}

func TestPostalCode_BadInput(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())

	_, err := client.PostalCode(context.Background(), "123")
	assert.Error(t, err)
}

func TestTaxID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/12345678000190", r.URL.Path)
		w.Write([]byte(`{"cnpj":"12345678000190","razao_social":"Construtora Almeida LTDA","nome_fantasia":"Almeida","logradouro":"Rua das Obras","numero":"42","municipio":"Belo Horizonte","uf":"MG","cep":"30110000"}`))
	}))

	company, err := client.TaxID(context.Background(), "12.345.678/0001-90")
	require.NoError(t, err)
	assert.Equal(t, "Construtora Almeida LTDA", company.LegalName)
	assert.Equal(t, "Rua das Obras, 42", company.Street)
	assert.Equal(t, "MG", company.State)
}

func TestTaxID_RejectsCPF(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())

	_, err := client.TaxID(context.Background(), "123.456.789-09")
	assert.Error(t, err)
}

func TestGetJSON_ServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))

	_, err := client.PostalCode(context.Background(), "01310100")
	assert.ErrorContains(t, err, "502")
}
