// Package lookup provides optional read-only connectivity to public
// Brazilian registries: ViaCEP for postal codes and the federal CNPJ
// registry for company data. It is an enrichment convenience only; the
// application runs fully without it.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/primeorcamentos/backoffice-api/internal/config"
	"go.uber.org/zap"
)

const defaultTimeout = 5 * time.Second

var nonDigits = regexp.MustCompile(`\D`)

// Address is a postal-code lookup result.
type Address struct {
	PostalCode string `json:"postalCode"`
	Street     string `json:"street"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
}

// Company is a tax-registry lookup result.
type Company struct {
	TaxID      string `json:"taxId"`
	LegalName  string `json:"legalName"`
	TradeName  string `json:"tradeName"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// Client queries the public registries over HTTP. A nil client is valid
// and means lookups are disabled.
type Client struct {
	http          *http.Client
	postalBaseURL string
	taxIDBaseURL  string
	logger        *zap.Logger
}

// NewClient creates a lookup client from configuration.
// Returns nil if lookups are not enabled.
func NewClient(cfg *config.LookupConfig, logger *zap.Logger) *Client {
	if cfg == nil || !cfg.Enabled {
		logger.Info("External lookup client disabled")
		return nil
	}

	timeout := cfg.TimeoutDuration()
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger.Info("Initializing external lookup client",
		zap.String("postal_base_url", cfg.PostalBaseURL),
		zap.String("tax_id_base_url", cfg.TaxIDBaseURL),
		zap.Duration("timeout", timeout),
	)

	return &Client{
		http:          &http.Client{Timeout: timeout},
		postalBaseURL: strings.TrimRight(cfg.PostalBaseURL, "/"),
		taxIDBaseURL:  strings.TrimRight(cfg.TaxIDBaseURL, "/"),
		logger:        logger,
	}
}

// PostalCode resolves a CEP to an address. The code may contain
// punctuation; only its digits are used.
func (c *Client) PostalCode(ctx context.Context, code string) (*Address, error) {
	digits := nonDigits.ReplaceAllString(code, "")
	if len(digits) != 8 {
		return nil, fmt.Errorf("postal code must have 8 digits, got %q", code)
	}

	url := fmt.Sprintf("%s/%s/json/", c.postalBaseURL, digits)
	var payload struct {
		Cep        string `json:"cep"`
		Logradouro string `json:"logradouro"`
		Bairro     string `json:"bairro"`
		Localidade string `json:"localidade"`
		UF         string `json:"uf"`
		Erro       bool   `json:"erro"`
	}
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}
	if payload.Erro {
		return nil, fmt.Errorf("postal code %s not found", digits)
	}

	return &Address{
		PostalCode: payload.Cep,
		Street:     payload.Logradouro,
		District:   payload.Bairro,
		City:       payload.Localidade,
		State:      payload.UF,
	}, nil
}

// TaxID resolves a CNPJ to registered company data. CPF numbers are not
// covered by the public registry and are rejected.
func (c *Client) TaxID(ctx context.Context, taxID string) (*Company, error) {
	digits := nonDigits.ReplaceAllString(taxID, "")
	if len(digits) != 14 {
		return nil, fmt.Errorf("tax id must be a 14-digit CNPJ, got %q", taxID)
	}

	url := fmt.Sprintf("%s/%s", c.taxIDBaseURL, digits)
	var payload struct {
		CNPJ         string `json:"cnpj"`
		RazaoSocial  string `json:"razao_social"`
		NomeFantasia string `json:"nome_fantasia"`
		Logradouro   string `json:"logradouro"`
		Numero       string `json:"numero"`
		Municipio    string `json:"municipio"`
		UF           string `json:"uf"`
		CEP          string `json:"cep"`
		Telefone     string `json:"ddd_telefone_1"`
		Email        string `json:"email"`
	}
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	street := payload.Logradouro
	if payload.Numero != "" {
		street = street + ", " + payload.Numero
	}

	return &Company{
		TaxID:      payload.CNPJ,
		LegalName:  payload.RazaoSocial,
		TradeName:  payload.NomeFantasia,
		Street:     street,
		City:       payload.Municipio,
		State:      payload.UF,
		PostalCode: payload.CEP,
		Phone:      payload.Telefone,
		Email:      payload.Email,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("lookup target not found")
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("lookup returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode lookup response: %w", err)
	}
	return nil
}
