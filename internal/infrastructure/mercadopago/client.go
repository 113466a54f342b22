package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/buen-sabor-api/internal/application/payment"
	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	"github.com/jhoicas/buen-sabor-api/pkg/config"
)

// Verificar en tiempo de compilación que Client implementa payment.Gateway.
var _ payment.Gateway = (*Client)(nil)

const (
	defaultBaseURL = "https://api.mercadopago.com"
	preferencePath = "/checkout/preferences"
	itemTitle      = "Producto de El Buen Sabor"
	currencyID     = "ARS"
)

// Client adaptador de la API REST de preferencias de Mercado Pago sobre net/http.
type Client struct {
	accessToken string
	baseURL     string
	frontendURL string
	httpClient  *http.Client
	log         zerolog.Logger
}

// NewClient construye el adaptador. Si AccessToken está vacío las llamadas devuelven error
// descriptivo en lugar de panic.
func NewClient(cfg config.MercadoPagoConfig, log zerolog.Logger) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		accessToken: cfg.AccessToken,
		baseURL:     base,
		frontendURL: strings.TrimRight(cfg.FrontendURL, "/"),
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		log:         log,
	}
}

// ── Estructuras del protocolo de preferencias ────────────────────────────────

type preferenceItem struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	CurrencyID  string  `json:"currency_id"`
}

type backURLs struct {
	Success string `json:"success,omitempty"`
	Failure string `json:"failure,omitempty"`
	Pending string `json:"pending,omitempty"`
}

type preferenceRequest struct {
	Items             []preferenceItem `json:"items"`
	ExternalReference string           `json:"external_reference"`
	BackURLs          *backURLs        `json:"back_urls,omitempty"`
	AutoReturn        string           `json:"auto_return,omitempty"`
}

type preferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
	Message          string `json:"message"`
	Error            string `json:"error"`
}

// buildItems una línea por detalle al precio guardado en el pedido. Si el pedido tiene
// descuento de retiro se cobra una única línea por el total final, porque la API no admite
// precios negativos.
func buildItems(order *entity.Order, itemNames map[string]string) []preferenceItem {
	if order.Discount.IsPositive() {
		return []preferenceItem{{
			Title:       itemTitle,
			Description: "Pedido " + order.ID,
			Quantity:    1,
			UnitPrice:   order.FinalTotal.InexactFloat64(),
			CurrencyID:  currencyID,
		}}
	}
	items := make([]preferenceItem, 0, len(order.Details)+len(order.InventoryDetails))
	for _, d := range order.Details {
		name := itemNames[d.ManufacturedItemID]
		if name == "" {
			name = d.ManufacturedItemID
		}
		items = append(items, preferenceItem{
			Title:       itemTitle,
			Description: name,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice.InexactFloat64(),
			CurrencyID:  currencyID,
		})
	}
	for _, d := range order.InventoryDetails {
		name := itemNames[d.InventoryItemID]
		if name == "" {
			name = d.InventoryItemID
		}
		items = append(items, preferenceItem{
			Title:       itemTitle,
			Description: name,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice.InexactFloat64(),
			CurrencyID:  currencyID,
		})
	}
	return items
}

// CreatePreference crea la preferencia de cobro del pedido y devuelve su id y la URL de pago.
func (c *Client) CreatePreference(ctx context.Context, order *entity.Order, itemNames map[string]string) (*payment.Preference, error) {
	if c.accessToken == "" {
		return nil, fmt.Errorf("MP: MP_ACCESS_TOKEN no configurado")
	}
	payload := preferenceRequest{
		Items:             buildItems(order, itemNames),
		ExternalReference: order.ID,
	}
	if c.frontendURL != "" {
		payload.BackURLs = &backURLs{
			Success: c.frontendURL + "/orders/" + order.ID + "?status=success",
			Failure: c.frontendURL + "/orders/" + order.ID + "?status=failure",
			Pending: c.frontendURL + "/orders/" + order.ID + "?status=pending",
		}
		payload.AutoReturn = "approved"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("MP: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+preferencePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("MP: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Idempotency-Key", order.ID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("MP: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("MP: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("MP: leer respuesta: %w", err)
	}

	var pr preferenceResponse
	jsonErr := json.Unmarshal(rawBody, &pr)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		if jsonErr == nil && pr.Message != "" {
			return nil, fmt.Errorf("MP: error HTTP %d: %s", resp.StatusCode, pr.Message)
		}
		return nil, fmt.Errorf("MP: error HTTP %d: %s", resp.StatusCode, string(rawBody))
	}
	if jsonErr != nil {
		return nil, fmt.Errorf("MP: respuesta no es JSON: %w", jsonErr)
	}
	if pr.ID == "" {
		return nil, fmt.Errorf("MP: respuesta sin id de preferencia")
	}

	url := pr.InitPoint
	if url == "" {
		url = pr.SandboxInitPoint
	}
	c.log.Debug().Str("order_id", order.ID).Str("preference_id", pr.ID).Msg("preferencia creada")
	return &payment.Preference{ID: pr.ID, PaymentURL: url}, nil
}
