package mercadopago

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/buen-sabor-api/internal/domain/entity"
	"github.com/jhoicas/buen-sabor-api/pkg/config"
)

func testOrder() *entity.Order {
	return &entity.Order{
		ID:         "ord-1",
		Total:      decimal.NewFromInt(220),
		FinalTotal: decimal.NewFromInt(220),
		Details: []entity.OrderDetail{
			{ManufacturedItemID: "pizza", Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
		},
		InventoryDetails: []entity.OrderInventoryDetail{
			{InventoryItemID: "gaseosa", Quantity: 1, UnitPrice: decimal.NewFromInt(20)},
		},
	}
}

func TestCreatePreference_OK(t *testing.T) {
	var got preferenceRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, preferencePath, r.URL.Path)
		assert.Equal(t, "Bearer token-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"pref-9","init_point":"https://mp.test/init/pref-9"}`))
	}))
	defer srv.Close()

	c := NewClient(config.MercadoPagoConfig{AccessToken: "token-test", BaseURL: srv.URL, FrontendURL: "https://front.test/"}, zerolog.Nop())
	pref, err := c.CreatePreference(context.Background(), testOrder(), map[string]string{"pizza": "Pizza"})
	require.NoError(t, err)

	assert.Equal(t, "pref-9", pref.ID)
	assert.Equal(t, "https://mp.test/init/pref-9", pref.PaymentURL)
	assert.Equal(t, "ord-1", got.ExternalReference)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Pizza", got.Items[0].Description)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, 100.0, got.Items[0].UnitPrice)
	assert.Equal(t, "gaseosa", got.Items[1].Description, "sin nombre se usa el id")
	require.NotNil(t, got.BackURLs)
	assert.Equal(t, "https://front.test/orders/ord-1?status=success", got.BackURLs.Success)
}

func TestCreatePreference_ConDescuentoUnaLinea(t *testing.T) {
	var got preferenceRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"pref-10","sandbox_init_point":"https://mp.test/sandbox"}`))
	}))
	defer srv.Close()

	o := testOrder()
	o.Discount = decimal.NewFromInt(22)
	o.FinalTotal = decimal.NewFromInt(198)
	c := NewClient(config.MercadoPagoConfig{AccessToken: "t", BaseURL: srv.URL}, zerolog.Nop())
	pref, err := c.CreatePreference(context.Background(), o, nil)
	require.NoError(t, err)

	assert.Equal(t, "https://mp.test/sandbox", pref.PaymentURL)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 198.0, got.Items[0].UnitPrice)
	assert.Nil(t, got.BackURLs)
}

func TestCreatePreference_ErrorHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid access token","error":"unauthorized"}`))
	}))
	defer srv.Close()

	c := NewClient(config.MercadoPagoConfig{AccessToken: "malo", BaseURL: srv.URL}, zerolog.Nop())
	_, err := c.CreatePreference(context.Background(), testOrder(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid access token")
}

func TestCreatePreference_SinToken(t *testing.T) {
	c := NewClient(config.MercadoPagoConfig{}, zerolog.Nop())
	_, err := c.CreatePreference(context.Background(), testOrder(), nil)
	assert.Error(t, err)
}
