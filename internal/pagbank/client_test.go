package pagbank

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutLinkPreferencia(t *testing.T) {
	// PAY tem prioridade
	href, err := CheckoutLink([]Link{
		{Rel: "SELF", Href: "https://x/self"},
		{Rel: "PAY", Href: "https://x/pay"},
		{Rel: "CHECKOUT", Href: "https://x/checkout"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://x/pay", href)

	// Sem PAY, cai para CHECKOUT (nunca para OTHER)
	href, err = CheckoutLink([]Link{
		{Rel: "CHECKOUT", Href: "https://x/checkout"},
		{Rel: "OTHER", Href: "https://x/other"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://x/checkout", href)

	// Sem PAY nem CHECKOUT, usa o primeiro
	href, err = CheckoutLink([]Link{
		{Rel: "SELF", Href: "https://x/self"},
		{Rel: "OTHER", Href: "https://x/other"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://x/self", href)

	// Nenhum link → erro explícito
	_, err = CheckoutLink(nil)
	assert.ErrorIs(t, err, ErrNoPaymentLink)
}

func TestCreateOrder(t *testing.T) {
	var gotAuth string
	var gotBody OrderRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(OrderResponse{
			ID: "ORDE_123",
			Links: []Link{
				{Rel: "PAY", Href: "https://pagseguro/pay/ORDE_123"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("tok_teste", "sandbox")
	c.BaseURL = srv.URL

	resp, err := c.CreateOrder(context.Background(), OrderRequest{
		ReferenceID: "ORDER_1",
		Customer:    Customer{Name: "Maria", Email: "maria@example.com", TaxID: "12345678909"},
		Items:       []Item{{ReferenceID: "p1", Name: "Vestido (M/Bege)", Quantity: 2, UnitAmount: 38990}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ORDE_123", resp.ID)
	assert.Equal(t, "Bearer tok_teste", gotAuth)
	assert.Equal(t, int64(38990), gotBody.Items[0].UnitAmount)
}

func TestCreatePixCharge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/ORDE_123/charges", r.URL.Path)

		var req ChargeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "PIX", req.PaymentMethod.Type)

		json.NewEncoder(w).Encode(ChargeResponse{
			ID:     "CHAR_456",
			Status: "WAITING",
			QRCodes: []QRCode{{
				Text:           "00020126580014br.gov.bcb.pix",
				ExpirationDate: req.PaymentMethod.ExpirationDate,
				Links:          []Link{{Rel: "QRCODE.PNG", Href: "https://pagseguro/qr.png"}},
			}},
		})
	}))
	defer srv.Close()

	c := NewClient("tok_teste", "sandbox")
	c.BaseURL = srv.URL

	resp, err := c.CreatePixCharge(context.Background(), "ORDE_123", ChargeRequest{
		ReferenceID:   "ORDER_1",
		Amount:        Amount{Value: 21400, Currency: "BRL"},
		PaymentMethod: ChargePaymentMethod{Type: "PIX", ExpirationDate: "2026-01-01T12:30:00-03:00"},
	})
	require.NoError(t, err)
	require.Len(t, resp.QRCodes, 1)
	assert.NotEmpty(t, resp.QRCodes[0].Text)
}

func TestErroDoProvedorPropagado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_messages":[{"code":"40002","description":"invalid_parameter","parameter_name":"customer.tax_id"}]}`))
	}))
	defer srv.Close()

	c := NewClient("tok_teste", "sandbox")
	c.BaseURL = srv.URL

	_, err := c.CreateOrder(context.Background(), OrderRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.NotEmpty(t, apiErr.Messages)
	assert.Equal(t, "customer.tax_id", apiErr.Messages[0].ParameterName)
}

func TestStatusDoCorpoNaoSobrescreveHTTP(t *testing.T) {
	// O PagBank devolve "status" no corpo de algumas recusas; o APIError
	// deve manter o status HTTP da resposta, não o campo do payload.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"status":"DECLINED","error_messages":[{"code":"40001","description":"required_parameter_missing","parameter_name":"items"}]}`))
	}))
	defer srv.Close()

	c := NewClient("tok_teste", "sandbox")
	c.BaseURL = srv.URL

	_, err := c.CreateOrder(context.Background(), OrderRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	require.NotEmpty(t, apiErr.Messages)
	assert.Equal(t, "items", apiErr.Messages[0].ParameterName)
	assert.Contains(t, string(apiErr.Raw), "DECLINED")
}
