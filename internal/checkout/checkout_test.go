package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/Felipesc023/completa-site/internal/pagbank"
	"github.com/Felipesc023/completa-site/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type providerFake struct {
	srv        *httptest.Server
	orderCalls atomic.Int64
	pixCalls   atomic.Int64

	lastOrder pagbank.OrderRequest
	lastPix   pagbank.ChargeRequest
	links     []pagbank.Link
	failWith  int
}

func newProviderFake() *providerFake {
	f := &providerFake{
		links: []pagbank.Link{{Rel: "PAY", Href: "https://pagseguro/pay/1"}},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.failWith != 0 {
			w.WriteHeader(f.failWith)
			w.Write([]byte(`{"error_messages":[{"code":"40002","description":"invalid_parameter"}]}`))
			return
		}

		switch {
		case r.URL.Path == "/orders":
			f.orderCalls.Add(1)
			json.NewDecoder(r.Body).Decode(&f.lastOrder)
			json.NewEncoder(w).Encode(pagbank.OrderResponse{ID: "ORDE_1", Links: f.links})

		case strings.HasSuffix(r.URL.Path, "/charges"):
			f.pixCalls.Add(1)
			json.NewDecoder(r.Body).Decode(&f.lastPix)
			json.NewEncoder(w).Encode(pagbank.ChargeResponse{
				ID:     "CHAR_1",
				Status: "WAITING",
				QRCodes: []pagbank.QRCode{{
					Text:           "00020126580014br.gov.bcb.pix0136chave",
					ExpirationDate: f.lastPix.PaymentMethod.ExpirationDate,
					Links:          []pagbank.Link{{Rel: "QRCODE.PNG", Href: "https://pagseguro/qr.png", Media: "image/png"}},
				}},
			})

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	return f
}

func (f *providerFake) client() *pagbank.Client {
	c := pagbank.NewClient("tok_teste", "sandbox")
	c.BaseURL = f.srv.URL
	return c
}

var fixedNow = time.Date(2026, 5, 10, 14, 0, 0, 0, time.FixedZone("-03", -3*3600))

func newOrchestrator(f *providerFake) (*Orchestrator, *store.MemoryOrderStore) {
	orders := store.NewMemoryOrderStore()
	o := &Orchestrator{
		Orders: orders,
		Now:    func() time.Time { return fixedNow },
	}
	if f != nil {
		o.Provider = f.client()
	}
	return o, orders
}

func validRequest() *Request {
	return &Request{
		Items: []models.CartItem{
			{ProductID: "p1", Name: "Vestido Midi Linho", Price: 100.00, Quantity: 2, Size: "M", Color: "Bege"},
		},
		Customer: Customer{
			Name:  "Maria Silva",
			Email: "maria@example.com",
			Phone: "(16) 99999-8888",
			TaxID: "123.456.789-09",
		},
		DeliveryMethod: Delivery,
		Address: models.Address{
			CEP: "01001-000", Street: "Praça da Sé", Number: "100",
			Neighborhood: "Sé", City: "São Paulo", State: "SP",
		},
		Shipping:      models.ShippingOption{Service: "Entrega Padrão", Price: 14, Days: 2},
		PaymentMethod: CreditCard,
	}
}

func TestValidacaoBarraAntesDaRede(t *testing.T) {
	f := newProviderFake()
	defer f.srv.Close()
	o, _ := newOrchestrator(f)
	ctx := context.Background()

	mutations := []struct {
		name  string
		field string
		mut   func(*Request)
	}{
		{"sacola vazia", "items", func(r *Request) { r.Items = nil }},
		{"sem nome", "customer.name", func(r *Request) { r.Customer.Name = "" }},
		{"sem email", "customer.email", func(r *Request) { r.Customer.Email = "" }},
		{"sem telefone", "customer.phone", func(r *Request) { r.Customer.Phone = "" }},
		{"sem CPF", "customer.taxId", func(r *Request) { r.Customer.TaxID = "" }},
		{"CEP incompleto", "address.cep", func(r *Request) { r.Address.CEP = "0100" }},
		{"sem rua", "address.street", func(r *Request) { r.Address.Street = "" }},
		{"sem número", "address.number", func(r *Request) { r.Address.Number = "" }},
		{"sem bairro", "address.neighborhood", func(r *Request) { r.Address.Neighborhood = "" }},
		{"sem cidade", "address.city", func(r *Request) { r.Address.City = "" }},
		{"sem UF", "address.state", func(r *Request) { r.Address.State = "" }},
	}

	for _, tc := range mutations {
		req := validRequest()
		tc.mut(req)

		_, err := o.Process(ctx, req)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, tc.name)
		assert.Equal(t, tc.field, vErr.Field, tc.name)
	}

	assert.Zero(t, f.orderCalls.Load(), "validação deve falhar antes de qualquer chamada de rede")
}

func TestRetiradaNaoExigeEndereco(t *testing.T) {
	f := newProviderFake()
	defer f.srv.Close()
	o, _ := newOrchestrator(f)

	req := validRequest()
	req.DeliveryMethod = Pickup
	req.Address = models.Address{}
	req.Shipping = models.ShippingOption{Service: "Retirada na Loja", Price: 0}

	_, err := o.Process(context.Background(), req)
	require.NoError(t, err)

	// O provedor exige endereço mesmo para retirada: vai o da loja
	assert.Equal(t, "14010120", f.lastOrder.Shipping.Address.PostalCode)
	assert.Equal(t, "Ribeirão Preto", f.lastOrder.Shipping.Address.City)
}

func TestCartaoRetornaLinkDeRedirecionamento(t *testing.T) {
	f := newProviderFake()
	defer f.srv.Close()
	f.links = []pagbank.Link{
		{Rel: "CHECKOUT", Href: "https://pagseguro/checkout/1"},
		{Rel: "OTHER", Href: "https://pagseguro/other"},
	}
	o, orders := newOrchestrator(f)

	res, err := o.Process(context.Background(), validRequest())
	require.NoError(t, err)

	// Sem link PAY, cai para CHECKOUT — nunca OTHER
	assert.Equal(t, "https://pagseguro/checkout/1", res.CheckoutURL)
	assert.Equal(t, int64(1), f.orderCalls.Load())
	assert.Zero(t, f.pixCalls.Load())

	// Pedido persistido com o link e o total congelado
	saved, _ := orders.List(context.Background())
	require.Len(t, saved, 1)
	assert.Equal(t, "https://pagseguro/checkout/1", saved[0].PaymentLink)
	assert.Equal(t, models.StatusAguardandoPagamento, saved[0].Status)
}

func TestSemLinkDePagamento(t *testing.T) {
	f := newProviderFake()
	defer f.srv.Close()
	f.links = nil
	o, orders := newOrchestrator(f)

	_, err := o.Process(context.Background(), validRequest())
	assert.ErrorIs(t, err, pagbank.ErrNoPaymentLink)

	saved, _ := orders.List(context.Background())
	assert.Empty(t, saved, "sem link não há pedido")
}

func TestPixFazExatamenteDuasChamadas(t *testing.T) {
	f := newProviderFake()
	defer f.srv.Close()
	o, _ := newOrchestrator(f)

	req := validRequest()
	req.PaymentMethod = Pix

	res, err := o.Process(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), f.orderCalls.Load())
	assert.Equal(t, int64(1), f.pixCalls.Load())

	require.NotNil(t, res.Pix)
	assert.NotEmpty(t, res.Pix.Code)
	assert.NotEmpty(t, res.Pix.QRCodeBase64)
	assert.Equal(t, "https://pagseguro/qr.png", res.Pix.QRCodeURL)

	// Expiração exatamente 1800s após a criação da cobrança
	assert.Equal(t, fixedNow.Add(30*time.Minute).Unix(), res.Pix.ExpiresAt.Unix())
	assert.Equal(t, "PIX", f.lastPix.PaymentMethod.Type)
}

func TestValoresEmCentavos(t *testing.T) {
	f := newProviderFake()
	defer f.srv.Close()
	o, orders := newOrchestrator(f)

	req := validRequest() // 100.00 × 2 + frete 14.00
	res, err := o.Process(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, f.lastOrder.Items, 1)
	assert.Equal(t, int64(10000), f.lastOrder.Items[0].UnitAmount)
	assert.Equal(t, int64(1400), f.lastOrder.Shipping.Amount)
	require.NotNil(t, f.lastOrder.Amount)
	assert.Equal(t, int64(21400), f.lastOrder.Amount.Value)

	// CPF e CEP limpos para dígitos
	assert.Equal(t, "12345678909", f.lastOrder.Customer.TaxID)
	assert.Equal(t, "01001000", f.lastOrder.Shipping.Address.PostalCode)

	// Telefone quebrado em país/DDD/número
	require.Len(t, f.lastOrder.Customer.Phones, 1)
	assert.Equal(t, "55", f.lastOrder.Customer.Phones[0].Country)
	assert.Equal(t, "16", f.lastOrder.Customer.Phones[0].Area)
	assert.Equal(t, "999998888", f.lastOrder.Customer.Phones[0].Number)

	// Invariante do pedido: total = subtotal + frete no momento da criação
	assert.InDelta(t, 200.0, res.Order.Subtotal, 0.001)
	assert.InDelta(t, 214.0, res.Order.Total, 0.001)

	saved, _ := orders.List(context.Background())
	require.Len(t, saved, 1)
	assert.InDelta(t, 214.0, saved[0].Total, 0.001)
}

func TestPrecoPromocionalNoSubtotal(t *testing.T) {
	f := newProviderFake()
	defer f.srv.Close()
	o, _ := newOrchestrator(f)

	req := validRequest()
	req.Items = []models.CartItem{
		{ProductID: "p2", Name: "Blusa Seda", Price: 299.90, PromoPrice: 249.90, Quantity: 1, Size: "P", Color: "Off White"},
	}

	res, err := o.Process(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(24990), f.lastOrder.Items[0].UnitAmount)
	assert.InDelta(t, 249.90, res.Order.Subtotal, 0.001)
}

func TestCredencialAusente(t *testing.T) {
	o, _ := newOrchestrator(nil) // Provider nil = PAGBANK_TOKEN ausente

	_, err := o.Process(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestErroDoProvedorSobeIntacto(t *testing.T) {
	f := newProviderFake()
	defer f.srv.Close()
	f.failWith = http.StatusUnprocessableEntity
	o, orders := newOrchestrator(f)

	_, err := o.Process(context.Background(), validRequest())
	var apiErr *pagbank.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)

	saved, _ := orders.List(context.Background())
	assert.Empty(t, saved)
}

func TestFallbackWhatsApp(t *testing.T) {
	f := newProviderFake()
	defer f.srv.Close()
	o, orders := newOrchestrator(f)

	req := validRequest()
	req.PaymentMethod = WhatsApp

	res, err := o.Process(context.Background(), req)
	require.NoError(t, err)

	assert.Zero(t, f.orderCalls.Load(), "fallback não chama o provedor")
	assert.Contains(t, res.WhatsAppURL, "https://wa.me/")

	saved, _ := orders.List(context.Background())
	require.Len(t, saved, 1)
	assert.Equal(t, models.StatusAguardandoPagamento, saved[0].Status)
}
