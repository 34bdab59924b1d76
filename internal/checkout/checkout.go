package checkout

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"math"
	"net/url"
	"os"
	"time"

	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/Felipesc023/completa-site/internal/pagbank"
	"github.com/Felipesc023/completa-site/internal/store"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

type DeliveryMethod string

const (
	Delivery DeliveryMethod = "DELIVERY"
	Pickup   DeliveryMethod = "PICKUP"
)

type PaymentMethod string

const (
	CreditCard PaymentMethod = "credit_card"
	Boleto     PaymentMethod = "boleto"
	Pix        PaymentMethod = "pix"
	WhatsApp   PaymentMethod = "whatsapp"
)

// Janela fixa de expiração da cobrança PIX.
const pixExpiration = 30 * time.Minute

// Endereço da loja física, usado como fallback de entrega nos pedidos de
// retirada (o schema do provedor exige endereço mesmo para PICKUP).
var storeAddress = models.Address{
	CEP:          "14010120",
	Street:       "R. Barão do Amazonas",
	Number:       "730",
	Neighborhood: "Centro",
	City:         "Ribeirão Preto",
	State:        "SP",
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	TaxID string `json:"taxId"`
}

type Request struct {
	UserID         string                `json:"-"`
	ReferenceID    string                `json:"referenceId,omitempty"`
	Items          []models.CartItem     `json:"items"`
	Customer       Customer              `json:"customer"`
	DeliveryMethod DeliveryMethod        `json:"deliveryMethod"`
	Address        models.Address        `json:"address"`
	Shipping       models.ShippingOption `json:"shipping"`
	PaymentMethod  PaymentMethod         `json:"paymentMethod"`
}

type PixPayment struct {
	Code         string    `json:"code"`
	QRCodeURL    string    `json:"qrCodeUrl,omitempty"`
	QRCodeBase64 string    `json:"qrCodeBase64,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type Result struct {
	Order       *models.Order `json:"order"`
	ProviderID  string        `json:"providerId,omitempty"`
	PaymentType PaymentMethod `json:"paymentType"`
	CheckoutURL string        `json:"checkoutUrl,omitempty"`
	Pix         *PixPayment   `json:"pix,omitempty"`
	WhatsAppURL string        `json:"whatsappUrl,omitempty"`
}

// Mailer envia a confirmação de pedido; a falha nunca bloqueia o checkout.
type Mailer interface {
	SendOrderConfirmation(order models.Order) error
}

// Orchestrator valida os dados do cliente, monta a ordem no provedor e
// grava o snapshot do pedido. Cada tentativa é uma ida independente ao
// provedor: nada é deduplicado nem retentado.
type Orchestrator struct {
	Provider  *pagbank.Client
	Orders    store.OrderStore
	Mailer    Mailer
	NotifyURL string
	Now       func() time.Time
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Centavos converte um valor em reais para a menor unidade da moeda.
func Centavos(v float64) int64 {
	return int64(math.Round(v * 100))
}

func digitsOnly(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// validate aplica as regras na ordem do fluxo, devolvendo a primeira
// violação: sacola → identificação → endereço (apenas para entrega).
func (o *Orchestrator) validate(req *Request) error {
	if len(req.Items) == 0 {
		return invalid("items", "Sacola vazia")
	}

	switch {
	case req.Customer.Name == "":
		return invalid("customer.name", "Informe o nome completo")
	case req.Customer.Email == "":
		return invalid("customer.email", "Informe o e-mail")
	case req.Customer.Phone == "":
		return invalid("customer.phone", "Informe o telefone")
	case req.Customer.TaxID == "":
		return invalid("customer.taxId", "Informe o CPF")
	}

	if req.DeliveryMethod == Delivery {
		a := req.Address
		switch {
		case len(digitsOnly(a.CEP)) != 8:
			return invalid("address.cep", "CEP inválido")
		case a.Street == "":
			return invalid("address.street", "Preencha o endereço completo para entrega")
		case a.Number == "":
			return invalid("address.number", "Preencha o endereço completo para entrega")
		case a.Neighborhood == "":
			return invalid("address.neighborhood", "Preencha o endereço completo para entrega")
		case a.City == "":
			return invalid("address.city", "Preencha o endereço completo para entrega")
		case a.State == "":
			return invalid("address.state", "Preencha o endereço completo para entrega")
		}
	}

	return nil
}

func (o *Orchestrator) subtotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.UnitPrice() * float64(item.Quantity)
	}
	return total
}

// Process executa o pipeline do checkout. A validação acontece antes de
// qualquer chamada de rede; erros do provedor sobem intactos.
func (o *Orchestrator) Process(ctx context.Context, req *Request) (*Result, error) {
	if err := o.validate(req); err != nil {
		return nil, err
	}

	subtotal := o.subtotal(req.Items)
	total := subtotal + req.Shipping.Price

	address := req.Address
	if req.DeliveryMethod == Pickup {
		address = storeAddress
	}

	order := &models.Order{
		UserID:        req.UserID,
		CustomerName:  req.Customer.Name,
		CustomerPhone: req.Customer.Phone,
		CustomerEmail: req.Customer.Email,
		Address:       address,
		Items:         orderItems(req.Items),
		Shipping: models.OrderShipping{
			Service: req.Shipping.Service,
			Price:   req.Shipping.Price,
			Days:    req.Shipping.Days,
		},
		Subtotal:  subtotal,
		Total:     total,
		Status:    models.StatusAguardandoPagamento,
		CreatedAt: o.now(),
	}

	// Caminho de fallback: pedido fechado pelo WhatsApp, sem provedor.
	if req.PaymentMethod == WhatsApp {
		if err := o.Orders.Create(ctx, order); err != nil {
			return nil, err
		}
		o.sendConfirmation(*order)
		return &Result{
			Order:       order,
			PaymentType: WhatsApp,
			WhatsAppURL: whatsAppLink(order),
		}, nil
	}

	if o.Provider == nil {
		return nil, ErrMissingCredential
	}

	providerReq := o.buildProviderOrder(req, subtotal)
	providerOrder, err := o.Provider.CreateOrder(ctx, providerReq)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Order:       order,
		ProviderID:  providerOrder.ID,
		PaymentType: req.PaymentMethod,
	}

	switch req.PaymentMethod {
	case Pix:
		pix, err := o.createPixCharge(ctx, providerOrder.ID, providerReq.ReferenceID, total)
		if err != nil {
			return nil, err
		}
		result.Pix = pix

	default: // cartão ou boleto: checkout hospedado
		link, err := pagbank.CheckoutLink(providerOrder.Links)
		if err != nil {
			return nil, err
		}
		result.CheckoutURL = link
		order.PaymentLink = link
	}

	if err := o.Orders.Create(ctx, order); err != nil {
		return nil, err
	}

	log.Printf("💳 Checkout criado: %s (R$ %.2f) para %s via %s",
		providerOrder.ID, total, req.Customer.Email, req.PaymentMethod)

	o.sendConfirmation(*order)
	return result, nil
}

func orderItems(items []models.CartItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.UnitPrice(),
			Size:      item.Size,
			Color:     item.Color,
		})
	}
	return out
}

func (o *Orchestrator) buildProviderOrder(req *Request, subtotal float64) pagbank.OrderRequest {
	phone := digitsOnly(req.Customer.Phone)
	area, number := "", phone
	if len(phone) > 2 {
		area, number = phone[:2], phone[2:]
	}

	items := make([]pagbank.Item, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, pagbank.Item{
			ReferenceID: item.ProductID,
			Name:        fmt.Sprintf("%s (%s/%s)", item.Name, item.Size, item.Color),
			Quantity:    item.Quantity,
			UnitAmount:  Centavos(item.UnitPrice()),
		})
	}

	address := req.Address
	if req.DeliveryMethod == Pickup {
		address = storeAddress
	}

	referenceID := req.ReferenceID
	if referenceID == "" {
		referenceID = "ORDER_" + uuid.NewString()
	}

	methods := []pagbank.PaymentMethod{{Type: "CREDIT_CARD"}, {Type: "BOLETO"}}
	if req.PaymentMethod == Pix {
		methods = []pagbank.PaymentMethod{{Type: "PIX"}}
	}

	var notificationURLs []string
	if o.NotifyURL != "" {
		notificationURLs = []string{o.NotifyURL}
	}

	total := Centavos(subtotal) + Centavos(req.Shipping.Price)

	return pagbank.OrderRequest{
		ReferenceID: referenceID,
		Customer: pagbank.Customer{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
			TaxID: digitsOnly(req.Customer.TaxID),
			Phones: []pagbank.Phone{{
				Country: "55",
				Area:    area,
				Number:  number,
				Type:    "MOBILE",
			}},
		},
		Items:  items,
		Amount: &pagbank.Amount{Value: total, Currency: "BRL"},
		Shipping: pagbank.Shipping{
			Amount: Centavos(req.Shipping.Price),
			Address: pagbank.Address{
				Street:     address.Street,
				Number:     address.Number,
				Complement: address.Complement,
				Locality:   address.Neighborhood,
				City:       address.City,
				RegionCode: address.State,
				Country:    "BRA",
				PostalCode: digitsOnly(address.CEP),
			},
		},
		NotificationURLs: notificationURLs,
		PaymentMethods:   methods,
	}
}

func (o *Orchestrator) createPixCharge(ctx context.Context, orderID, referenceID string, total float64) (*PixPayment, error) {
	expiresAt := o.now().Add(pixExpiration)

	charge, err := o.Provider.CreatePixCharge(ctx, orderID, pagbank.ChargeRequest{
		ReferenceID: referenceID,
		Description: "Pedido Completa",
		Amount:      pagbank.Amount{Value: Centavos(total), Currency: "BRL"},
		PaymentMethod: pagbank.ChargePaymentMethod{
			Type:           "PIX",
			ExpirationDate: expiresAt.Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, err
	}

	if len(charge.QRCodes) == 0 || charge.QRCodes[0].Text == "" {
		return nil, fmt.Errorf("cobrança PIX sem código de pagamento")
	}
	qr := charge.QRCodes[0]

	pix := &PixPayment{Code: qr.Text, ExpiresAt: expiresAt}
	if qr.ExpirationDate != "" {
		if ts, err := time.Parse(time.RFC3339, qr.ExpirationDate); err == nil {
			pix.ExpiresAt = ts
		}
	}
	for _, l := range qr.Links {
		if l.Rel == "QRCODE.PNG" || l.Media == "image/png" {
			pix.QRCodeURL = l.Href
			break
		}
	}

	// QR gerado localmente para exibição imediata, sem depender do CDN
	// do provedor.
	if png, err := qrcode.Encode(qr.Text, qrcode.Medium, 256); err == nil {
		pix.QRCodeBase64 = base64.StdEncoding.EncodeToString(png)
	} else {
		log.Printf("⚠️ Erro ao gerar QR code local: %v", err)
	}

	return pix, nil
}

func whatsAppLink(order *models.Order) string {
	number := digitsOnly(os.Getenv("WHATSAPP_NUMBER"))
	text := fmt.Sprintf("Olá! Acabei de fazer o pedido #%s no site, total R$ %.2f. Como faço o pagamento?",
		order.ID.String()[:8], order.Total)
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(text))
}

func (o *Orchestrator) sendConfirmation(order models.Order) {
	if o.Mailer == nil {
		return
	}
	if err := o.Mailer.SendOrderConfirmation(order); err != nil {
		log.Printf("⚠️ Erro ao enviar e-mail de confirmação para %s: %v", order.CustomerEmail, err)
	}
}
