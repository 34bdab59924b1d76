package pagbank

// Contratos tipados da API de Orders do PagBank (PagSeguro).
// Valores monetários sempre em centavos (unit_amount / amount.value).

type Phone struct {
	Country string `json:"country"`
	Area    string `json:"area"`
	Number  string `json:"number"`
	Type    string `json:"type"`
}

type Customer struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	TaxID  string  `json:"tax_id"`
	Phones []Phone `json:"phones"`
}

type Item struct {
	ReferenceID string `json:"reference_id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	UnitAmount  int64  `json:"unit_amount"`
}

type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	Locality   string `json:"locality"`
	City       string `json:"city"`
	RegionCode string `json:"region_code"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

type Shipping struct {
	Amount  int64   `json:"amount,omitempty"`
	Address Address `json:"address"`
}

type PaymentMethod struct {
	Type string `json:"type"`
}

type OrderRequest struct {
	ReferenceID      string          `json:"reference_id"`
	Customer         Customer        `json:"customer"`
	Items            []Item          `json:"items"`
	Amount           *Amount         `json:"amount,omitempty"`
	Shipping         Shipping        `json:"shipping"`
	NotificationURLs []string        `json:"notification_urls,omitempty"`
	PaymentMethods   []PaymentMethod `json:"payment_methods,omitempty"`
}

type Link struct {
	Rel   string `json:"rel"`
	Href  string `json:"href"`
	Media string `json:"media,omitempty"`
	Type  string `json:"type,omitempty"`
}

type OrderResponse struct {
	ID          string `json:"id"`
	ReferenceID string `json:"reference_id"`
	Links       []Link `json:"links"`
}

type Amount struct {
	Value    int64  `json:"value"`
	Currency string `json:"currency"`
}

// ChargeRequest cria uma cobrança PIX contra uma ordem existente.
// ExpirationDate em RFC 3339.
type ChargeRequest struct {
	ReferenceID   string              `json:"reference_id"`
	Description   string              `json:"description,omitempty"`
	Amount        Amount              `json:"amount"`
	PaymentMethod ChargePaymentMethod `json:"payment_method"`
}

type ChargePaymentMethod struct {
	Type           string `json:"type"`
	ExpirationDate string `json:"expiration_date,omitempty"`
}

// QRCode carrega o código copia-e-cola e o link da imagem do QR.
type QRCode struct {
	ID             string `json:"id,omitempty"`
	Text           string `json:"text"`
	ExpirationDate string `json:"expiration_date"`
	Links          []Link `json:"links,omitempty"`
}

type ChargeResponse struct {
	ID            string              `json:"id"`
	ReferenceID   string              `json:"reference_id"`
	Status        string              `json:"status"`
	PaymentMethod ChargePaymentMethod `json:"payment_method"`
	QRCodes       []QRCode            `json:"qr_codes"`
}
