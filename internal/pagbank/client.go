package pagbank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	sandboxURL    = "https://sandbox.api.pagseguro.com"
	productionURL = "https://api.pagseguro.com"
)

// ErrNoPaymentLink é devolvido quando a resposta da ordem não traz nenhum link.
var ErrNoPaymentLink = errors.New("nenhum link de pagamento retornado pelo provedor")

// APIError é uma resposta não-2xx do PagBank, com o payload bruto preservado
// para ser exibido ao chamador.
type APIError struct {
	Status   int             `json:"status"`
	Messages []ErrorMessage  `json:"error_messages,omitempty"`
	Raw      json.RawMessage `json:"raw,omitempty"`
}

type ErrorMessage struct {
	Code          string `json:"code,omitempty"`
	Description   string `json:"description,omitempty"`
	ParameterName string `json:"parameter_name,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("PagBank %d: %s", e.Status, e.Messages[0].Description)
	}
	return fmt.Sprintf("PagBank retornou status %d", e.Status)
}

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient monta o cliente para o ambiente informado ("production" ou sandbox).
func NewClient(token, env string) *Client {
	base := sandboxURL
	if env == "production" {
		base = productionURL
	}
	return &Client{
		BaseURL:    base,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientFromEnv lê PAGBANK_TOKEN e PAGBANK_ENV. Token ausente retorna nil:
// quem chama decide tratar como erro de configuração do servidor.
func NewClientFromEnv() *Client {
	token := os.Getenv("PAGBANK_TOKEN")
	if token == "" {
		return nil
	}
	return NewClient(token, os.Getenv("PAGBANK_ENV"))
}

// CreateOrder cria uma ordem (POST /orders).
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*OrderResponse, error) {
	var resp OrderResponse
	if err := c.post(ctx, "/orders", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreatePixCharge cria uma cobrança PIX contra uma ordem já criada
// (POST /orders/{id}/charges).
func (c *Client) CreatePixCharge(ctx context.Context, orderID string, req ChargeRequest) (*ChargeResponse, error) {
	var resp ChargeResponse
	if err := c.post(ctx, "/orders/"+orderID+"/charges", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("erro ao serializar requisição: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.Token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("erro de rede ao chamar PagBank: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler resposta do PagBank: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		apiErr := &APIError{Status: httpResp.StatusCode, Raw: raw}
		// O payload é decodificado à parte: um corpo com chave "status"
		// não pode sobrescrever o status HTTP real.
		var body struct {
			Messages []ErrorMessage `json:"error_messages"`
		}
		if json.Unmarshal(raw, &body) == nil {
			apiErr.Messages = body.Messages
		}
		return apiErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("erro ao decodificar resposta do PagBank: %w", err)
	}
	return nil
}

// CheckoutLink escolhe o link de redirecionamento do checkout hospedado:
// prefere rel "PAY", depois "CHECKOUT", por fim o primeiro link presente.
func CheckoutLink(links []Link) (string, error) {
	for _, rel := range []string{"PAY", "CHECKOUT"} {
		for _, l := range links {
			if l.Rel == rel && l.Href != "" {
				return l.Href, nil
			}
		}
	}
	if len(links) > 0 && links[0].Href != "" {
		return links[0].Href, nil
	}
	return "", ErrNoPaymentLink
}
