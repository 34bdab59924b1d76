package shipping

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ViaCEPAddress é a resposta do ViaCEP usada para autopreencher o endereço.
type ViaCEPAddress struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
	Erro         bool   `json:"erro,omitempty"`
}

var viaCEPClient = &http.Client{Timeout: 5 * time.Second}

// LookupCEP consulta o ViaCEP para um CEP de 8 dígitos.
// Retorna nil quando o CEP é malformado ou desconhecido.
func LookupCEP(ctx context.Context, cep string) (*ViaCEPAddress, error) {
	clean := CleanCEP(cep)
	if len(clean) != 8 {
		return nil, fmt.Errorf("CEP inválido: %q", cep)
	}

	url := fmt.Sprintf("https://viacep.com.br/ws/%s/json/", clean)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := viaCEPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar CEP: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ViaCEP retornou status %d", resp.StatusCode)
	}

	var addr ViaCEPAddress
	if err := json.NewDecoder(resp.Body).Decode(&addr); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta do ViaCEP: %w", err)
	}
	if addr.Erro {
		return nil, nil
	}
	return &addr, nil
}
