package checkout

import (
	"errors"
	"fmt"
)

// Taxonomia de erros do checkout:
//   - *ValidationError: dado do cliente ausente/incompleto, barrado antes
//     de qualquer chamada de rede.
//   - ErrMissingCredential: PAGBANK_TOKEN ausente — falha de configuração
//     do servidor, distinta de validação.
//   - *pagbank.APIError (propagado): resposta não-2xx do provedor, com o
//     payload bruto.
//   - Qualquer outro erro: falha interna/de rede; o handler converte para
//     a mensagem genérica de "tente novamente".

var ErrMissingCredential = errors.New("PAGBANK_TOKEN não configurado no servidor")

// GenericFailureMessage é exibida quando a falha é puramente interna,
// sem vazar detalhes para o cliente.
const GenericFailureMessage = "Não foi possível iniciar o pagamento. Tente novamente."

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
