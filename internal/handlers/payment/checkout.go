package payment

import (
	"errors"
	"log"
	"net/http"

	"github.com/Felipesc023/completa-site/internal/checkout"
	"github.com/Felipesc023/completa-site/internal/pagbank"
	"github.com/gin-gonic/gin"
)

// Orchestrator é injetado na subida do servidor (routes.Setup).
var Orchestrator *checkout.Orchestrator

// Checkout inicia um pagamento. Cada chamada cria uma ordem nova no
// provedor; o status 4xx/5xx segue a origem do erro:
//   - dados do cliente inválidos → 400 com o campo
//   - credencial do provedor ausente → 500 de configuração
//   - erro do provedor → status e payload originais
//   - resto → 500 com mensagem genérica
func Checkout(c *gin.Context) {
	var req checkout.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.UserID = c.GetString("user_id")

	result, err := Orchestrator.Process(c.Request.Context(), &req)
	if err == nil {
		c.JSON(http.StatusOK, result)
		return
	}

	var vErr *checkout.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
		return
	}

	if errors.Is(err, checkout.ErrMissingCredential) {
		log.Println("❌ PAGBANK_TOKEN não configurado — checkout indisponível")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Pagamento indisponível no momento. Configuração pendente"})
		return
	}

	var apiErr *pagbank.APIError
	if errors.As(err, &apiErr) {
		log.Printf("❌ Provedor recusou a ordem (%d): %v", apiErr.Status, apiErr)
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Error(), "provider": apiErr.Messages})
		return
	}

	log.Printf("❌ Erro no checkout: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": checkout.GenericFailureMessage})
}
