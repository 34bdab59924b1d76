package payment

import (
	"net/http"

	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/Felipesc023/completa-site/internal/shipping"
	"github.com/gin-gonic/gin"
)

// QuoteShipping calcula o frete para um CEP e uma sacola. A cotação é
// determinística: mesmo CEP e mesma sacola, mesmo resultado.
func QuoteShipping(c *gin.Context) {
	var input struct {
		CEP   string            `json:"cep"`
		Items []models.CartItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var subtotal float64
	for _, item := range input.Items {
		subtotal += item.UnitPrice() * float64(item.Quantity)
	}

	option := shipping.Calculate(input.CEP, input.Items, subtotal)
	if option.Unavailable() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    "CEP inválido para cálculo de frete",
			"shipping": option,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"shipping": option, "subtotal": subtotal})
}

// LookupAddress consulta o ViaCEP para pré-preencher o endereço.
func LookupAddress(c *gin.Context) {
	cep := shipping.CleanCEP(c.Param("cep"))
	if len(cep) != 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CEP deve ter 8 dígitos"})
		return
	}

	address, err := shipping.LookupCEP(c.Request.Context(), cep)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Consulta de CEP indisponível"})
		return
	}
	if address == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "CEP não encontrado"})
		return
	}

	c.JSON(http.StatusOK, address)
}
