package admin

import (
	"log"
	"net/http"

	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/Felipesc023/completa-site/internal/store"
	"github.com/gin-gonic/gin"
)

// Orders é injetado na subida do servidor (routes.Setup).
var Orders store.OrderStore

// ListOrders retorna todos os pedidos, mais recentes primeiro.
func ListOrders(c *gin.Context) {
	orders, err := Orders.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar pedidos"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus troca o status de um pedido pelo painel.
// "pago" carimba a data de pagamento; os demais status a limpam.
func UpdateOrderStatus(c *gin.Context) {
	var in struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidStatus(in.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status desconhecido: " + string(in.Status)})
		return
	}

	order, err := Orders.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar pedido"})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
		return
	}

	log.Printf("📦 Pedido %s → %s", c.Param("id"), in.Status)
	c.JSON(http.StatusOK, order)
}

// SetPaymentLink grava manualmente o link de pagamento de um pedido
// (usado nos pedidos fechados pelo WhatsApp).
func SetPaymentLink(c *gin.Context) {
	var in struct {
		PaymentLink string `json:"paymentLink"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.PaymentLink == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe o link de pagamento"})
		return
	}

	if err := Orders.SetPaymentLink(c.Request.Context(), c.Param("id"), in.PaymentLink); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gravar o link"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Link de pagamento atualizado"})
}
