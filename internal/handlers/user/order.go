package user

import (
	"net/http"

	"github.com/Felipesc023/completa-site/internal/store"
	"github.com/gin-gonic/gin"
)

// Orders é injetado na subida do servidor (routes.Setup).
var Orders store.OrderStore

// MyOrders retorna os pedidos do usuário autenticado.
func MyOrders(c *gin.Context) {
	orders, err := Orders.ListByUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar pedidos"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetMyOrder retorna um pedido do usuário; pedido de outra pessoa é 404.
func GetMyOrder(c *gin.Context) {
	order, err := Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar o pedido"})
		return
	}
	if order == nil || order.UserID != c.GetString("user_id") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
		return
	}
	c.JSON(http.StatusOK, order)
}
