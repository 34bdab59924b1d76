package user

import (
	"net/http"

	"github.com/Felipesc023/completa-site/internal/cart"
	"github.com/Felipesc023/completa-site/internal/store"
	"github.com/gin-gonic/gin"
)

// Injetados na subida do servidor (routes.Setup).
var (
	CartStorage cart.Storage
	Products    store.ProductStore
)

func cartResponse(c *cart.Cart) gin.H {
	return gin.H{
		"items": c.Items(),
		"total": c.Total(),
		"count": c.Count(),
	}
}

// GetCart retorna a sacola do usuário.
func GetCart(c *gin.Context) {
	bag := cart.Load(c.GetString("user_id"), CartStorage)
	c.JSON(http.StatusOK, cartResponse(bag))
}

// AddToCart adiciona um produto na sacola. Mesma combinação de
// produto/tamanho/cor soma quantidade em vez de criar linha nova.
// Quantidade omitida vale 1; menor que 1 é rejeitada, como no update.
func AddToCart(c *gin.Context) {
	var input struct {
		ProductID string `json:"productId"`
		Size      string `json:"selectedSize"`
		Color     string `json:"selectedColor"`
		Quantity  *int   `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	quantity := 1
	if input.Quantity != nil {
		if *input.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantidade mínima é 1. Use a remoção para tirar o item"})
			return
		}
		quantity = *input.Quantity
	}

	p, err := Products.Get(c.Request.Context(), input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Produto inválido"})
		return
	}
	if p == nil || !p.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
		return
	}

	bag := cart.Load(c.GetString("user_id"), CartStorage)
	bag.Add(*p, input.Size, input.Color, quantity)
	c.JSON(http.StatusOK, cartResponse(bag))
}

// UpdateCartItem troca a quantidade de uma linha da sacola.
// Quantidade menor que 1 é rejeitada: remover é operação explícita.
func UpdateCartItem(c *gin.Context) {
	var input struct {
		ProductID string `json:"productId"`
		Size      string `json:"selectedSize"`
		Color     string `json:"selectedColor"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantidade mínima é 1. Use a remoção para tirar o item"})
		return
	}

	bag := cart.Load(c.GetString("user_id"), CartStorage)
	bag.SetQuantity(input.ProductID, input.Size, input.Color, input.Quantity)
	c.JSON(http.StatusOK, cartResponse(bag))
}

// RemoveFromCart tira uma linha da sacola.
func RemoveFromCart(c *gin.Context) {
	var input struct {
		ProductID string `json:"productId"`
		Size      string `json:"selectedSize"`
		Color     string `json:"selectedColor"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bag := cart.Load(c.GetString("user_id"), CartStorage)
	bag.Remove(input.ProductID, input.Size, input.Color)
	c.JSON(http.StatusOK, cartResponse(bag))
}

// ClearCart esvazia a sacola.
func ClearCart(c *gin.Context) {
	bag := cart.Load(c.GetString("user_id"), CartStorage)
	bag.Clear()
	c.JSON(http.StatusOK, cartResponse(bag))
}
