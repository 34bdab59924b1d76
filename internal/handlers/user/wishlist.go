package user

import (
	"net/http"

	"github.com/Felipesc023/completa-site/internal/cart"
	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/gin-gonic/gin"
)

// Wishlist é injetado na subida do servidor (routes.Setup).
var Wishlist *cart.WishlistStorage

// GetWishlist retorna os favoritos já expandidos em produtos.
// Ids de produtos excluídos ou desativados são ignorados.
func GetWishlist(c *gin.Context) {
	ids, err := Wishlist.Load(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar favoritos"})
		return
	}

	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		p, err := Products.Get(c.Request.Context(), id)
		if err != nil || p == nil || !p.IsActive {
			continue
		}
		products = append(products, *p)
	}
	c.JSON(http.StatusOK, products)
}

// ToggleWishlist adiciona ou remove um produto dos favoritos.
func ToggleWishlist(c *gin.Context) {
	var input struct {
		ProductID string `json:"productId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe o produto"})
		return
	}

	userID := c.GetString("user_id")
	ids, err := Wishlist.Load(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar favoritos"})
		return
	}

	inList := false
	for _, id := range ids {
		if id == input.ProductID {
			inList = true
			break
		}
	}

	if inList {
		err = Wishlist.Remove(userID, input.ProductID)
	} else {
		err = Wishlist.Add(userID, input.ProductID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar favoritos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"inWishlist": !inList})
}
