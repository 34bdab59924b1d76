package admin

import (
	"net/http"

	"github.com/Felipesc023/completa-site/internal/services"
	"github.com/gin-gonic/gin"
)

// UploadImage recebe uma imagem base64 e devolve a URL hospedada.
func UploadImage(c *gin.Context) {
	var input struct {
		Image string `json:"image"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe a imagem em base64"})
		return
	}

	url, err := services.UploadBase64Image(c.Request.Context(), input.Image, "produtos")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Erro no upload da imagem: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
