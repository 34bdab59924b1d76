package admin

import (
	"log"
	"net/http"
	"strings"

	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/Felipesc023/completa-site/internal/services"
	"github.com/Felipesc023/completa-site/internal/store"
	"github.com/gin-gonic/gin"
)

// Products é injetado na subida do servidor (routes.Setup).
var Products store.ProductStore

type productInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	PromoPrice  float64  `json:"promoPrice"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	ImageURL    string   `json:"imageUrl"`
	ImageBase64 string   `json:"imageBase64"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Stock       int      `json:"stock"`

	WeightKg float64 `json:"weightKg"`
	LengthCm float64 `json:"lengthCm"`
	WidthCm  float64 `json:"widthCm"`
	HeightCm float64 `json:"heightCm"`

	IsActive     *bool `json:"isActive"`
	IsLaunch     bool  `json:"isLaunch"`
	IsBestSeller bool  `json:"isBestSeller"`
}

func (in *productInput) validate() string {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return "Nome é obrigatório"
	case in.Price <= 0:
		return "Preço deve ser maior que zero"
	case in.PromoPrice < 0:
		return "Preço promocional não pode ser negativo"
	case in.PromoPrice > 0 && in.PromoPrice >= in.Price:
		return "Preço promocional deve ser menor que o preço original"
	case in.Stock < 0:
		return "Estoque não pode ser negativo"
	}
	return ""
}

// ListAllProducts retorna o catálogo completo, inclusive produtos inativos.
func ListAllProducts(c *gin.Context) {
	products, err := Products.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar produtos"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateProduct cria um produto. A imagem pode vir como URL pronta ou
// como data URI base64, que sobe para o bucket.
func CreateProduct(c *gin.Context) {
	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := in.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	imageURL := in.ImageURL
	if in.ImageBase64 != "" {
		uploaded, err := services.UploadBase64Image(c.Request.Context(), in.ImageBase64, "produtos")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Erro no upload da imagem: " + err.Error()})
			return
		}
		imageURL = uploaded
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	p := models.Product{
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		PromoPrice:   in.PromoPrice,
		Category:     in.Category,
		Brand:        in.Brand,
		ImageURL:     imageURL,
		Sizes:        in.Sizes,
		Colors:       in.Colors,
		Stock:        in.Stock,
		WeightKg:     in.WeightKg,
		LengthCm:     in.LengthCm,
		WidthCm:      in.WidthCm,
		HeightCm:     in.HeightCm,
		IsActive:     active,
		IsLaunch:     in.IsLaunch,
		IsBestSeller: in.IsBestSeller,
	}

	if err := Products.Create(c.Request.Context(), &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar produto"})
		return
	}

	services.IndexProduct(p)
	log.Printf("✅ Produto criado: %s (%s)", p.Name, p.ID)
	c.JSON(http.StatusCreated, p)
}

// UpdateProduct substitui os campos editáveis do produto.
func UpdateProduct(c *gin.Context) {
	existing, err := Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Produto inválido"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
		return
	}

	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := in.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if in.ImageBase64 != "" {
		uploaded, err := services.UploadBase64Image(c.Request.Context(), in.ImageBase64, "produtos")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Erro no upload da imagem: " + err.Error()})
			return
		}
		existing.ImageURL = uploaded
	} else if in.ImageURL != "" {
		existing.ImageURL = in.ImageURL
	}

	existing.Name = in.Name
	existing.Description = in.Description
	existing.Price = in.Price
	existing.PromoPrice = in.PromoPrice
	existing.Category = in.Category
	existing.Brand = in.Brand
	existing.Sizes = in.Sizes
	existing.Colors = in.Colors
	existing.Stock = in.Stock
	existing.WeightKg = in.WeightKg
	existing.LengthCm = in.LengthCm
	existing.WidthCm = in.WidthCm
	existing.HeightCm = in.HeightCm
	existing.IsLaunch = in.IsLaunch
	existing.IsBestSeller = in.IsBestSeller
	if in.IsActive != nil {
		existing.IsActive = *in.IsActive
	}

	if err := Products.Update(c.Request.Context(), existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar produto"})
		return
	}

	services.IndexProduct(*existing)
	c.JSON(http.StatusOK, existing)
}

// ToggleProductFlag liga/desliga uma vitrine do produto
// (active, launch ou bestseller).
func ToggleProductFlag(c *gin.Context) {
	existing, err := Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Produto inválido"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
		return
	}

	switch c.Param("flag") {
	case "active":
		existing.IsActive = !existing.IsActive
	case "launch":
		existing.IsLaunch = !existing.IsLaunch
	case "bestseller":
		existing.IsBestSeller = !existing.IsBestSeller
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Flag desconhecida"})
		return
	}

	if err := Products.Update(c.Request.Context(), existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar produto"})
		return
	}

	services.IndexProduct(*existing)
	c.JSON(http.StatusOK, existing)
}

// DeleteProduct remove o produto do catálogo e do índice de busca.
func DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := Products.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao excluir produto"})
		return
	}

	services.RemoveProductIndex(id)
	log.Printf("🗑️ Produto excluído: %s", id)
	c.JSON(http.StatusOK, gin.H{"message": "Produto excluído"})
}
