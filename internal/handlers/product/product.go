package product

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Felipesc023/completa-site/internal/database"
	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/Felipesc023/completa-site/internal/services"
	"github.com/Felipesc023/completa-site/internal/store"
	"github.com/gin-gonic/gin"
)

// Store é injetado na subida do servidor (routes.Setup).
var Store store.ProductStore

const (
	catalogCacheKey = "products:all"
	catalogCacheTTL = 10 * time.Minute
)

// ListProducts retorna o catálogo público. Só produtos ativos aparecem;
// filtros por categoria e vitrines (lançamentos, mais vendidos, promoções)
// via query string.
func ListProducts(c *gin.Context) {
	products, err := loadCatalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar o catálogo"})
		return
	}

	category := c.Query("category")
	onlyLaunch := c.Query("launch") == "true"
	onlyBestSeller := c.Query("bestseller") == "true"
	onlyPromo := c.Query("promo") == "true"

	visible := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if onlyLaunch && !p.IsLaunch {
			continue
		}
		if onlyBestSeller && !p.IsBestSeller {
			continue
		}
		if onlyPromo && p.PromoPrice <= 0 {
			continue
		}
		visible = append(visible, p)
	}

	c.JSON(http.StatusOK, visible)
}

// GetProduct retorna um produto ativo pelo id.
func GetProduct(c *gin.Context) {
	p, err := Store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Produto inválido"})
		return
	}
	if p == nil || !p.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// SearchProducts busca no Elasticsearch; se o índice estiver fora do ar
// cai para uma varredura simples no catálogo.
func SearchProducts(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe o termo de busca (q)"})
		return
	}

	results, err := services.SearchProducts(c.Request.Context(), query)
	if err == nil {
		c.JSON(http.StatusOK, results)
		return
	}
	log.Printf("⚠️ Busca no Elastic falhou, usando fallback: %v", err)

	products, err := loadCatalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro na busca"})
		return
	}

	lower := strings.ToLower(query)
	matches := make([]models.Product, 0)
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), lower) ||
			strings.Contains(strings.ToLower(p.Description), lower) ||
			strings.Contains(strings.ToLower(p.Category), lower) {
			matches = append(matches, p)
		}
	}
	c.JSON(http.StatusOK, matches)
}

// loadCatalog lê o catálogo do cache Redis, indo ao ScyllaDB no miss.
// O cache é invalidado pelo store a cada mutação de produto.
func loadCatalog(ctx context.Context) ([]models.Product, error) {
	if database.Redis != nil {
		if data, err := database.Redis.Get(ctx, catalogCacheKey).Result(); err == nil && data != "" {
			var cached []models.Product
			if json.Unmarshal([]byte(data), &cached) == nil {
				return cached, nil
			}
		}
	}

	products, err := Store.List(ctx)
	if err != nil {
		return nil, err
	}

	if database.Redis != nil {
		if data, err := json.Marshal(products); err == nil {
			database.Redis.Set(ctx, catalogCacheKey, data, catalogCacheTTL)
		}
	}
	return products, nil
}
