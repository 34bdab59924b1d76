package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Felipesc023/completa-site/internal/cart"
	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/Felipesc023/completa-site/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCartStorage guarda a sacola em memória, por usuário.
type memCartStorage struct {
	bags map[string][]models.CartItem
}

func (s *memCartStorage) Load(userID string) ([]models.CartItem, error) {
	return s.bags[userID], nil
}

func (s *memCartStorage) Save(userID string, items []models.CartItem) error {
	if s.bags == nil {
		s.bags = map[string][]models.CartItem{}
	}
	s.bags[userID] = items
	return nil
}

func newCartRouter(t *testing.T) (*gin.Engine, *models.Product) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	oldStorage, oldProducts := CartStorage, Products
	t.Cleanup(func() {
		CartStorage, Products = oldStorage, oldProducts
	})

	products := store.NewMemoryProductStore()
	p := &models.Product{Name: "Vestido Midi", Price: 389.90, IsActive: true}
	require.NoError(t, products.Create(context.Background(), p))

	CartStorage = &memCartStorage{}
	Products = products

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "user-1") })
	r.POST("/api/cart/add", AddToCart)
	r.PUT("/api/cart/update", UpdateCartItem)
	return r, p
}

func postJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAddToCartQuantidadeOmitidaValeUm(t *testing.T) {
	r, p := newCartRouter(t)

	w := postJSON(r, http.MethodPost, "/api/cart/add",
		`{"productId":"`+p.ID.String()+`","selectedSize":"M","selectedColor":"Bege"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestAddToCartRecusaQuantidadeInvalida(t *testing.T) {
	r, p := newCartRouter(t)

	for _, qty := range []string{"0", "-3"} {
		w := postJSON(r, http.MethodPost, "/api/cart/add",
			`{"productId":"`+p.ID.String()+`","selectedSize":"M","selectedColor":"Bege","quantity":`+qty+`}`)
		assert.Equal(t, http.StatusBadRequest, w.Code, "quantity=%s", qty)
	}

	// Nada entrou na sacola
	bag := cart.Load("user-1", CartStorage)
	assert.Zero(t, bag.Count())
}

func TestUpdateCartItemRecusaQuantidadeInvalida(t *testing.T) {
	r, p := newCartRouter(t)

	w := postJSON(r, http.MethodPost, "/api/cart/add",
		`{"productId":"`+p.ID.String()+`","selectedSize":"M","selectedColor":"Bege","quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, http.MethodPut, "/api/cart/update",
		`{"productId":"`+p.ID.String()+`","selectedSize":"M","selectedColor":"Bege","quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A linha segue intacta
	bag := cart.Load("user-1", CartStorage)
	assert.Equal(t, 2, bag.Count())
}
