package handlers

import (
	"context"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/Felipesc023/completa-site/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogServer(t *testing.T) (*store.MemoryProductStore, *httptest.Server) {
	t.Helper()

	prev := Products
	t.Cleanup(func() { Products = prev })

	s := store.NewMemoryProductStore()
	Products = s

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/catalog", CatalogStream)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return s, srv
}

func dialCatalog(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/catalog"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestCatalogStreamEntregaSnapshotsCompletos(t *testing.T) {
	s, srv := newCatalogServer(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &models.Product{Name: "Vestido Midi", Price: 189.90, IsActive: true}))

	conn := dialCatalog(t, srv)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var frame struct {
		Type     string           `json:"type"`
		Products []models.Product `json:"products"`
	}

	// Primeiro frame: estado atual
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "catalog", frame.Type)
	assert.Len(t, frame.Products, 1)

	// Mutação gera um snapshot novo e completo, não um delta
	require.NoError(t, s.Create(ctx, &models.Product{Name: "Blusa Seda", Price: 249.90, IsActive: true}))
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Len(t, frame.Products, 2)
}

// Desconexões com frame em trânsito não podem deixar goroutines presas
// segurando snapshots do catálogo.
func TestCatalogStreamLiberaGoroutinesAoDesconectar(t *testing.T) {
	s, srv := newCatalogServer(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &models.Product{Name: "Vestido Midi", Price: 189.90, IsActive: true}))

	baseline := runtime.NumGoroutine()

	for i := 0; i < 20; i++ {
		conn := dialCatalog(t, srv)

		// Duas mutações sem nenhuma leitura do lado do cliente: deixa
		// frames em trânsito no momento da desconexão
		require.NoError(t, s.Update(ctx, &models.Product{Name: "Vestido Midi", Price: 189.90, IsActive: true}))
		require.NoError(t, s.Update(ctx, &models.Product{Name: "Vestido Midi", Price: 179.90, IsActive: true}))

		conn.Close()
	}

	// As goroutines por conexão (leitura, bombeio) devem encerrar sozinhas
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) && runtime.NumGoroutine() > baseline+3 {
		time.Sleep(20 * time.Millisecond)
	}
	assert.LessOrEqual(t, runtime.NumGoroutine(), baseline+3,
		"goroutines de stream não encerraram após a desconexão")
}
