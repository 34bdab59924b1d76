package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/Felipesc023/completa-site/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Injetados na subida do servidor (routes.Setup).
var (
	Products store.ProductStore
	Orders   store.OrderStore
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Ajustar para a origem do front em produção
		return true
	},
}

// CatalogStream mantém um WebSocket aberto e envia o snapshot completo
// do catálogo a cada mudança. O primeiro frame é o estado atual.
func CatalogStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erro no upgrade do WebSocket: %v", err)
		return
	}
	defer conn.Close()

	snapshots := make(chan []models.Product, 8)

	if initial, err := Products.List(c.Request.Context()); err == nil {
		snapshots <- initial
	}
	unsubscribe := Products.Subscribe(func(products []models.Product) {
		select {
		case snapshots <- products:
		default: // cliente lento: descarta, o próximo snapshot é sempre completo
		}
	})
	defer func() {
		unsubscribe()
		close(snapshots)
	}()

	streamJSON(conn, func() (interface{}, bool) {
		s, ok := <-snapshots
		return gin.H{"type": "catalog", "products": s}, ok
	})
}

// OrdersStream envia os pedidos para o painel a cada mudança de status.
func OrdersStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erro no upgrade do WebSocket: %v", err)
		return
	}
	defer conn.Close()

	snapshots := make(chan []models.Order, 8)

	if initial, err := Orders.List(c.Request.Context()); err == nil {
		snapshots <- initial
	}
	unsubscribe := Orders.Subscribe(func(orders []models.Order) {
		select {
		case snapshots <- orders:
		default:
		}
	})
	defer func() {
		unsubscribe()
		close(snapshots)
	}()

	streamJSON(conn, func() (interface{}, bool) {
		s, ok := <-snapshots
		return gin.H{"type": "orders", "orders": s}, ok
	})
}

// streamJSON escreve frames até o cliente fechar a conexão.
func streamJSON(conn *websocket.Conn, next func() (interface{}, bool)) {
	// Descarta leituras: o canal é só de saída, mas precisamos drenar
	// para detectar o fechamento do lado do cliente.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	// done libera a goroutine de bombeio quando o loop de escrita sai
	// primeiro (desconexão do cliente com frame em trânsito).
	done := make(chan struct{})
	defer close(done)

	frames := make(chan interface{})
	go func() {
		defer close(frames)
		for {
			frame, ok := next()
			if !ok {
				return
			}
			select {
			case frames <- frame:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case frame, ok := <-frames:
			if !ok {
				return
			}
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
		}
	}
}
