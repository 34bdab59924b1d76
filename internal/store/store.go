// Package store isola o acesso ao catálogo e aos pedidos atrás de
// interfaces com assinatura de mudanças: Subscribe(onChange) devolve um
// token de cancelamento e onChange recebe sempre o snapshot completo
// atual, desacoplado do banco que o produziu.
package store

import (
	"context"
	"log"

	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/redis/go-redis/v9"
)

type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error

	// Subscribe registra um listener que recebe o snapshot completo do
	// catálogo a cada mutação remota. Retorna a função de cancelamento.
	Subscribe(fn func([]models.Product)) (unsubscribe func())
}

type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)

	// UpdateStatus troca o status sem validar a transição (comportamento
	// herdado do painel: nada impede marcar um pedido cancelado como pago).
	// Status "pago" carimba paidAt; qualquer outro status o limpa.
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
	SetPaymentLink(ctx context.Context, id, link string) error

	Subscribe(fn func([]models.Order)) (unsubscribe func())
}

// Canais Redis usados como barramento de notificação de mudanças.
const (
	ProductsChannel = "products:changed"
	OrdersChannel   = "orders:changed"
)

func publishChange(client *redis.Client, channel string) {
	if client == nil {
		return
	}
	if err := client.Publish(context.Background(), channel, "updated").Err(); err != nil {
		log.Printf("⚠️ Erro ao publicar notificação em %s: %v", channel, err)
	}
}
