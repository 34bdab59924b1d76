package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Felipesc023/completa-site/internal/database"
	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"
)

// ScyllaOrderStore persiste pedidos no ScyllaDB. Endereço, itens e frete
// ficam serializados como JSON nas colunas de texto.
type ScyllaOrderStore struct {
	Redis *redis.Client

	mu     sync.Mutex
	subs   map[int]func([]models.Order)
	nextID int
	listen sync.Once
}

func NewScyllaOrderStore(redisClient *redis.Client) *ScyllaOrderStore {
	return &ScyllaOrderStore{
		Redis: redisClient,
		subs:  make(map[int]func([]models.Order)),
	}
}

func (s *ScyllaOrderStore) Create(ctx context.Context, o *models.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	if o.ID == (gocql.UUID{}) {
		o.ID = gocql.TimeUUID()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	if o.Status == "" {
		o.Status = models.StatusAguardandoPagamento
	}

	addressJSON, _ := json.Marshal(o.Address)
	itemsJSON, _ := json.Marshal(o.Items)
	shippingJSON, _ := json.Marshal(o.Shipping)

	err = session.Query(`INSERT INTO orders (order_id, user_id, customer_name, customer_phone,
		customer_email, address, items, shipping, subtotal, total, status, payment_link,
		created_at, paid_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.UserID, o.CustomerName, o.CustomerPhone, o.CustomerEmail,
		string(addressJSON), string(itemsJSON), string(shippingJSON),
		o.Subtotal, o.Total, string(o.Status), o.PaymentLink, o.CreatedAt, o.PaidAt).
		WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("erro ao criar pedido: %w", err)
	}

	publishChange(s.Redis, OrdersChannel)
	return nil
}

func scanOrder(scan func(...interface{}) error) (*models.Order, error) {
	var o models.Order
	var addressJSON, itemsJSON, shippingJSON, status string

	err := scan(&o.ID, &o.UserID, &o.CustomerName, &o.CustomerPhone, &o.CustomerEmail,
		&addressJSON, &itemsJSON, &shippingJSON, &o.Subtotal, &o.Total, &status,
		&o.PaymentLink, &o.CreatedAt, &o.PaidAt)
	if err != nil {
		return nil, err
	}

	o.Status = models.OrderStatus(status)
	json.Unmarshal([]byte(addressJSON), &o.Address)
	json.Unmarshal([]byte(itemsJSON), &o.Items)
	json.Unmarshal([]byte(shippingJSON), &o.Shipping)
	return &o, nil
}

const orderColumns = `order_id, user_id, customer_name, customer_phone, customer_email,
	address, items, shipping, subtotal, total, status, payment_link, created_at, paid_at`

func (s *ScyllaOrderStore) List(ctx context.Context) ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT ` + orderColumns + ` FROM orders`).WithContext(ctx).Iter()

	var orders []models.Order
	for {
		var o models.Order
		var addressJSON, itemsJSON, shippingJSON, status string
		if !iter.Scan(&o.ID, &o.UserID, &o.CustomerName, &o.CustomerPhone, &o.CustomerEmail,
			&addressJSON, &itemsJSON, &shippingJSON, &o.Subtotal, &o.Total, &status,
			&o.PaymentLink, &o.CreatedAt, &o.PaidAt) {
			break
		}
		o.Status = models.OrderStatus(status)
		json.Unmarshal([]byte(addressJSON), &o.Address)
		json.Unmarshal([]byte(itemsJSON), &o.Items)
		json.Unmarshal([]byte(shippingJSON), &o.Shipping)
		orders = append(orders, o)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("erro ao ler pedidos: %w", err)
	}

	// Mais recentes primeiro, como o painel espera
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (s *ScyllaOrderStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Order
	for _, o := range all {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *ScyllaOrderStore) Get(ctx context.Context, id string) (*models.Order, error) {
	uid, err := gocql.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("id de pedido inválido: %w", err)
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	q := session.Query(`SELECT `+orderColumns+` FROM orders WHERE order_id = ?`, uid).WithContext(ctx)
	o, err := scanOrder(q.Scan)
	if err == gocql.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s *ScyllaOrderStore) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	uid, err := gocql.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("id de pedido inválido: %w", err)
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	// "pago" carimba paidAt; qualquer outro status limpa o carimbo.
	var paidAt *time.Time
	if status == models.StatusPago {
		now := time.Now()
		paidAt = &now
	}

	err = session.Query(`UPDATE orders SET status = ?, paid_at = ? WHERE order_id = ?`,
		string(status), paidAt, uid).WithContext(ctx).Exec()
	if err != nil {
		return nil, fmt.Errorf("erro ao atualizar status: %w", err)
	}

	publishChange(s.Redis, OrdersChannel)
	return s.Get(ctx, id)
}

func (s *ScyllaOrderStore) SetPaymentLink(ctx context.Context, id, link string) error {
	uid, err := gocql.ParseUUID(id)
	if err != nil {
		return fmt.Errorf("id de pedido inválido: %w", err)
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	err = session.Query(`UPDATE orders SET payment_link = ? WHERE order_id = ?`, link, uid).
		WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("erro ao gravar link de pagamento: %w", err)
	}

	publishChange(s.Redis, OrdersChannel)
	return nil
}

func (s *ScyllaOrderStore) Subscribe(fn func([]models.Order)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	s.listen.Do(s.startListener)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *ScyllaOrderStore) startListener() {
	if s.Redis == nil {
		return
	}
	go func() {
		ctx := context.Background()
		pubsub := s.Redis.Subscribe(ctx, OrdersChannel)
		defer pubsub.Close()

		for range pubsub.Channel() {
			snapshot, err := s.List(ctx)
			if err != nil {
				log.Printf("⚠️ Erro ao montar snapshot de pedidos: %v", err)
				continue
			}

			s.mu.Lock()
			for _, fn := range s.subs {
				fn(snapshot)
			}
			s.mu.Unlock()
		}
	}()
}
