package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/gocql/gocql"
)

// MemoryProductStore é a implementação em memória usada nos testes:
// mesma semântica de snapshot completo por mutação, sem Redis nem Scylla.
type MemoryProductStore struct {
	mu       sync.Mutex
	products map[string]models.Product
	subs     map[int]func([]models.Product)
	nextID   int
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{
		products: make(map[string]models.Product),
		subs:     make(map[int]func([]models.Product)),
	}
}

func (s *MemoryProductStore) snapshotLocked() []models.Product {
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *MemoryProductStore) notifyLocked() {
	snapshot := s.snapshotLocked()
	for _, fn := range s.subs {
		fn(snapshot)
	}
}

func (s *MemoryProductStore) List(context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

func (s *MemoryProductStore) Get(_ context.Context, id string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *MemoryProductStore) Create(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == (gocql.UUID{}) {
		p.ID = gocql.TimeUUID()
	}
	p.CreatedAt = time.Now()
	s.products[p.ID.String()] = *p
	s.notifyLocked()
	return nil
}

func (s *MemoryProductStore) Update(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	p.UpdatedAt = &now
	s.products[p.ID.String()] = *p
	s.notifyLocked()
	return nil
}

func (s *MemoryProductStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
	s.notifyLocked()
	return nil
}

func (s *MemoryProductStore) Subscribe(fn func([]models.Product)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// MemoryOrderStore guarda pedidos em memória com a mesma semântica de
// status e carimbo de pagamento do ScyllaOrderStore.
type MemoryOrderStore struct {
	mu     sync.Mutex
	orders map[string]models.Order
	subs   map[int]func([]models.Order)
	nextID int
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{
		orders: make(map[string]models.Order),
		subs:   make(map[int]func([]models.Order)),
	}
}

func (s *MemoryOrderStore) snapshotLocked() []models.Order {
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *MemoryOrderStore) notifyLocked() {
	snapshot := s.snapshotLocked()
	for _, fn := range s.subs {
		fn(snapshot)
	}
}

func (s *MemoryOrderStore) Create(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == (gocql.UUID{}) {
		o.ID = gocql.TimeUUID()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	if o.Status == "" {
		o.Status = models.StatusAguardandoPagamento
	}
	s.orders[o.ID.String()] = *o
	s.notifyLocked()
	return nil
}

func (s *MemoryOrderStore) List(context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

func (s *MemoryOrderStore) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.snapshotLocked() {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *MemoryOrderStore) Get(_ context.Context, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (s *MemoryOrderStore) UpdateStatus(_ context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}

	o.Status = status
	if status == models.StatusPago {
		now := time.Now()
		o.PaidAt = &now
	} else {
		o.PaidAt = nil
	}

	s.orders[id] = o
	s.notifyLocked()
	return &o, nil
}

func (s *MemoryOrderStore) SetPaymentLink(_ context.Context, id, link string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[id]; ok {
		o.PaymentLink = link
		s.orders[id] = o
		s.notifyLocked()
	}
	return nil
}

func (s *MemoryOrderStore) Subscribe(fn func([]models.Order)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
