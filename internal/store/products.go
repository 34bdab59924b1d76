package store

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Felipesc023/completa-site/internal/database"
	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"
)

const productColumns = `product_id, name, description, price, promo_price, category, brand,
	image_url, sizes, colors, stock, weight_kg, length_cm, width_cm, height_cm,
	is_active, is_launch, is_best_seller, sold_count, created_at, updated_at`

// ScyllaProductStore persiste o catálogo no ScyllaDB e propaga mudanças
// via Redis pub/sub para os assinantes.
type ScyllaProductStore struct {
	Redis *redis.Client

	mu     sync.Mutex
	subs   map[int]func([]models.Product)
	nextID int
	listen sync.Once
}

func NewScyllaProductStore(redisClient *redis.Client) *ScyllaProductStore {
	return &ScyllaProductStore{
		Redis: redisClient,
		subs:  make(map[int]func([]models.Product)),
	}
}

func scanProduct(scanner interface{ Scan(...interface{}) bool }, p *models.Product) bool {
	return scanner.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.PromoPrice,
		&p.Category, &p.Brand, &p.ImageURL, &p.Sizes, &p.Colors, &p.Stock,
		&p.WeightKg, &p.LengthCm, &p.WidthCm, &p.HeightCm,
		&p.IsActive, &p.IsLaunch, &p.IsBestSeller, &p.SoldCount,
		&p.CreatedAt, &p.UpdatedAt)
}

func (s *ScyllaProductStore) List(ctx context.Context) ([]models.Product, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT ` + productColumns + ` FROM products`).WithContext(ctx).Iter()

	var products []models.Product
	var p models.Product
	for scanProduct(iter, &p) {
		products = append(products, p)
		p = models.Product{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("erro ao ler produtos: %w", err)
	}
	return products, nil
}

func (s *ScyllaProductStore) Get(ctx context.Context, id string) (*models.Product, error) {
	uid, err := gocql.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("id de produto inválido: %w", err)
	}

	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	var p models.Product
	err = session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, uid).
		WithContext(ctx).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.PromoPrice,
			&p.Category, &p.Brand, &p.ImageURL, &p.Sizes, &p.Colors, &p.Stock,
			&p.WeightKg, &p.LengthCm, &p.WidthCm, &p.HeightCm,
			&p.IsActive, &p.IsLaunch, &p.IsBestSeller, &p.SoldCount,
			&p.CreatedAt, &p.UpdatedAt)
	if err == gocql.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ScyllaProductStore) Create(ctx context.Context, p *models.Product) error {
	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}

	if p.ID == (gocql.UUID{}) {
		p.ID = gocql.TimeUUID()
	}
	p.CreatedAt = time.Now()

	err = session.Query(`INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.PromoPrice, p.Category, p.Brand,
		p.ImageURL, p.Sizes, p.Colors, p.Stock, p.WeightKg, p.LengthCm, p.WidthCm, p.HeightCm,
		p.IsActive, p.IsLaunch, p.IsBestSeller, p.SoldCount, p.CreatedAt, p.UpdatedAt).
		WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("erro ao criar produto: %w", err)
	}

	s.invalidateAndNotify()
	return nil
}

func (s *ScyllaProductStore) Update(ctx context.Context, p *models.Product) error {
	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}

	now := time.Now()
	p.UpdatedAt = &now

	err = session.Query(`UPDATE products SET name = ?, description = ?, price = ?, promo_price = ?,
		category = ?, brand = ?, image_url = ?, sizes = ?, colors = ?, stock = ?,
		weight_kg = ?, length_cm = ?, width_cm = ?, height_cm = ?,
		is_active = ?, is_launch = ?, is_best_seller = ?, sold_count = ?, updated_at = ?
		WHERE product_id = ?`,
		p.Name, p.Description, p.Price, p.PromoPrice, p.Category, p.Brand,
		p.ImageURL, p.Sizes, p.Colors, p.Stock,
		p.WeightKg, p.LengthCm, p.WidthCm, p.HeightCm,
		p.IsActive, p.IsLaunch, p.IsBestSeller, p.SoldCount, p.UpdatedAt, p.ID).
		WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("erro ao atualizar produto: %w", err)
	}

	s.invalidateAndNotify()
	return nil
}

func (s *ScyllaProductStore) Delete(ctx context.Context, id string) error {
	uid, err := gocql.ParseUUID(id)
	if err != nil {
		return fmt.Errorf("id de produto inválido: %w", err)
	}

	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}

	if err := session.Query(`DELETE FROM products WHERE product_id = ?`, uid).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("erro ao excluir produto: %w", err)
	}

	s.invalidateAndNotify()
	return nil
}

func (s *ScyllaProductStore) Subscribe(fn func([]models.Product)) func() {
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

// startListener assina o canal Redis e, a cada mudança, entrega o snapshot
// completo do catálogo a todos os assinantes. A ordem entre a escrita e a
// notificação é a que o Redis fornecer.
func (s *ScyllaProductStore) startListener() {
	if s.Redis == nil {
		return
	}
	go func() {
		ctx := context.Background()
		pubsub := s.Redis.Subscribe(ctx, ProductsChannel)
		defer pubsub.Close()

		for range pubsub.Channel() {
			snapshot, err := s.List(ctx)
			if err != nil {
				log.Printf("⚠️ Erro ao montar snapshot do catálogo: %v", err)
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

func (s *ScyllaProductStore) invalidateAndNotify() {
	if s.Redis != nil {
		s.Redis.Del(context.Background(), "products:all")
	}
	publishChange(s.Redis, ProductsChannel)
}
