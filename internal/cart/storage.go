package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/redis/go-redis/v9"
)

// Storage é a fronteira explícita de persistência da sacola:
// carrega na abertura, salva a cada mutação.
type Storage interface {
	Load(userID string) ([]models.CartItem, error)
	Save(userID string, items []models.CartItem) error
}

const (
	cartKeyPrefix = "cart:"
	cartTTL       = 30 * 24 * time.Hour
)

// RedisStorage serializa a sacola como array JSON sob a chave fixa
// "cart:<userID>", com TTL de 30 dias.
type RedisStorage struct {
	Client *redis.Client
}

func (s *RedisStorage) Load(userID string) ([]models.CartItem, error) {
	data, err := s.Client.Get(context.Background(), cartKeyPrefix+userID).Result()
	if err == redis.Nil || data == "" {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *RedisStorage) Save(userID string, items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := s.Client.Set(ctx, cartKeyPrefix+userID, data, cartTTL).Err(); err != nil {
		return err
	}

	// Notifica assinantes (sincronização em tempo real via WebSocket)
	s.Client.Publish(ctx, cartKeyPrefix+userID, "updated")
	return nil
}
