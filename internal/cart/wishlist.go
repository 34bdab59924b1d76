package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	wishlistKeyPrefix = "wishlist:"
	wishlistTTL       = 90 * 24 * time.Hour
)

// WishlistStorage guarda os favoritos como array JSON de ids de produto
// sob a chave fixa "wishlist:<userID>".
type WishlistStorage struct {
	Client *redis.Client
}

func (s *WishlistStorage) Load(userID string) ([]string, error) {
	data, err := s.Client.Get(context.Background(), wishlistKeyPrefix+userID).Result()
	if err == redis.Nil || data == "" {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *WishlistStorage) Save(userID string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.Client.Set(context.Background(), wishlistKeyPrefix+userID, data, wishlistTTL).Err()
}

// Add inclui o produto se ainda não estiver nos favoritos.
func (s *WishlistStorage) Add(userID, productID string) error {
	ids, err := s.Load(userID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == productID {
			return nil
		}
	}
	return s.Save(userID, append(ids, productID))
}

// Remove tira o produto dos favoritos; no-op se ausente.
func (s *WishlistStorage) Remove(userID, productID string) error {
	ids, err := s.Load(userID)
	if err != nil {
		return err
	}
	kept := ids[:0]
	for _, id := range ids {
		if id != productID {
			kept = append(kept, id)
		}
	}
	return s.Save(userID, kept)
}
