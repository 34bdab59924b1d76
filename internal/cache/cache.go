package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Felipesc023/completa-site/internal/database"
	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/gocql/gocql"
)

const UserCacheTTL = 5 * time.Minute

// GetUser busca o perfil no Redis, caindo para o ScyllaDB no miss.
func GetUser(userID string) (*models.User, error) {
	ctx := context.Background()
	key := "user:" + userID

	if data, err := database.Redis.Get(ctx, key).Result(); err == nil && data != "" {
		var u models.User
		if json.Unmarshal([]byte(data), &u) == nil {
			return &u, nil
		}
	}

	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	var u models.User
	err = session.Query(`SELECT user_id, name, email, password, role, provider, provider_id, photo_url
		FROM users WHERE user_id = ?`, userID).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Provider, &u.ProviderID, &u.PhotoURL)
	if err == gocql.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(u); err == nil {
		database.Redis.Set(ctx, key, data, UserCacheTTL)
	}
	return &u, nil
}

// InvalidateUser limpa o cache do perfil após uma mutação.
func InvalidateUser(userID string) {
	database.Redis.Del(context.Background(), "user:"+userID)
}
