package models

type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"-"`
	Role       string `json:"role"`
	Provider   string `json:"provider,omitempty"`
	ProviderID string `json:"-"`
	PhotoURL   string `json:"photoURL,omitempty"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
