package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID          gocql.UUID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	PromoPrice  float64    `json:"promoPrice,omitempty"`
	Category    string     `json:"category"`
	Brand       string     `json:"brand,omitempty"`
	ImageURL    string     `json:"imageUrl"`
	Sizes       []string   `json:"sizes"`
	Colors      []string   `json:"colors"`
	Stock       int        `json:"stock"`

	// Logística (Correios)
	WeightKg float64 `json:"weightKg"`
	LengthCm float64 `json:"lengthCm"`
	WidthCm  float64 `json:"widthCm"`
	HeightCm float64 `json:"heightCm"`

	IsActive     bool `json:"isActive"`
	IsLaunch     bool `json:"isLaunch"`
	IsBestSeller bool `json:"isBestSeller"`

	SoldCount int        `json:"soldCount"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// EffectivePrice retorna o preço promocional quando definido, senão o preço base.
func (p Product) EffectivePrice() float64 {
	if p.PromoPrice > 0 {
		return p.PromoPrice
	}
	return p.Price
}
