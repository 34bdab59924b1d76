package models

// CartItem é um snapshot do produto no momento da adição à sacola.
// A chave de unicidade de uma linha é (productId, selectedSize, selectedColor).
type CartItem struct {
	ProductID  string  `json:"productId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	PromoPrice float64 `json:"promoPrice,omitempty"`
	ImageURL   string  `json:"imageUrl,omitempty"`
	Size       string  `json:"selectedSize"`
	Color      string  `json:"selectedColor"`
	WeightKg   float64 `json:"weightKg,omitempty"`
	Quantity   int     `json:"quantity"`
}

// UnitPrice aplica a regra promocional: promoPrice vale quando > 0.
func (i CartItem) UnitPrice() float64 {
	if i.PromoPrice > 0 {
		return i.PromoPrice
	}
	return i.Price
}

// SameLine compara a chave (produto, tamanho, cor) da linha.
func (i CartItem) SameLine(productID, size, color string) bool {
	return i.ProductID == productID && i.Size == size && i.Color == color
}
