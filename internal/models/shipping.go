package models

// ShippingOption é derivada, nunca persistida: recalculada a cada consulta de CEP.
type ShippingOption struct {
	Service string  `json:"service"`
	Price   float64 `json:"price"`
	Days    int     `json:"days"`
	IsFree  bool    `json:"isFree,omitempty"`
}

// Unavailable indica que o CEP informado não permite cotação.
func (o ShippingOption) Unavailable() bool {
	return o.Service == "Indisponível"
}
