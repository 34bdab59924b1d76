package cart

import (
	"log"

	"github.com/Felipesc023/completa-site/internal/models"
)

// Cart é o agregado da sacola de um usuário. Toda mutação persiste a lista
// completa de linhas via Storage; falha de persistência é logada, nunca
// devolvida ao chamador.
type Cart struct {
	userID  string
	items   []models.CartItem
	storage Storage
}

// Load reidrata a sacola do usuário a partir do Storage.
// Storage vazio ou com erro resulta em sacola vazia.
func Load(userID string, storage Storage) *Cart {
	items, err := storage.Load(userID)
	if err != nil {
		log.Printf("⚠️ Erro ao carregar sacola de %s: %v", userID, err)
		items = nil
	}
	return &Cart{userID: userID, items: items, storage: storage}
}

// Items retorna uma cópia das linhas da sacola.
func (c *Cart) Items() []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Add mescla na linha existente quando (produto, tamanho, cor) coincide,
// senão acrescenta uma linha nova. Retorna true quando a linha é nova.
func (c *Cart) Add(p models.Product, size, color string, quantity int) bool {
	if quantity <= 0 {
		return false
	}

	id := p.ID.String()
	for i := range c.items {
		if c.items[i].SameLine(id, size, color) {
			c.items[i].Quantity += quantity
			c.persist()
			return false
		}
	}

	c.items = append(c.items, models.CartItem{
		ProductID:  id,
		Name:       p.Name,
		Price:      p.Price,
		PromoPrice: p.PromoPrice,
		ImageURL:   p.ImageURL,
		Size:       size,
		Color:      color,
		WeightKg:   p.WeightKg,
		Quantity:   quantity,
	})
	c.persist()
	return true
}

// Remove apaga a linha correspondente; no-op se ausente.
func (c *Cart) Remove(productID, size, color string) {
	kept := c.items[:0]
	for _, item := range c.items {
		if !item.SameLine(productID, size, color) {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(c.items) {
		return
	}
	c.items = kept
	c.persist()
}

// SetQuantity ajusta a quantidade de uma linha. Quantidade abaixo de 1 é
// recusada: a linha só sai da sacola via Remove. (Outra variante do site
// removia a linha ao decrementar para zero; aqui a política é recusar.)
func (c *Cart) SetQuantity(productID, size, color string, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range c.items {
		if c.items[i].SameLine(productID, size, color) {
			c.items[i].Quantity = quantity
			c.persist()
			return
		}
	}
}

// Clear esvazia a sacola (fim do checkout).
func (c *Cart) Clear() {
	c.items = nil
	c.persist()
}

// Total soma (preço promocional quando > 0, senão preço base) × quantidade.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.UnitPrice() * float64(item.Quantity)
	}
	return total
}

// Count soma as quantidades de todas as linhas.
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) persist() {
	if err := c.storage.Save(c.userID, c.items); err != nil {
		log.Printf("⚠️ Erro ao salvar sacola de %s: %v", c.userID, err)
	}
}
