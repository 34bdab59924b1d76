package models

import (
	"time"

	"github.com/gocql/gocql"
)

type OrderStatus string

const (
	StatusAguardandoPagamento OrderStatus = "aguardando_pagamento"
	StatusPago                OrderStatus = "pago"
	StatusCancelado           OrderStatus = "cancelado"
	StatusEnviado             OrderStatus = "enviado"
)

// ValidStatus diz se o valor pertence ao conjunto fechado de status.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusAguardandoPagamento, StatusPago, StatusCancelado, StatusEnviado:
		return true
	}
	return false
}

type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
}

type OrderShipping struct {
	Service string  `json:"service"`
	Price   float64 `json:"price"`
	Days    int     `json:"days"`
}

// Order é o snapshot persistido de uma compra. Total = Subtotal + Shipping.Price
// no momento da criação; nunca é recalculado depois.
type Order struct {
	ID            gocql.UUID    `json:"id"`
	UserID        string        `json:"userId,omitempty"`
	CustomerName  string        `json:"customerName"`
	CustomerPhone string        `json:"customerPhone"`
	CustomerEmail string        `json:"customerEmail"`
	Address       Address       `json:"address"`
	Items         []OrderItem   `json:"items"`
	Shipping      OrderShipping `json:"shipping"`
	Subtotal      float64       `json:"subtotal"`
	Total         float64       `json:"total"`
	Status        OrderStatus   `json:"status"`
	PaymentLink   string        `json:"paymentLink,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
}
