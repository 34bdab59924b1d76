package shipping

import (
	"strconv"
	"strings"

	"github.com/Felipesc023/completa-site/internal/models"
)

const (
	// FreeShippingThreshold é o subtotal a partir do qual o frete sai grátis.
	FreeShippingThreshold = 199.0

	ServiceUnavailable = "Indisponível"
	ServiceFree        = "Frete Grátis (Padrão)"
	ServiceStandard    = "Entrega Padrão"
)

// CleanCEP remove tudo que não for dígito do CEP.
func CleanCEP(cep string) string {
	var b strings.Builder
	for _, r := range cep {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Calculate cota o frete para um destino a partir do CEP, das linhas da sacola
// e do subtotal. É uma função pura; nenhuma API de logística é consultada.
//
// Política:
//  1. Subtotal >= FreeShippingThreshold → frete grátis com prazo fixo.
//  2. Faixa regional pelos dois primeiros dígitos do CEP.
//  3. Adicional de volume: R$ 2 a cada grupo de 3 itens.
//
// CEP com tamanho diferente de 8 dígitos devolve uma opção "Indisponível",
// nunca um preço.
func Calculate(cep string, items []models.CartItem, subtotal float64) models.ShippingOption {
	clean := CleanCEP(cep)
	if len(clean) != 8 {
		return models.ShippingOption{Service: ServiceUnavailable}
	}

	if subtotal >= FreeShippingThreshold {
		return models.ShippingOption{
			Service: ServiceFree,
			Price:   0,
			Days:    5,
			IsFree:  true,
		}
	}

	ufCode, _ := strconv.Atoi(clean[:2])

	// Demais regiões
	basePrice := 24.0
	days := 7

	switch {
	// São Paulo (01-19)
	case ufCode >= 1 && ufCode <= 19:
		basePrice = 14
		days = 2
	// RJ, MG, PR, SC, RS
	case (ufCode >= 20 && ufCode <= 28) ||
		(ufCode >= 30 && ufCode <= 39) ||
		(ufCode >= 80 && ufCode <= 99):
		basePrice = 19
		days = 4
	}

	totalItems := 0
	for _, item := range items {
		totalItems += item.Quantity
	}
	volumeSurcharge := float64(totalItems/3) * 2

	return models.ShippingOption{
		Service: ServiceStandard,
		Price:   basePrice + volumeSurcharge,
		Days:    days,
	}
}
