package store

import (
	"context"
	"testing"
	"time"

	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeRecebeSnapshotCompleto(t *testing.T) {
	s := NewMemoryProductStore()
	ctx := context.Background()

	var received [][]models.Product
	unsub := s.Subscribe(func(snapshot []models.Product) {
		received = append(received, snapshot)
	})

	require.NoError(t, s.Create(ctx, &models.Product{Name: "Vestido", Price: 389.90, IsActive: true}))
	require.NoError(t, s.Create(ctx, &models.Product{Name: "Blusa", Price: 299.90, IsActive: true}))

	require.Len(t, received, 2)
	assert.Len(t, received[0], 1)
	assert.Len(t, received[1], 2, "cada notificação traz o snapshot completo atual")

	// Após cancelar, nenhuma notificação nova
	unsub()
	require.NoError(t, s.Create(ctx, &models.Product{Name: "Calça", Price: 199.90}))
	assert.Len(t, received, 2)
}

func TestUpdateStatusCarimbaPagamento(t *testing.T) {
	s := NewMemoryOrderStore()
	ctx := context.Background()

	o := &models.Order{CustomerName: "Maria", Subtotal: 200, Total: 214}
	require.NoError(t, s.Create(ctx, o))
	assert.Equal(t, models.StatusAguardandoPagamento, o.Status)

	updated, err := s.UpdateStatus(ctx, o.ID.String(), models.StatusPago)
	require.NoError(t, err)
	require.NotNil(t, updated.PaidAt)
	first := *updated.PaidAt

	// Marcar pago de novo recarimba (sem guarda de idempotência)
	time.Sleep(5 * time.Millisecond)
	updated, err = s.UpdateStatus(ctx, o.ID.String(), models.StatusPago)
	require.NoError(t, err)
	require.NotNil(t, updated.PaidAt)
	assert.True(t, updated.PaidAt.After(first))

	// Qualquer outro status limpa o carimbo
	updated, err = s.UpdateStatus(ctx, o.ID.String(), models.StatusEnviado)
	require.NoError(t, err)
	assert.Nil(t, updated.PaidAt)

	// Nenhuma validação de transição: cancelado → pago é aceito
	_, err = s.UpdateStatus(ctx, o.ID.String(), models.StatusCancelado)
	require.NoError(t, err)
	updated, err = s.UpdateStatus(ctx, o.ID.String(), models.StatusPago)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPago, updated.Status)
}

func TestSetPaymentLink(t *testing.T) {
	s := NewMemoryOrderStore()
	ctx := context.Background()

	o := &models.Order{CustomerName: "Ana"}
	require.NoError(t, s.Create(ctx, o))
	require.NoError(t, s.SetPaymentLink(ctx, o.ID.String(), "https://pag.example/abc"))

	got, err := s.Get(ctx, o.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "https://pag.example/abc", got.PaymentLink)
}

func TestListByUser(t *testing.T) {
	s := NewMemoryOrderStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &models.Order{UserID: "u1", CustomerName: "Maria"}))
	require.NoError(t, s.Create(ctx, &models.Order{UserID: "u2", CustomerName: "Ana"}))
	require.NoError(t, s.Create(ctx, &models.Order{UserID: "u1", CustomerName: "Maria"}))

	orders, err := s.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}
