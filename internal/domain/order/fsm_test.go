package order_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/order"
)

// ──────────────────────────────────────────────────────────────────────────────
// Compras
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchaseMachine_RecibirDesdeAbiertos(t *testing.T) {
	for _, from := range []entity.PurchaseStatus{entity.PurchaseStatusPending, entity.PurchaseStatusApproved} {
		tr, err := order.PurchaseMachine.Next(from, entity.PurchaseStatusReceived)
		require.NoError(t, err)
		assert.False(t, tr.NoOp)
		assert.True(t, tr.Has(order.EffectReceiveStock), "desde %s", from)
		assert.True(t, tr.Has(order.EffectStampReceivedDate))
	}
}

func TestPurchaseMachine_RecibirDosVecesEsNoOp(t *testing.T) {
	tr, err := order.PurchaseMachine.Next(entity.PurchaseStatusReceived, entity.PurchaseStatusReceived)
	require.NoError(t, err)
	assert.True(t, tr.NoOp)
	assert.Empty(t, tr.Effects)
}

func TestPurchaseMachine_TransicionesPurasSinEfectos(t *testing.T) {
	cases := [][2]entity.PurchaseStatus{
		{entity.PurchaseStatusPending, entity.PurchaseStatusApproved},
		{entity.PurchaseStatusApproved, entity.PurchaseStatusPending},
		{entity.PurchaseStatusPending, entity.PurchaseStatusCancelled},
		{entity.PurchaseStatusApproved, entity.PurchaseStatusCancelled},
	}
	for _, c := range cases {
		tr, err := order.PurchaseMachine.Next(c[0], c[1])
		require.NoError(t, err, "%s -> %s", c[0], c[1])
		assert.Empty(t, tr.Effects)
	}
}

func TestPurchaseMachine_TerminalesNoSalen(t *testing.T) {
	cases := [][2]entity.PurchaseStatus{
		{entity.PurchaseStatusReceived, entity.PurchaseStatusPending},
		{entity.PurchaseStatusReceived, entity.PurchaseStatusCancelled},
		{entity.PurchaseStatusCancelled, entity.PurchaseStatusReceived},
		{entity.PurchaseStatusCancelled, entity.PurchaseStatusPending},
	}
	for _, c := range cases {
		_, err := order.PurchaseMachine.Next(c[0], c[1])
		assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "%s -> %s", c[0], c[1])
	}
}

func TestPurchaseMachine_EstadoDesconocido(t *testing.T) {
	_, err := order.PurchaseMachine.Next(entity.PurchaseStatusPending, "SHIPPED")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesMachine_EntregarDesdeCualquierAbierto(t *testing.T) {
	open := []entity.SalesStatus{
		entity.SalesStatusPending, entity.SalesStatusConfirmed,
		entity.SalesStatusInProduction, entity.SalesStatusReady,
	}
	for _, from := range open {
		tr, err := order.SalesMachine.Next(from, entity.SalesStatusDelivered)
		require.NoError(t, err)
		assert.Equal(t, []order.Effect{order.EffectDeliverStock}, tr.Effects)
	}
}

func TestSalesMachine_EntregadaYCanceladaSonTerminales(t *testing.T) {
	_, err := order.SalesMachine.Next(entity.SalesStatusDelivered, entity.SalesStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = order.SalesMachine.Next(entity.SalesStatusCancelled, entity.SalesStatusDelivered)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	tr, err := order.SalesMachine.Next(entity.SalesStatusDelivered, entity.SalesStatusDelivered)
	require.NoError(t, err)
	assert.True(t, tr.NoOp)
}

func TestSalesMachine_ReadyVuelveAConfirmed(t *testing.T) {
	tr, err := order.SalesMachine.Next(entity.SalesStatusReady, entity.SalesStatusConfirmed)
	require.NoError(t, err)
	assert.Empty(t, tr.Effects)
}

// ──────────────────────────────────────────────────────────────────────────────
// Producción
// ──────────────────────────────────────────────────────────────────────────────

func TestProductionMachine_CompletarConsumeYProduce(t *testing.T) {
	tr, err := order.ProductionMachine.Next(entity.ProductionStatusInProgress, entity.ProductionStatusCompleted)
	require.NoError(t, err)
	assert.True(t, tr.Has(order.EffectConsumeInputs))
	assert.True(t, tr.Has(order.EffectProduceOutputs))
	assert.True(t, tr.Has(order.EffectStampCompletion))
}

func TestProductionMachine_InicioMarcaFecha(t *testing.T) {
	tr, err := order.ProductionMachine.Next(entity.ProductionStatusPending, entity.ProductionStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, []order.Effect{order.EffectStampStartDate}, tr.Effects)
}

func TestProductionMachine_CompletadaNoSeCancela(t *testing.T) {
	_, err := order.ProductionMachine.Next(entity.ProductionStatusCompleted, entity.ProductionStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	tr, err := order.ProductionMachine.Next(entity.ProductionStatusCompleted, entity.ProductionStatusCompleted)
	require.NoError(t, err)
	assert.True(t, tr.NoOp)
}

func TestMachine_NextDevuelveCopiaDeEfectos(t *testing.T) {
	tr, err := order.ProductionMachine.Next(entity.ProductionStatusPending, entity.ProductionStatusCompleted)
	require.NoError(t, err)
	tr.Effects[0] = "MUTADO"
	again, err := order.ProductionMachine.Next(entity.ProductionStatusPending, entity.ProductionStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, order.EffectConsumeInputs, again.Effects[0])
}
