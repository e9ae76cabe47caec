package order

import "github.com/jhoicas/textil-erp/internal/domain/entity"

// PurchaseMachine PENDING <-> APPROVED, ambos hacia RECEIVED (suma stock) o CANCELLED.
var PurchaseMachine = newPurchaseMachine()

func newPurchaseMachine() *Machine[entity.PurchaseStatus] {
	m := NewMachine("orden de compra",
		entity.PurchaseStatusPending,
		entity.PurchaseStatusApproved,
		entity.PurchaseStatusReceived,
		entity.PurchaseStatusCancelled,
	)
	for _, from := range []entity.PurchaseStatus{entity.PurchaseStatusPending, entity.PurchaseStatusApproved} {
		m.Allow(from, entity.PurchaseStatusReceived, EffectReceiveStock, EffectStampReceivedDate)
		m.Allow(from, entity.PurchaseStatusCancelled)
	}
	m.Allow(entity.PurchaseStatusPending, entity.PurchaseStatusApproved)
	m.Allow(entity.PurchaseStatusApproved, entity.PurchaseStatusPending)
	return m
}
