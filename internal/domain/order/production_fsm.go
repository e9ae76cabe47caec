package order

import "github.com/jhoicas/textil-erp/internal/domain/entity"

// ProductionMachine PENDING <-> IN_PROGRESS, ambos hacia COMPLETED o CANCELLED.
var ProductionMachine = newProductionMachine()

func newProductionMachine() *Machine[entity.ProductionStatus] {
	m := NewMachine("orden de producción",
		entity.ProductionStatusPending,
		entity.ProductionStatusInProgress,
		entity.ProductionStatusCompleted,
		entity.ProductionStatusCancelled,
	)
	m.Allow(entity.ProductionStatusPending, entity.ProductionStatusInProgress, EffectStampStartDate)
	m.Allow(entity.ProductionStatusInProgress, entity.ProductionStatusPending)
	for _, from := range []entity.ProductionStatus{entity.ProductionStatusPending, entity.ProductionStatusInProgress} {
		m.Allow(from, entity.ProductionStatusCompleted,
			EffectConsumeInputs, EffectProduceOutputs, EffectStampCompletion)
		m.Allow(from, entity.ProductionStatusCancelled)
	}
	return m
}
