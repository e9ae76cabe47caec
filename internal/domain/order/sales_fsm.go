package order

import "github.com/jhoicas/textil-erp/internal/domain/entity"

var salesOpen = []entity.SalesStatus{
	entity.SalesStatusPending,
	entity.SalesStatusConfirmed,
	entity.SalesStatusInProduction,
	entity.SalesStatusReady,
}

// SalesMachine: los estados abiertos se mueven libremente entre sí;
// DELIVERED descuenta stock de producto y CANCELLED no tiene efectos.
var SalesMachine = newSalesMachine()

func newSalesMachine() *Machine[entity.SalesStatus] {
	m := NewMachine("orden de venta", append(salesOpen, entity.SalesStatusDelivered, entity.SalesStatusCancelled)...)
	for _, from := range salesOpen {
		for _, to := range salesOpen {
			if from != to {
				m.Allow(from, to)
			}
		}
		m.Allow(from, entity.SalesStatusDelivered, EffectDeliverStock)
		m.Allow(from, entity.SalesStatusCancelled)
	}
	return m
}
