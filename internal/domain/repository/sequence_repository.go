package repository

import "context"

// Prefijos de numeración por tipo de orden.
const (
	SeqPurchase   = "OC"
	SeqSales      = "OV"
	SeqProduction = "OP"
)

// SequenceRepository contador atómico por tipo de orden; nunca reutiliza números.
type SequenceRepository interface {
	Next(ctx context.Context, prefix string) (int64, error)
}
