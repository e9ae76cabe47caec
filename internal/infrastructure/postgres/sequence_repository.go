package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador por prefijo en order_sequences.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el siguiente número. El UPSERT bloquea la fila del prefijo
// hasta el fin de la transacción, así dos órdenes concurrentes no obtienen el mismo número.
func (r *SequenceRepo) Next(ctx context.Context, prefix string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO order_sequences (prefix, last_number) VALUES ($1, 1)
		ON CONFLICT (prefix) DO UPDATE SET last_number = order_sequences.last_number + 1
		RETURNING last_number`, prefix).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", prefix, err)
	}
	return n, nil
}
