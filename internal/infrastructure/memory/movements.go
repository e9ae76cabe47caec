package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

var (
	_ repository.InventoryMovementRepository = (*movementRepo)(nil)
	_ repository.SequenceRepository          = (*sequenceRepo)(nil)
)

type movementRepo struct{ v view }

func (r *movementRepo) Create(_ context.Context, mv *entity.InventoryMovement) error {
	return r.v.write(func(st *state) error {
		st.movements = append(st.movements, *mv)
		return nil
	})
}

// List devuelve los movimientos más recientes primero.
func (r *movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	var all []*entity.InventoryMovement
	r.v.read(func(st *state) {
		for i := len(st.movements) - 1; i >= 0; i-- {
			mv := st.movements[i]
			if f.MaterialID != "" && mv.MaterialID != f.MaterialID {
				continue
			}
			if f.Type != "" && mv.Type != f.Type {
				continue
			}
			if f.Reference != "" && mv.Reference != f.Reference {
				continue
			}
			if !inRange(mv.CreatedAt, f.From, f.To) {
				continue
			}
			all = append(all, &mv)
		}
	})
	from, to := page(len(all), f.Page)
	return all[from:to], nil
}

func (r *movementRepo) SignedSum(_ context.Context, materialID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	r.v.read(func(st *state) {
		for i := range st.movements {
			if st.movements[i].MaterialID == materialID {
				sum = sum.Add(st.movements[i].SignedQuantity())
			}
		}
	})
	return sum, nil
}

type sequenceRepo struct{ v view }

func (r *sequenceRepo) Next(_ context.Context, prefix string) (int64, error) {
	var n int64
	err := r.v.write(func(st *state) error {
		st.sequences[prefix]++
		n = st.sequences[prefix]
		return nil
	})
	return n, err
}
