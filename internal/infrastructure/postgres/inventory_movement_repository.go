package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, mv *entity.InventoryMovement) error {
	if mv.ID == "" {
		mv.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, material_id, type, quantity, unit_cost, total_cost, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		mv.ID, mv.MaterialID, string(mv.Type), mv.Quantity, mv.UnitCost, mv.TotalCost, mv.Reference, mv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// List lista movimientos, los más recientes primero.
func (r *InventoryMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	var w where
	if f.MaterialID != "" {
		w.add("material_id = ?", f.MaterialID)
	}
	if f.Type != "" {
		w.add("type = ?", string(f.Type))
	}
	if f.Reference != "" {
		w.add("reference = ?", f.Reference)
	}
	w.dateRange("created_at", f.From, f.To)

	query := `SELECT id, material_id, type, quantity, unit_cost, total_cost, reference, created_at
		FROM inventory_movements` + w.String() + ` ORDER BY created_at DESC, id DESC` + w.paginate(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var typ string
		if err := rows.Scan(&m.ID, &m.MaterialID, &typ, &m.Quantity, &m.UnitCost, &m.TotalCost,
			&m.Reference, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Type = entity.MovementType(typ)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SignedSum reconstruye el stock a partir del libro.
func (r *InventoryMovementRepo) SignedSum(ctx context.Context, materialID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN type IN ('IN', 'ADJUSTMENT') THEN quantity ELSE -quantity END), 0)
		FROM inventory_movements WHERE material_id = $1`, materialID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum movements: %w", err)
	}
	return sum, nil
}
