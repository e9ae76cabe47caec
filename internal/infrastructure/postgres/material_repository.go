package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, sku, name, description, category_id, supplier_id, unit, cost_price,
	current_stock, min_stock, max_stock, is_active, created_at, updated_at`

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(&m.ID, &m.SKU, &m.Name, &m.Description, &m.CategoryID, &m.SupplierID, &m.Unit,
		&m.CostPrice, &m.CurrentStock, &m.MinStock, &m.MaxStock, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un nuevo material. El SKU repetido devuelve ErrDuplicate.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.SKU, m.Name, m.Description, m.CategoryID, m.SupplierID, m.Unit, m.CostPrice,
		m.CurrentStock, m.MinStock, m.MaxStock, m.IsActive, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID; nil, nil si no existe.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// GetBySKU obtiene un material por SKU.
func (r *MaterialRepo) GetBySKU(ctx context.Context, sku string) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, `SELECT `+materialColumns+` FROM materials WHERE sku = $1`, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material by sku: %w", err)
	}
	return m, nil
}

// Update actualiza datos de catálogo. current_stock no se toca: solo cambia vía movimientos.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	query := `
		UPDATE materials SET sku = $2, name = $3, description = $4, category_id = $5, supplier_id = $6,
			unit = $7, cost_price = $8, min_stock = $9, max_stock = $10, is_active = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, m.SKU, m.Name, m.Description, m.CategoryID, m.SupplierID, m.Unit, m.CostPrice,
		m.MinStock, m.MaxStock, m.IsActive, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}

// Deactivate borrado lógico.
func (r *MaterialRepo) Deactivate(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE materials SET is_active = FALSE, updated_at = $2 WHERE id = $1`, id, time.Now())
	if err != nil {
		return fmt.Errorf("deactivate material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}

// List lista materiales según el filtro, ordenados por SKU.
func (r *MaterialRepo) List(ctx context.Context, f repository.MaterialFilter) ([]*entity.Material, error) {
	var w where
	if f.Search != "" {
		p := likePattern(f.Search)
		w.add("(sku ILIKE ? OR name ILIKE ?)", p, p)
	}
	if f.CategoryID != "" {
		w.add("category_id = ?", f.CategoryID)
	}
	if f.SupplierID != "" {
		w.add("supplier_id = ?", f.SupplierID)
	}
	if f.ActiveOnly {
		w.add("is_active")
	}
	if f.LowStock {
		w.add("current_stock <= min_stock")
	}
	query := `SELECT ` + materialColumns + ` FROM materials` + w.String() + ` ORDER BY sku` + w.paginate(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// IncrementStock suma qty al stock actual.
func (r *MaterialRepo) IncrementStock(ctx context.Context, id string, qty decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE materials SET current_stock = current_stock + $2, updated_at = now() WHERE id = $1`,
		id, qty,
	)
	if err != nil {
		return fmt.Errorf("increment material stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}

// DecrementStock resta qty solo si alcanza. La condición va en el mismo UPDATE,
// así dos transacciones concurrentes no pueden dejar el stock negativo.
func (r *MaterialRepo) DecrementStock(ctx context.Context, id string, qty decimal.Decimal) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE materials SET current_stock = current_stock - $2, updated_at = now()
		WHERE id = $1 AND current_stock >= $2`,
		id, qty,
	)
	if err != nil {
		if isCheckViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("decrement material stock: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}
