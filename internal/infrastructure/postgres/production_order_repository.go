package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

const productionColumns = `id, order_number, sales_order_id, user_id, priority, status, start_date,
	end_date, completed_date, notes, total_cost, created_at, updated_at`

// ProductionOrderRepo órdenes de producción; los ítems son insumos (material) o salidas (producto).
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

func scanProduction(row pgx.Row) (*entity.ProductionOrder, error) {
	var o entity.ProductionOrder
	var priority, status string
	if err := row.Scan(&o.ID, &o.OrderNumber, &o.SalesOrderID, &o.UserID, &priority, &status, &o.StartDate,
		&o.EndDate, &o.CompletedDate, &o.Notes, &o.TotalCost, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Priority = entity.Priority(priority)
	o.Status = entity.ProductionStatus(status)
	return &o, nil
}

func (r *ProductionOrderRepo) Create(ctx context.Context, o *entity.ProductionOrder) error {
	_, err := r.q.Exec(ctx, `INSERT INTO production_orders (`+productionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		o.ID, o.OrderNumber, o.SalesOrderID, o.UserID, string(o.Priority), string(o.Status), o.StartDate,
		o.EndDate, o.CompletedDate, o.Notes, o.TotalCost, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert production order: %w", err)
	}
	return r.insertItems(ctx, o.ID, o.Items)
}

func (r *ProductionOrderRepo) insertItems(ctx context.Context, orderID string, items []entity.ProductionItem) error {
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.OrderID = orderID
		if _, err := r.q.Exec(ctx, `
			INSERT INTO production_order_items (id, order_id, line_no, material_id, product_id, quantity, unit_cost, total_cost, is_output)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, orderID, i+1, it.MaterialID, it.ProductID, it.Quantity, it.UnitCost, it.TotalCost, it.IsOutput,
		); err != nil {
			return fmt.Errorf("insert production item: %w", err)
		}
	}
	return nil
}

func (r *ProductionOrderRepo) GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	return r.get(ctx, `SELECT `+productionColumns+` FROM production_orders WHERE id = $1`, id)
}

func (r *ProductionOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	return r.get(ctx, `SELECT `+productionColumns+` FROM production_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductionOrderRepo) get(ctx context.Context, query, id string) (*entity.ProductionOrder, error) {
	o, err := scanProduction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	items, err := r.items(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

// items devuelve las líneas de cada orden en el orden en que se guardaron.
func (r *ProductionOrderRepo) items(ctx context.Context, orderIDs []string) (map[string][]entity.ProductionItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, material_id, product_id, quantity, unit_cost, total_cost, is_output
		FROM production_order_items WHERE order_id = ANY($1) ORDER BY order_id, line_no`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list production items: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.ProductionItem, len(orderIDs))
	for rows.Next() {
		var it entity.ProductionItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MaterialID, &it.ProductID, &it.Quantity,
			&it.UnitCost, &it.TotalCost, &it.IsOutput); err != nil {
			return nil, fmt.Errorf("scan production item: %w", err)
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

func (r *ProductionOrderRepo) Update(ctx context.Context, o *entity.ProductionOrder) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE production_orders SET sales_order_id = $2, priority = $3, status = $4, start_date = $5,
			end_date = $6, completed_date = $7, notes = $8, total_cost = $9, updated_at = $10
		WHERE id = $1`,
		o.ID, o.SalesOrderID, string(o.Priority), string(o.Status), o.StartDate, o.EndDate,
		o.CompletedDate, o.Notes, o.TotalCost, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update production order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *ProductionOrderRepo) ReplaceItems(ctx context.Context, orderID string, items []entity.ProductionItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM production_order_items WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete production items: %w", err)
	}
	return r.insertItems(ctx, orderID, items)
}

func (r *ProductionOrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM production_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete production order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *ProductionOrderRepo) List(ctx context.Context, f repository.ProductionOrderFilter) ([]*entity.ProductionOrder, error) {
	var w where
	if f.SalesOrderID != "" {
		w.add("sales_order_id = ?", f.SalesOrderID)
	}
	if f.Status != "" {
		w.add("status = ?", string(f.Status))
	}
	if f.Priority != "" {
		w.add("priority = ?", string(f.Priority))
	}
	rows, err := r.q.Query(ctx, `SELECT `+productionColumns+` FROM production_orders`+w.String()+
		` ORDER BY length(order_number) DESC, order_number DESC`+w.paginate(f.Page), w.args...)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	var list []*entity.ProductionOrder
	var ids []string
	for rows.Next() {
		o, err := scanProduction(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		list = append(list, o)
		ids = append(ids, o.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	items, err := r.items(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		o.Items = items[o.ID]
	}
	return list, nil
}
