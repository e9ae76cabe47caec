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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const purchaseColumns = `id, order_number, supplier_id, user_id, status, order_date, expected_date,
	received_date, notes, total_amount, created_at, updated_at`

// PurchaseOrderRepo órdenes de compra y sus ítems.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

func scanPurchase(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	var status string
	if err := row.Scan(&o.ID, &o.OrderNumber, &o.SupplierID, &o.UserID, &status, &o.OrderDate,
		&o.ExpectedDate, &o.ReceivedDate, &o.Notes, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Status = entity.PurchaseStatus(status)
	return &o, nil
}

// Create inserta cabecera e ítems.
func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	_, err := r.q.Exec(ctx, `INSERT INTO purchase_orders (`+purchaseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		o.ID, o.OrderNumber, o.SupplierID, o.UserID, string(o.Status), o.OrderDate, o.ExpectedDate,
		o.ReceivedDate, o.Notes, o.TotalAmount, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return r.insertItems(ctx, o.ID, o.Items)
}

func (r *PurchaseOrderRepo) insertItems(ctx context.Context, orderID string, items []entity.PurchaseItem) error {
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.OrderID = orderID
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_order_items (id, order_id, line_no, material_id, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, orderID, i+1, it.MaterialID, it.Quantity, it.UnitPrice, it.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus ítems; nil, nil si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+purchaseColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero con SELECT ... FOR UPDATE sobre la cabecera.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+purchaseColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) get(ctx context.Context, query, id string) (*entity.PurchaseOrder, error) {
	o, err := scanPurchase(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	items, err := r.items(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *PurchaseOrderRepo) items(ctx context.Context, orderIDs []string) (map[string][]entity.PurchaseItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, material_id, quantity, unit_price, total_price
		FROM purchase_order_items WHERE order_id = ANY($1) ORDER BY order_id, line_no`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.PurchaseItem, len(orderIDs))
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MaterialID, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

// Update persiste la cabecera.
func (r *PurchaseOrderRepo) Update(ctx context.Context, o *entity.PurchaseOrder) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET supplier_id = $2, status = $3, expected_date = $4, received_date = $5,
			notes = $6, total_amount = $7, updated_at = $8
		WHERE id = $1`,
		o.ID, o.SupplierID, string(o.Status), o.ExpectedDate, o.ReceivedDate, o.Notes, o.TotalAmount, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// ReplaceItems borra e inserta de nuevo todas las líneas.
func (r *PurchaseOrderRepo) ReplaceItems(ctx context.Context, orderID string, items []entity.PurchaseItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_order_items WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete purchase items: %w", err)
	}
	return r.insertItems(ctx, orderID, items)
}

// Delete borra la orden; los ítems caen por ON DELETE CASCADE.
func (r *PurchaseOrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// List lista órdenes, las más recientes (número mayor) primero.
func (r *PurchaseOrderRepo) List(ctx context.Context, f repository.PurchaseOrderFilter) ([]*entity.PurchaseOrder, error) {
	var w where
	if f.SupplierID != "" {
		w.add("supplier_id = ?", f.SupplierID)
	}
	if f.Status != "" {
		w.add("status = ?", string(f.Status))
	}
	w.dateRange("order_date", f.From, f.To)
	query := `SELECT ` + purchaseColumns + ` FROM purchase_orders` + w.String() +
		` ORDER BY length(order_number) DESC, order_number DESC` + w.paginate(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	var list []*entity.PurchaseOrder
	var ids []string
	for rows.Next() {
		o, err := scanPurchase(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase order: %w", err)
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
