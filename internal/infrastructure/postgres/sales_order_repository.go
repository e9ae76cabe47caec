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

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

const salesColumns = `id, order_number, customer_id, user_id, status, order_date, delivery_date,
	notes, total_amount, created_at, updated_at`

// SalesOrderRepo órdenes de venta y sus ítems.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

func scanSales(row pgx.Row) (*entity.SalesOrder, error) {
	var o entity.SalesOrder
	var status string
	if err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.UserID, &status, &o.OrderDate,
		&o.DeliveryDate, &o.Notes, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Status = entity.SalesStatus(status)
	return &o, nil
}

func (r *SalesOrderRepo) Create(ctx context.Context, o *entity.SalesOrder) error {
	_, err := r.q.Exec(ctx, `INSERT INTO sales_orders (`+salesColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		o.ID, o.OrderNumber, o.CustomerID, o.UserID, string(o.Status), o.OrderDate, o.DeliveryDate,
		o.Notes, o.TotalAmount, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sales order: %w", err)
	}
	return r.insertItems(ctx, o.ID, o.Items)
}

func (r *SalesOrderRepo) insertItems(ctx context.Context, orderID string, items []entity.SalesItem) error {
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.OrderID = orderID
		if _, err := r.q.Exec(ctx, `
			INSERT INTO sales_order_items (id, order_id, line_no, product_id, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, orderID, i+1, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice,
		); err != nil {
			return fmt.Errorf("insert sales item: %w", err)
		}
	}
	return nil
}

func (r *SalesOrderRepo) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, `SELECT `+salesColumns+` FROM sales_orders WHERE id = $1`, id)
}

func (r *SalesOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, `SELECT `+salesColumns+` FROM sales_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *SalesOrderRepo) get(ctx context.Context, query, id string) (*entity.SalesOrder, error) {
	o, err := scanSales(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	items, err := r.items(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *SalesOrderRepo) items(ctx context.Context, orderIDs []string) (map[string][]entity.SalesItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price, total_price
		FROM sales_order_items WHERE order_id = ANY($1) ORDER BY order_id, line_no`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list sales items: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.SalesItem, len(orderIDs))
	for rows.Next() {
		var it entity.SalesItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan sales item: %w", err)
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

func (r *SalesOrderRepo) Update(ctx context.Context, o *entity.SalesOrder) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE sales_orders SET customer_id = $2, status = $3, delivery_date = $4, notes = $5,
			total_amount = $6, updated_at = $7
		WHERE id = $1`,
		o.ID, o.CustomerID, string(o.Status), o.DeliveryDate, o.Notes, o.TotalAmount, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *SalesOrderRepo) ReplaceItems(ctx context.Context, orderID string, items []entity.SalesItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sales_order_items WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete sales items: %w", err)
	}
	return r.insertItems(ctx, orderID, items)
}

func (r *SalesOrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sales order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *SalesOrderRepo) List(ctx context.Context, f repository.SalesOrderFilter) ([]*entity.SalesOrder, error) {
	var w where
	if f.CustomerID != "" {
		w.add("customer_id = ?", f.CustomerID)
	}
	if f.Status != "" {
		w.add("status = ?", string(f.Status))
	}
	w.dateRange("order_date", f.From, f.To)
	rows, err := r.q.Query(ctx, `SELECT `+salesColumns+` FROM sales_orders`+w.String()+
		` ORDER BY length(order_number) DESC, order_number DESC`+w.paginate(f.Page), w.args...)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	var list []*entity.SalesOrder
	var ids []string
	for rows.Next() {
		o, err := scanSales(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sales order: %w", err)
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
