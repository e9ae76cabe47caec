package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/order"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

var (
	_ repository.PurchaseOrderRepository   = (*purchaseRepo)(nil)
	_ repository.SalesOrderRepository      = (*salesRepo)(nil)
	_ repository.ProductionOrderRepository = (*productionRepo)(nil)
)

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

// ── Compras ──────────────────────────────────────────────────────────────────

type purchaseRepo struct{ v view }

func copyPurchase(o entity.PurchaseOrder) *entity.PurchaseOrder {
	o.Items = append([]entity.PurchaseItem(nil), o.Items...)
	return &o
}

func (r *purchaseRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	return r.v.write(func(st *state) error {
		st.purchases[o.ID] = *copyPurchase(*o)
		return nil
	})
}

func (r *purchaseRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	r.v.read(func(st *state) {
		if o, ok := st.purchases[id]; ok {
			out = copyPurchase(o)
		}
	})
	return out, nil
}

// GetForUpdate no necesita bloqueo adicional: Run ya serializa las transacciones.
func (r *purchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *purchaseRepo) Update(_ context.Context, o *entity.PurchaseOrder) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.purchases[o.ID]
		if !ok {
			return domain.ErrOrderNotFound
		}
		upd := *o
		upd.Items = cur.Items
		st.purchases[o.ID] = upd
		return nil
	})
}

func (r *purchaseRepo) ReplaceItems(_ context.Context, orderID string, items []entity.PurchaseItem) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.purchases[orderID]
		if !ok {
			return domain.ErrOrderNotFound
		}
		cur.Items = append([]entity.PurchaseItem(nil), items...)
		st.purchases[orderID] = cur
		return nil
	})
}

func (r *purchaseRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.purchases[id]; !ok {
			return domain.ErrOrderNotFound
		}
		delete(st.purchases, id)
		return nil
	})
}

func (r *purchaseRepo) List(_ context.Context, f repository.PurchaseOrderFilter) ([]*entity.PurchaseOrder, error) {
	var all []*entity.PurchaseOrder
	r.v.read(func(st *state) {
		for _, o := range st.purchases {
			if f.SupplierID != "" && o.SupplierID != f.SupplierID {
				continue
			}
			if f.Status != "" && o.Status != f.Status {
				continue
			}
			if !inRange(o.OrderDate, f.From, f.To) {
				continue
			}
			all = append(all, copyPurchase(o))
		}
	})
	sort.Slice(all, func(i, j int) bool { return order.NumberLess(all[j].OrderNumber, all[i].OrderNumber) })
	from, to := page(len(all), f.Page)
	return all[from:to], nil
}

// ── Ventas ───────────────────────────────────────────────────────────────────

type salesRepo struct{ v view }

func copySales(o entity.SalesOrder) *entity.SalesOrder {
	o.Items = append([]entity.SalesItem(nil), o.Items...)
	return &o
}

func (r *salesRepo) Create(_ context.Context, o *entity.SalesOrder) error {
	return r.v.write(func(st *state) error {
		st.sales[o.ID] = *copySales(*o)
		return nil
	})
}

func (r *salesRepo) GetByID(_ context.Context, id string) (*entity.SalesOrder, error) {
	var out *entity.SalesOrder
	r.v.read(func(st *state) {
		if o, ok := st.sales[id]; ok {
			out = copySales(o)
		}
	})
	return out, nil
}

func (r *salesRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *salesRepo) Update(_ context.Context, o *entity.SalesOrder) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.sales[o.ID]
		if !ok {
			return domain.ErrOrderNotFound
		}
		upd := *o
		upd.Items = cur.Items
		st.sales[o.ID] = upd
		return nil
	})
}

func (r *salesRepo) ReplaceItems(_ context.Context, orderID string, items []entity.SalesItem) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.sales[orderID]
		if !ok {
			return domain.ErrOrderNotFound
		}
		cur.Items = append([]entity.SalesItem(nil), items...)
		st.sales[orderID] = cur
		return nil
	})
}

func (r *salesRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.sales[id]; !ok {
			return domain.ErrOrderNotFound
		}
		delete(st.sales, id)
		return nil
	})
}

func (r *salesRepo) List(_ context.Context, f repository.SalesOrderFilter) ([]*entity.SalesOrder, error) {
	var all []*entity.SalesOrder
	r.v.read(func(st *state) {
		for _, o := range st.sales {
			if f.CustomerID != "" && o.CustomerID != f.CustomerID {
				continue
			}
			if f.Status != "" && o.Status != f.Status {
				continue
			}
			if !inRange(o.OrderDate, f.From, f.To) {
				continue
			}
			all = append(all, copySales(o))
		}
	})
	sort.Slice(all, func(i, j int) bool { return order.NumberLess(all[j].OrderNumber, all[i].OrderNumber) })
	from, to := page(len(all), f.Page)
	return all[from:to], nil
}

// ── Producción ───────────────────────────────────────────────────────────────

type productionRepo struct{ v view }

func copyProduction(o entity.ProductionOrder) *entity.ProductionOrder {
	o.Items = append([]entity.ProductionItem(nil), o.Items...)
	return &o
}

func (r *productionRepo) Create(_ context.Context, o *entity.ProductionOrder) error {
	return r.v.write(func(st *state) error {
		st.production[o.ID] = *copyProduction(*o)
		return nil
	})
}

func (r *productionRepo) GetByID(_ context.Context, id string) (*entity.ProductionOrder, error) {
	var out *entity.ProductionOrder
	r.v.read(func(st *state) {
		if o, ok := st.production[id]; ok {
			out = copyProduction(o)
		}
	})
	return out, nil
}

func (r *productionRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *productionRepo) Update(_ context.Context, o *entity.ProductionOrder) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.production[o.ID]
		if !ok {
			return domain.ErrOrderNotFound
		}
		upd := *o
		upd.Items = cur.Items
		st.production[o.ID] = upd
		return nil
	})
}

func (r *productionRepo) ReplaceItems(_ context.Context, orderID string, items []entity.ProductionItem) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.production[orderID]
		if !ok {
			return domain.ErrOrderNotFound
		}
		cur.Items = append([]entity.ProductionItem(nil), items...)
		st.production[orderID] = cur
		return nil
	})
}

func (r *productionRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.production[id]; !ok {
			return domain.ErrOrderNotFound
		}
		delete(st.production, id)
		return nil
	})
}

func (r *productionRepo) List(_ context.Context, f repository.ProductionOrderFilter) ([]*entity.ProductionOrder, error) {
	var all []*entity.ProductionOrder
	r.v.read(func(st *state) {
		for _, o := range st.production {
			if f.SalesOrderID != "" && (o.SalesOrderID == nil || *o.SalesOrderID != f.SalesOrderID) {
				continue
			}
			if f.Status != "" && o.Status != f.Status {
				continue
			}
			if f.Priority != "" && o.Priority != f.Priority {
				continue
			}
			all = append(all, copyProduction(o))
		}
	})
	sort.Slice(all, func(i, j int) bool { return order.NumberLess(all[j].OrderNumber, all[i].OrderNumber) })
	from, to := page(len(all), f.Page)
	return all[from:to], nil
}
