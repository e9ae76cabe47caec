package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

var (
	_ repository.MaterialRepository = (*materialRepo)(nil)
	_ repository.ProductRepository  = (*productRepo)(nil)
	_ repository.SupplierRepository = (*supplierRepo)(nil)
	_ repository.CustomerRepository = (*customerRepo)(nil)
	_ repository.UserRepository     = (*userRepo)(nil)
)

func matches(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// ── Materiales ───────────────────────────────────────────────────────────────

type materialRepo struct{ v view }

func (r *materialRepo) Create(_ context.Context, m *entity.Material) error {
	return r.v.write(func(st *state) error {
		for _, x := range st.materials {
			if x.SKU == m.SKU {
				return domain.ErrDuplicate
			}
		}
		st.materials[m.ID] = *m
		return nil
	})
}

func (r *materialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	var out *entity.Material
	r.v.read(func(st *state) {
		if m, ok := st.materials[id]; ok {
			out = &m
		}
	})
	return out, nil
}

func (r *materialRepo) GetBySKU(_ context.Context, sku string) (*entity.Material, error) {
	var out *entity.Material
	r.v.read(func(st *state) {
		for _, m := range st.materials {
			if m.SKU == sku {
				m := m
				out = &m
				return
			}
		}
	})
	return out, nil
}

func (r *materialRepo) Update(_ context.Context, m *entity.Material) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.materials[m.ID]
		if !ok {
			return domain.ErrMaterialNotFound
		}
		upd := *m
		upd.CurrentStock = cur.CurrentStock
		st.materials[m.ID] = upd
		return nil
	})
}

func (r *materialRepo) Deactivate(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		m, ok := st.materials[id]
		if !ok {
			return domain.ErrMaterialNotFound
		}
		m.IsActive = false
		m.UpdatedAt = time.Now()
		st.materials[id] = m
		return nil
	})
}

func (r *materialRepo) List(_ context.Context, f repository.MaterialFilter) ([]*entity.Material, error) {
	var all []*entity.Material
	r.v.read(func(st *state) {
		for _, m := range st.materials {
			if f.ActiveOnly && !m.IsActive {
				continue
			}
			if f.CategoryID != "" && m.CategoryID != f.CategoryID {
				continue
			}
			if f.SupplierID != "" && (m.SupplierID == nil || *m.SupplierID != f.SupplierID) {
				continue
			}
			if f.LowStock && m.CurrentStock.GreaterThan(m.MinStock) {
				continue
			}
			if !matches(f.Search, m.SKU, m.Name) {
				continue
			}
			m := m
			all = append(all, &m)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].SKU < all[j].SKU })
	from, to := page(len(all), f.Page)
	return all[from:to], nil
}

func (r *materialRepo) IncrementStock(_ context.Context, id string, qty decimal.Decimal) error {
	return r.v.write(func(st *state) error {
		m, ok := st.materials[id]
		if !ok {
			return domain.ErrMaterialNotFound
		}
		m.CurrentStock = m.CurrentStock.Add(qty)
		m.UpdatedAt = time.Now()
		st.materials[id] = m
		return nil
	})
}

func (r *materialRepo) DecrementStock(_ context.Context, id string, qty decimal.Decimal) (bool, error) {
	applied := false
	err := r.v.write(func(st *state) error {
		m, ok := st.materials[id]
		if !ok {
			return domain.ErrMaterialNotFound
		}
		if m.CurrentStock.LessThan(qty) {
			return nil
		}
		m.CurrentStock = m.CurrentStock.Sub(qty)
		m.UpdatedAt = time.Now()
		st.materials[id] = m
		applied = true
		return nil
	})
	return applied, err
}

// ── Productos ────────────────────────────────────────────────────────────────

type productRepo struct{ v view }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		for _, x := range st.products {
			if x.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.v.read(func(st *state) {
		if p, ok := st.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *productRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	r.v.read(func(st *state) {
		for _, p := range st.products {
			if p.SKU == sku {
				p := p
				out = &p
				return
			}
		}
	})
	return out, nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.ErrProductNotFound
		}
		upd := *p
		upd.CurrentStock = cur.CurrentStock
		st.products[p.ID] = upd
		return nil
	})
}

func (r *productRepo) Deactivate(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrProductNotFound
		}
		p.IsActive = false
		p.UpdatedAt = time.Now()
		st.products[id] = p
		return nil
	})
}

func (r *productRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var all []*entity.Product
	r.v.read(func(st *state) {
		for _, p := range st.products {
			if f.ActiveOnly && !p.IsActive {
				continue
			}
			if f.LowStock && p.CurrentStock.GreaterThan(p.MinStock) {
				continue
			}
			if !matches(f.Search, p.SKU, p.Name) {
				continue
			}
			p := p
			all = append(all, &p)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].SKU < all[j].SKU })
	from, to := page(len(all), f.Page)
	return all[from:to], nil
}

func (r *productRepo) IncrementStock(_ context.Context, id string, qty decimal.Decimal) error {
	return r.v.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrProductNotFound
		}
		p.CurrentStock = p.CurrentStock.Add(qty)
		p.UpdatedAt = time.Now()
		st.products[id] = p
		return nil
	})
}

func (r *productRepo) DecrementStock(_ context.Context, id string, qty decimal.Decimal) (bool, error) {
	applied := false
	err := r.v.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrProductNotFound
		}
		if p.CurrentStock.LessThan(qty) {
			return nil
		}
		p.CurrentStock = p.CurrentStock.Sub(qty)
		p.UpdatedAt = time.Now()
		st.products[id] = p
		applied = true
		return nil
	})
	return applied, err
}

// ── Proveedores y clientes ───────────────────────────────────────────────────

type supplierRepo struct{ v view }

func (r *supplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	return r.v.write(func(st *state) error {
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	r.v.read(func(st *state) {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
	})
	return out, nil
}

func (r *supplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.suppliers[s.ID]; !ok {
			return domain.ErrSupplierNotFound
		}
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *supplierRepo) List(_ context.Context, f repository.PartyFilter) ([]*entity.Supplier, error) {
	var all []*entity.Supplier
	r.v.read(func(st *state) {
		for _, s := range st.suppliers {
			if (f.ActiveOnly && !s.IsActive) || !matches(f.Search, s.Name, s.TaxID) {
				continue
			}
			s := s
			all = append(all, &s)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	from, to := page(len(all), f.Page)
	return all[from:to], nil
}

type customerRepo struct{ v view }

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.v.write(func(st *state) error {
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	r.v.read(func(st *state) {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *customerRepo) Update(_ context.Context, c *entity.Customer) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.customers[c.ID]; !ok {
			return domain.ErrCustomerNotFound
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *customerRepo) List(_ context.Context, f repository.PartyFilter) ([]*entity.Customer, error) {
	var all []*entity.Customer
	r.v.read(func(st *state) {
		for _, c := range st.customers {
			if (f.ActiveOnly && !c.IsActive) || !matches(f.Search, c.Name, c.TaxID) {
				continue
			}
			c := c
			all = append(all, &c)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	from, to := page(len(all), f.Page)
	return all[from:to], nil
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

type userRepo struct{ v view }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.write(func(st *state) error {
		for _, x := range st.users {
			if strings.EqualFold(x.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.v.read(func(st *state) {
		if u, ok := st.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.v.read(func(st *state) {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				u := u
				out = &u
				return
			}
		}
	})
	return out, nil
}
