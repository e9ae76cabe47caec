// Package memory implementa los repositorios en memoria. Una transacción toma el
// candado global, trabaja sobre el estado y lo restaura desde una copia si falla.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

type state struct {
	materials  map[string]entity.Material
	products   map[string]entity.Product
	movements  []entity.InventoryMovement
	purchases  map[string]entity.PurchaseOrder
	sales      map[string]entity.SalesOrder
	production map[string]entity.ProductionOrder
	suppliers  map[string]entity.Supplier
	customers  map[string]entity.Customer
	users      map[string]entity.User
	sequences  map[string]int64
}

func newState() *state {
	return &state{
		materials:  map[string]entity.Material{},
		products:   map[string]entity.Product{},
		purchases:  map[string]entity.PurchaseOrder{},
		sales:      map[string]entity.SalesOrder{},
		production: map[string]entity.ProductionOrder{},
		suppliers:  map[string]entity.Supplier{},
		customers:  map[string]entity.Customer{},
		users:      map[string]entity.User{},
		sequences:  map[string]int64{},
	}
}

// clone copia el estado; los ítems de las órdenes se copian al guardarse, así que basta copiar mapas.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.materials {
		c.materials[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	c.movements = append([]entity.InventoryMovement(nil), s.movements...)
	for k, v := range s.purchases {
		c.purchases[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.production {
		c.production[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	return c
}

// Store almacenamiento en memoria; implementa repository.TxRunner.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Repos devuelve repositorios fuera de transacción (cada llamada toma el candado).
func (s *Store) Repos() repository.Repos {
	return reposFor(view{s: s})
}

// Run serializa fn con el resto de transacciones. Si fn falla (o entra en pánico) el estado vuelve
// a la copia tomada al inicio.
func (s *Store) Run(ctx context.Context, fn func(r repository.Repos) error) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	defer func() {
		if p := recover(); p != nil {
			s.st = snapshot
			panic(p)
		}
		if err != nil {
			s.st = snapshot
		}
	}()
	return fn(reposFor(view{s: s, tx: true}))
}

func reposFor(v view) repository.Repos {
	return repository.Repos{
		Materials:  &materialRepo{v},
		Products:   &productRepo{v},
		Movements:  &movementRepo{v},
		Purchases:  &purchaseRepo{v},
		Sales:      &salesRepo{v},
		Production: &productionRepo{v},
		Suppliers:  &supplierRepo{v},
		Customers:  &customerRepo{v},
		Users:      &userRepo{v},
		Sequences:  &sequenceRepo{v},
	}
}

// view da acceso al estado; dentro de Run el candado ya está tomado.
type view struct {
	s  *Store
	tx bool
}

func (v view) read(fn func(st *state)) {
	if !v.tx {
		v.s.mu.Lock()
		defer v.s.mu.Unlock()
	}
	fn(v.s.st)
}

func (v view) write(fn func(st *state) error) error {
	if !v.tx {
		v.s.mu.Lock()
		defer v.s.mu.Unlock()
	}
	return fn(v.s.st)
}

func page(n int, p repository.Page) (int, int) {
	p = p.Normalize()
	if p.Offset >= n {
		return n, n
	}
	end := p.Offset + p.Limit
	if end > n {
		end = n
	}
	return p.Offset, end
}
