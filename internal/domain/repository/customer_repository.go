package repository

import (
	"context"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, c *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	Update(ctx context.Context, c *entity.Customer) error
	List(ctx context.Context, f PartyFilter) ([]*entity.Customer, error)
}
