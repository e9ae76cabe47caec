package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// SupplierUseCase alta y consulta de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor activo.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if in.Name == "" {
		return nil, domain.Invalid("name requerido")
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toPartyResponse(s.ID, s.Name, s.TaxID, s.Email, s.Phone, s.IsActive, s.CreatedAt, s.UpdatedAt), nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.PartyResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrSupplierNotFound
	}
	return toPartyResponse(s.ID, s.Name, s.TaxID, s.Email, s.Phone, s.IsActive, s.CreatedAt, s.UpdatedAt), nil
}

// List lista proveedores.
func (uc *SupplierUseCase) List(ctx context.Context, f repository.PartyFilter) (*dto.PartyListResponse, error) {
	f.Page = f.Page.Normalize()
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartyResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toPartyResponse(s.ID, s.Name, s.TaxID, s.Email, s.Phone, s.IsActive, s.CreatedAt, s.UpdatedAt))
	}
	return &dto.PartyListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

// CustomerUseCase alta y consulta de clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente activo.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if in.Name == "" {
		return nil, domain.Invalid("name requerido")
	}
	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toPartyResponse(c.ID, c.Name, c.TaxID, c.Email, c.Phone, c.IsActive, c.CreatedAt, c.UpdatedAt), nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.PartyResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return toPartyResponse(c.ID, c.Name, c.TaxID, c.Email, c.Phone, c.IsActive, c.CreatedAt, c.UpdatedAt), nil
}

// List lista clientes.
func (uc *CustomerUseCase) List(ctx context.Context, f repository.PartyFilter) (*dto.PartyListResponse, error) {
	f.Page = f.Page.Normalize()
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toPartyResponse(c.ID, c.Name, c.TaxID, c.Email, c.Phone, c.IsActive, c.CreatedAt, c.UpdatedAt))
	}
	return &dto.PartyListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

func toPartyResponse(id, name, taxID, email, phone string, active bool, created, updated time.Time) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:        id,
		Name:      name,
		TaxID:     taxID,
		Email:     email,
		Phone:     phone,
		IsActive:  active,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}
