// Package sales implementa el ciclo de vida de las órdenes de venta.
// El stock de producto se valida al crear (sin reservar) y se descuenta al entregar.
package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/application/inventory"
	"github.com/jhoicas/textil-erp/internal/application/ports"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/order"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// UseCase casos de uso de órdenes de venta.
type UseCase struct {
	repos   repository.Repos
	tx      repository.TxRunner
	events  ports.EventPublisher
	metrics ports.LifecycleMetrics
	log     zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	repos repository.Repos,
	tx repository.TxRunner,
	events ports.EventPublisher,
	metrics ports.LifecycleMetrics,
	log zerolog.Logger,
) *UseCase {
	if events == nil {
		events = ports.NoopPublisher{}
	}
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &UseCase{repos: repos, tx: tx, events: events, metrics: metrics, log: log}
}

// Create valida cliente y stock de cada producto y registra la orden en PENDING (OV-).
// El stock no se reserva: dos órdenes pueden pasar la validación sobre el mismo stock.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateSalesOrderRequest) (*dto.SalesOrderResponse, error) {
	if in.CustomerID == "" {
		return nil, domain.Invalid("customer_id requerido")
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}

	var created *entity.SalesOrder
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		cust, err := r.Customers.GetByID(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if cust == nil {
			return domain.ErrCustomerNotFound
		}
		if err := checkStock(ctx, r, in.Items); err != nil {
			return err
		}
		n, err := r.Sequences.Next(ctx, repository.SeqSales)
		if err != nil {
			return err
		}
		now := time.Now()
		o := &entity.SalesOrder{
			ID:           uuid.New().String(),
			OrderNumber:  order.FormatNumber(repository.SeqSales, n),
			CustomerID:   in.CustomerID,
			UserID:       userID,
			Status:       entity.SalesStatusPending,
			OrderDate:    now,
			DeliveryDate: in.DeliveryDate,
			Notes:        in.Notes,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		o.Items, o.TotalAmount = buildItems(o.ID, in.Items)
		if err := r.Sales.Create(ctx, o); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		if inventory.IsShortage(err) {
			uc.metrics.StockRejected(ports.OrderTypeSales)
		}
		return nil, err
	}
	uc.log.Info().Str("order_number", created.OrderNumber).Str("total", created.TotalAmount.String()).Msg("orden de venta creada")
	return ToResponse(created), nil
}

// UpdateStatus aplica la transición. DELIVERED revalida y descuenta stock de cada producto
// en una sola transacción; repetirla no hace nada.
func (uc *UseCase) UpdateStatus(ctx context.Context, userID, id string, in dto.UpdateSalesStatusRequest) (*dto.SalesOrderResponse, error) {
	to := entity.SalesStatus(in.Status)
	var (
		result  *entity.SalesOrder
		from    entity.SalesStatus
		changed bool
	)
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		o, err := r.Sales.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrOrderNotFound
		}
		tr, err := order.SalesMachine.Next(o.Status, to)
		if err != nil {
			return err
		}
		result = o
		if tr.NoOp {
			return nil
		}
		if tr.Has(order.EffectDeliverStock) {
			if err := deliver(ctx, r, o); err != nil {
				return err
			}
		}
		from = o.Status
		o.Status = to
		o.UpdatedAt = time.Now()
		changed = true
		return r.Sales.Update(ctx, o)
	})
	if err != nil {
		if inventory.IsShortage(err) {
			uc.metrics.StockRejected(ports.OrderTypeSales)
		}
		return nil, err
	}
	if changed {
		uc.metrics.StatusTransition(ports.OrderTypeSales, string(from), string(result.Status))
		uc.log.Info().
			Str("order_number", result.OrderNumber).
			Str("from", string(from)).
			Str("to", string(result.Status)).
			Msg("orden de venta cambió de estado")
		ports.PublishBestEffort(ctx, uc.events, uc.log, ports.OrderStatusChanged{
			OrderType:   ports.OrderTypeSales,
			OrderID:     result.ID,
			OrderNumber: result.OrderNumber,
			From:        string(from),
			To:          string(result.Status),
			UserID:      userID,
			At:          result.UpdatedAt,
		})
	}
	return ToResponse(result), nil
}

// deliver revalida todos los ítems y luego descuenta con UPDATE condicionado.
func deliver(ctx context.Context, r repository.Repos, o *entity.SalesOrder) error {
	for _, it := range o.Items {
		p, err := r.Products.GetByID(ctx, it.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		if p.CurrentStock.LessThan(it.Quantity) {
			return domain.NewInsufficientStock(p.Name, it.Quantity, p.CurrentStock)
		}
	}
	for _, it := range o.Items {
		if err := inventory.AdjustProductStock(ctx, r, it.ProductID, it.Quantity.Neg()); err != nil {
			return err
		}
	}
	return nil
}

// Update reemplaza ítems, revalida stock y recalcula el total. Rechazado si ya fue entregada.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateSalesOrderRequest) (*dto.SalesOrderResponse, error) {
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}
	var result *entity.SalesOrder
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		o, err := r.Sales.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrOrderNotFound
		}
		if o.Locked() {
			return domain.ErrOrderLocked
		}
		if err := checkStock(ctx, r, in.Items); err != nil {
			return err
		}
		o.Items, o.TotalAmount = buildItems(o.ID, in.Items)
		if in.DeliveryDate != nil {
			o.DeliveryDate = in.DeliveryDate
		}
		if in.Notes != nil {
			o.Notes = *in.Notes
		}
		o.UpdatedAt = time.Now()
		if err := r.Sales.ReplaceItems(ctx, o.ID, o.Items); err != nil {
			return err
		}
		result = o
		return r.Sales.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return ToResponse(result), nil
}

// Delete elimina la orden. Rechazado si ya fue entregada.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		o, err := r.Sales.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrOrderNotFound
		}
		if o.Locked() {
			return domain.ErrOrderLocked
		}
		return r.Sales.Delete(ctx, id)
	})
}

// Get obtiene la orden con sus ítems.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.SalesOrderResponse, error) {
	o, err := uc.repos.Sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	return ToResponse(o), nil
}

// List lista órdenes con filtro tipado.
func (uc *UseCase) List(ctx context.Context, f repository.SalesOrderFilter) (*dto.SalesOrderListResponse, error) {
	f.Page = f.Page.Normalize()
	list, err := uc.repos.Sales.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SalesOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *ToResponse(o))
	}
	return &dto.SalesOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}
