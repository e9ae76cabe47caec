// Package production implementa el ciclo de vida de las órdenes de producción.
// Al completar, los insumos salen del libro de inventario y las salidas suman stock de producto,
// todo en una sola transacción.
package production

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

// UseCase casos de uso de órdenes de producción.
type UseCase struct {
	repos   repository.Repos
	tx      repository.TxRunner
	ledger  *inventory.Ledger
	events  ports.EventPublisher
	metrics ports.LifecycleMetrics
	log     zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	repos repository.Repos,
	tx repository.TxRunner,
	ledger *inventory.Ledger,
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
	return &UseCase{repos: repos, tx: tx, ledger: ledger, events: events, metrics: metrics, log: log}
}

// Create valida la orden de venta opcional, la forma de cada ítem y el stock de los insumos,
// y registra la orden en PENDING (OP-).
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	priority := entity.PriorityNormal
	if in.Priority != "" {
		priority = entity.Priority(in.Priority)
	}
	if !priority.Valid() {
		return nil, domain.Invalid("prioridad %q desconocida", in.Priority)
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, domain.Invalid("end_date anterior a start_date")
	}

	var created *entity.ProductionOrder
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		if in.SalesOrderID != nil {
			so, err := r.Sales.GetByID(ctx, *in.SalesOrderID)
			if err != nil {
				return err
			}
			if so == nil {
				return domain.ErrOrderNotFound
			}
		}
		if err := checkItems(ctx, r, in.Items); err != nil {
			return err
		}
		n, err := r.Sequences.Next(ctx, repository.SeqProduction)
		if err != nil {
			return err
		}
		now := time.Now()
		o := &entity.ProductionOrder{
			ID:           uuid.New().String(),
			OrderNumber:  order.FormatNumber(repository.SeqProduction, n),
			SalesOrderID: in.SalesOrderID,
			UserID:       userID,
			Priority:     priority,
			Status:       entity.ProductionStatusPending,
			StartDate:    in.StartDate,
			EndDate:      in.EndDate,
			Notes:        in.Notes,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		o.Items, o.TotalCost = buildItems(o.ID, in.Items)
		if err := r.Production.Create(ctx, o); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		if inventory.IsShortage(err) {
			uc.metrics.StockRejected(ports.OrderTypeProduction)
		}
		return nil, err
	}
	uc.log.Info().Str("order_number", created.OrderNumber).Str("priority", string(created.Priority)).Msg("orden de producción creada")
	return ToResponse(created), nil
}

// UpdateStatus aplica la transición. COMPLETED consume insumos (OUT en el libro) y suma salidas;
// cualquier faltante aborta la completación entera. Repetirla no hace nada.
func (uc *UseCase) UpdateStatus(ctx context.Context, userID, id string, in dto.UpdateProductionStatusRequest) (*dto.ProductionOrderResponse, error) {
	to := entity.ProductionStatus(in.Status)
	var (
		result  *entity.ProductionOrder
		from    entity.ProductionStatus
		changed bool
	)
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		o, err := r.Production.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrOrderNotFound
		}
		tr, err := order.ProductionMachine.Next(o.Status, to)
		if err != nil {
			return err
		}
		result = o
		if tr.NoOp {
			return nil
		}
		now := time.Now()
		for _, eff := range tr.Effects {
			if err := uc.apply(ctx, r, o, eff, now); err != nil {
				return err
			}
		}
		from = o.Status
		o.Status = to
		o.UpdatedAt = now
		changed = true
		return r.Production.Update(ctx, o)
	})
	if err != nil {
		if inventory.IsShortage(err) {
			uc.metrics.StockRejected(ports.OrderTypeProduction)
		}
		return nil, err
	}
	if changed {
		uc.afterTransition(ctx, userID, result, from)
	}
	return ToResponse(result), nil
}

func (uc *UseCase) apply(ctx context.Context, r repository.Repos, o *entity.ProductionOrder, eff order.Effect, now time.Time) error {
	switch eff {
	case order.EffectStampStartDate:
		if o.StartDate == nil {
			o.StartDate = &now
		}
	case order.EffectConsumeInputs:
		for _, it := range o.Inputs() {
			if _, err := uc.ledger.ApplyMovementInTx(ctx, r, inventory.MovementInput{
				MaterialID: *it.MaterialID,
				Type:       entity.MovementTypeOUT,
				Quantity:   it.Quantity,
				UnitCost:   it.UnitCost,
				Reference:  o.OrderNumber,
			}); err != nil {
				return err
			}
		}
	case order.EffectProduceOutputs:
		for _, it := range o.Outputs() {
			if err := inventory.AdjustProductStock(ctx, r, *it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
	case order.EffectStampCompletion:
		if o.EndDate == nil {
			o.EndDate = &now
		}
		if o.CompletedDate == nil {
			o.CompletedDate = &now
		}
	}
	return nil
}

func (uc *UseCase) afterTransition(ctx context.Context, userID string, o *entity.ProductionOrder, from entity.ProductionStatus) {
	uc.metrics.StatusTransition(ports.OrderTypeProduction, string(from), string(o.Status))
	if o.Status == entity.ProductionStatusCompleted {
		for range o.Inputs() {
			uc.metrics.MovementApplied(string(entity.MovementTypeOUT))
		}
	}
	uc.log.Info().
		Str("order_number", o.OrderNumber).
		Str("from", string(from)).
		Str("to", string(o.Status)).
		Msg("orden de producción cambió de estado")
	ports.PublishBestEffort(ctx, uc.events, uc.log, ports.OrderStatusChanged{
		OrderType:   ports.OrderTypeProduction,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		From:        string(from),
		To:          string(o.Status),
		UserID:      userID,
		At:          o.UpdatedAt,
	})
}

// Update reemplaza ítems y campos de cabecera. Rechazado si la orden ya fue completada.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	if in.Priority != nil && !entity.Priority(*in.Priority).Valid() {
		return nil, domain.Invalid("prioridad %q desconocida", *in.Priority)
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}
	var result *entity.ProductionOrder
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		o, err := r.Production.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrOrderNotFound
		}
		if o.Locked() {
			return domain.ErrOrderLocked
		}
		if err := checkItems(ctx, r, in.Items); err != nil {
			return err
		}
		o.Items, o.TotalCost = buildItems(o.ID, in.Items)
		if in.Priority != nil {
			o.Priority = entity.Priority(*in.Priority)
		}
		if in.StartDate != nil {
			o.StartDate = in.StartDate
		}
		if in.EndDate != nil {
			o.EndDate = in.EndDate
		}
		if in.Notes != nil {
			o.Notes = *in.Notes
		}
		o.UpdatedAt = time.Now()
		if err := r.Production.ReplaceItems(ctx, o.ID, o.Items); err != nil {
			return err
		}
		result = o
		return r.Production.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return ToResponse(result), nil
}

// Delete elimina la orden. Rechazado si ya fue completada.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		o, err := r.Production.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrOrderNotFound
		}
		if o.Locked() {
			return domain.ErrOrderLocked
		}
		return r.Production.Delete(ctx, id)
	})
}

// Get obtiene la orden con sus ítems.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ProductionOrderResponse, error) {
	o, err := uc.repos.Production.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	return ToResponse(o), nil
}

// List lista órdenes con filtro tipado.
func (uc *UseCase) List(ctx context.Context, f repository.ProductionOrderFilter) (*dto.ProductionOrderListResponse, error) {
	f.Page = f.Page.Normalize()
	list, err := uc.repos.Production.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductionOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *ToResponse(o))
	}
	return &dto.ProductionOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}
