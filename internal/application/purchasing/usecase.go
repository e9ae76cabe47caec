// Package purchasing implementa el ciclo de vida de las órdenes de compra.
// Al pasar a RECEIVED cada ítem entra al libro de inventario como movimiento IN.
package purchasing

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

// UseCase casos de uso de órdenes de compra.
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

// Create registra la orden en PENDING con el siguiente número OC-.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.SupplierID == "" {
		return nil, domain.Invalid("supplier_id requerido")
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}

	var created *entity.PurchaseOrder
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		sup, err := r.Suppliers.GetByID(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if sup == nil {
			return domain.ErrSupplierNotFound
		}
		if err := checkMaterials(ctx, r, in.Items); err != nil {
			return err
		}
		n, err := r.Sequences.Next(ctx, repository.SeqPurchase)
		if err != nil {
			return err
		}
		now := time.Now()
		o := &entity.PurchaseOrder{
			ID:           uuid.New().String(),
			OrderNumber:  order.FormatNumber(repository.SeqPurchase, n),
			SupplierID:   in.SupplierID,
			UserID:       userID,
			Status:       entity.PurchaseStatusPending,
			OrderDate:    now,
			ExpectedDate: in.ExpectedDate,
			Notes:        in.Notes,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		o.Items, o.TotalAmount = buildItems(o.ID, in.Items)
		if err := r.Purchases.Create(ctx, o); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_number", created.OrderNumber).Str("total", created.TotalAmount.String()).Msg("orden de compra creada")
	return ToResponse(created), nil
}

// UpdateStatus aplica la transición. RECEIVED suma stock una sola vez; repetirla no hace nada.
func (uc *UseCase) UpdateStatus(ctx context.Context, userID, id string, in dto.UpdatePurchaseStatusRequest) (*dto.PurchaseOrderResponse, error) {
	to := entity.PurchaseStatus(in.Status)
	var (
		result  *entity.PurchaseOrder
		from    entity.PurchaseStatus
		changed bool
	)
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		o, err := r.Purchases.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrOrderNotFound
		}
		tr, err := order.PurchaseMachine.Next(o.Status, to)
		if err != nil {
			return err
		}
		result = o
		if tr.NoOp {
			return nil
		}
		now := time.Now()
		for _, eff := range tr.Effects {
			switch eff {
			case order.EffectReceiveStock:
				for _, it := range o.Items {
					if _, err := uc.ledger.ApplyMovementInTx(ctx, r, inventory.MovementInput{
						MaterialID: it.MaterialID,
						Type:       entity.MovementTypeIN,
						Quantity:   it.Quantity,
						UnitCost:   it.UnitPrice,
						Reference:  o.OrderNumber,
					}); err != nil {
						return err
					}
				}
			case order.EffectStampReceivedDate:
				received := now
				if in.ReceivedDate != nil {
					received = *in.ReceivedDate
				}
				o.ReceivedDate = &received
			}
		}
		from = o.Status
		o.Status = to
		o.UpdatedAt = now
		changed = true
		return r.Purchases.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	if changed {
		uc.afterTransition(ctx, userID, result, from)
	}
	return ToResponse(result), nil
}

func (uc *UseCase) afterTransition(ctx context.Context, userID string, o *entity.PurchaseOrder, from entity.PurchaseStatus) {
	uc.metrics.StatusTransition(ports.OrderTypePurchase, string(from), string(o.Status))
	if o.Status == entity.PurchaseStatusReceived {
		for range o.Items {
			uc.metrics.MovementApplied(string(entity.MovementTypeIN))
		}
	}
	uc.log.Info().
		Str("order_number", o.OrderNumber).
		Str("from", string(from)).
		Str("to", string(o.Status)).
		Msg("orden de compra cambió de estado")
	ports.PublishBestEffort(ctx, uc.events, uc.log, ports.OrderStatusChanged{
		OrderType:   ports.OrderTypePurchase,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		From:        string(from),
		To:          string(o.Status),
		UserID:      userID,
		At:          o.UpdatedAt,
	})
}

// Update reemplaza ítems y recalcula el total. Rechazado si la orden ya fue recibida.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}
	var result *entity.PurchaseOrder
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		o, err := r.Purchases.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrOrderNotFound
		}
		if o.Locked() {
			return domain.ErrOrderLocked
		}
		if err := checkMaterials(ctx, r, in.Items); err != nil {
			return err
		}
		o.Items, o.TotalAmount = buildItems(o.ID, in.Items)
		if in.ExpectedDate != nil {
			o.ExpectedDate = in.ExpectedDate
		}
		if in.Notes != nil {
			o.Notes = *in.Notes
		}
		o.UpdatedAt = time.Now()
		if err := r.Purchases.ReplaceItems(ctx, o.ID, o.Items); err != nil {
			return err
		}
		result = o
		return r.Purchases.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return ToResponse(result), nil
}

// Delete elimina la orden y sus ítems. Rechazado si la orden ya fue recibida.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		o, err := r.Purchases.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrOrderNotFound
		}
		if o.Locked() {
			return domain.ErrOrderLocked
		}
		return r.Purchases.Delete(ctx, id)
	})
}

// Get obtiene la orden con sus ítems.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	o, err := uc.repos.Purchases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	return ToResponse(o), nil
}

// List lista órdenes con filtro tipado.
func (uc *UseCase) List(ctx context.Context, f repository.PurchaseOrderFilter) (*dto.PurchaseOrderListResponse, error) {
	f.Page = f.Page.Normalize()
	list, err := uc.repos.Purchases.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *ToResponse(o))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}
