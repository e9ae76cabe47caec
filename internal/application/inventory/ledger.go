// Package inventory contiene el libro de inventario de materiales: la única vía
// para modificar el stock de un Material, y el ajuste de stock de productos que
// usan las órdenes de venta y producción.
package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/application/ports"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/costing"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/order"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// MovementInput entrada para aplicar un movimiento al libro.
type MovementInput struct {
	MaterialID string
	Type       entity.MovementType
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	Reference  string
}

// Validate revisa las precondiciones que no dependen del almacenamiento.
func (in MovementInput) Validate() error {
	if in.MaterialID == "" {
		return domain.Invalid("material_id requerido")
	}
	if !in.Type.Valid() {
		return domain.Invalid("tipo de movimiento %q desconocido", in.Type)
	}
	if !in.Quantity.IsPositive() {
		return domain.Invalid("la cantidad debe ser mayor que cero")
	}
	if in.UnitCost.IsNegative() {
		return domain.Invalid("el costo unitario no puede ser negativo")
	}
	if err := domain.CheckScale("quantity", in.Quantity); err != nil {
		return err
	}
	if err := domain.CheckScale("unit_cost", in.UnitCost); err != nil {
		return err
	}
	return nil
}

// Ledger aplica movimientos de inventario de forma transaccional.
// Cada movimiento inserta una fila en inventory_movements y ajusta current_stock del material
// en la misma transacción; las salidas usan un UPDATE condicionado (stock >= cantidad).
type Ledger struct {
	repos   repository.Repos
	tx      repository.TxRunner
	metrics ports.LifecycleMetrics
	log     zerolog.Logger
}

// NewLedger construye el libro.
func NewLedger(repos repository.Repos, tx repository.TxRunner, metrics ports.LifecycleMetrics, log zerolog.Logger) *Ledger {
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &Ledger{repos: repos, tx: tx, metrics: metrics, log: log}
}

// ApplyMovement abre su propia transacción y aplica el movimiento.
func (l *Ledger) ApplyMovement(ctx context.Context, in MovementInput) (*entity.InventoryMovement, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var mv *entity.InventoryMovement
	err := l.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		mv, err = l.ApplyMovementInTx(ctx, r, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	l.metrics.MovementApplied(string(mv.Type))
	l.log.Info().
		Str("material_id", mv.MaterialID).
		Str("type", string(mv.Type)).
		Str("quantity", mv.Quantity.String()).
		Str("reference", mv.Reference).
		Msg("movimiento de inventario aplicado")
	return mv, nil
}

// ApplyMovementInTx aplica el movimiento con los repositorios de la transacción del caller.
// Si retorna error el caller debe abortar su transacción.
func (l *Ledger) ApplyMovementInTx(ctx context.Context, r repository.Repos, in MovementInput) (*entity.InventoryMovement, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	mat, err := r.Materials.GetByID(ctx, in.MaterialID)
	if err != nil {
		return nil, err
	}
	if mat == nil {
		return nil, domain.ErrMaterialNotFound
	}

	if in.Type.Inbound() {
		if in.Type == entity.MovementTypeIN && in.UnitCost.IsPositive() {
			if err := updateAverageCost(ctx, r, mat, in.Quantity, in.UnitCost); err != nil {
				return nil, err
			}
		}
		if err := r.Materials.IncrementStock(ctx, mat.ID, in.Quantity); err != nil {
			return nil, err
		}
	} else {
		ok, err := r.Materials.DecrementStock(ctx, mat.ID, in.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, l.materialShortage(ctx, r, mat, in.Quantity)
		}
	}

	mv := &entity.InventoryMovement{
		ID:         uuid.New().String(),
		MaterialID: mat.ID,
		Type:       in.Type,
		Quantity:   in.Quantity,
		UnitCost:   in.UnitCost,
		TotalCost:  order.LineTotal(in.Quantity, in.UnitCost),
		Reference:  in.Reference,
		CreatedAt:  time.Now(),
	}
	if err := r.Movements.Create(ctx, mv); err != nil {
		return nil, err
	}
	return mv, nil
}

// updateAverageCost recalcula cost_price con el promedio ponderado antes de sumar la entrada.
func updateAverageCost(ctx context.Context, r repository.Repos, mat *entity.Material, qty, unitCost decimal.Decimal) error {
	cost := costing.WeightedAverage(mat.CurrentStock, mat.CostPrice, qty, unitCost)
	if cost.Equal(mat.CostPrice) {
		return nil
	}
	upd := *mat
	upd.CostPrice = cost
	upd.UpdatedAt = time.Now()
	return r.Materials.Update(ctx, &upd)
}

// materialShortage relee el stock para informar lo disponible en el error.
func (l *Ledger) materialShortage(ctx context.Context, r repository.Repos, mat *entity.Material, requested decimal.Decimal) error {
	available := mat.CurrentStock
	if cur, err := r.Materials.GetByID(ctx, mat.ID); err == nil && cur != nil {
		available = cur.CurrentStock
	}
	return domain.NewInsufficientStock(mat.Name, requested, available)
}

// AdjustProductStock suma (delta > 0) o resta (delta < 0) stock de un producto sin fila en el libro.
// La resta es condicionada: nunca deja el stock negativo.
func AdjustProductStock(ctx context.Context, r repository.Repos, productID string, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	p, err := r.Products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrProductNotFound
	}
	if delta.IsPositive() {
		return r.Products.IncrementStock(ctx, productID, delta)
	}
	qty := delta.Neg()
	ok, err := r.Products.DecrementStock(ctx, productID, qty)
	if err != nil {
		return err
	}
	if !ok {
		available := p.CurrentStock
		if cur, err := r.Products.GetByID(ctx, productID); err == nil && cur != nil {
			available = cur.CurrentStock
		}
		return domain.NewInsufficientStock(p.Name, qty, available)
	}
	return nil
}

// ListMovements lista el libro con filtro tipado (solo lectura).
func (l *Ledger) ListMovements(ctx context.Context, f repository.MovementFilter) (*dto.MovementListResponse, error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, domain.Invalid("tipo de movimiento %q desconocido", f.Type)
	}
	f.Page = f.Page.Normalize()
	list, err := l.repos.Movements.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, mv := range list {
		items = append(items, ToMovementResponse(mv))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

// Check compara el stock del material con la suma con signo de su libro.
func (l *Ledger) Check(ctx context.Context, materialID string) (*dto.LedgerCheckResponse, error) {
	mat, err := l.repos.Materials.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if mat == nil {
		return nil, domain.ErrMaterialNotFound
	}
	sum, err := l.repos.Movements.SignedSum(ctx, materialID)
	if err != nil {
		return nil, err
	}
	consistent := sum.Equal(mat.CurrentStock)
	if !consistent {
		l.log.Warn().
			Str("material_id", materialID).
			Str("current_stock", mat.CurrentStock.String()).
			Str("ledger_sum", sum.String()).
			Msg("stock de material no coincide con el libro")
	}
	return &dto.LedgerCheckResponse{
		MaterialID:   materialID,
		CurrentStock: mat.CurrentStock,
		LedgerSum:    sum,
		Consistent:   consistent,
	}, nil
}

// ToMovementResponse convierte la entidad a DTO.
func ToMovementResponse(mv *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:         mv.ID,
		MaterialID: mv.MaterialID,
		Type:       string(mv.Type),
		Quantity:   mv.Quantity,
		UnitCost:   mv.UnitCost,
		TotalCost:  mv.TotalCost,
		Reference:  mv.Reference,
		CreatedAt:  mv.CreatedAt,
	}
}

// IsShortage indica si err es un faltante de stock.
func IsShortage(err error) bool {
	return errors.Is(err, domain.ErrInsufficientStock)
}
