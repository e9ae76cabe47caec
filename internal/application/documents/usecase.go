// Package documents arma la versión imprimible de las órdenes de compra y venta.
package documents

import (
	"context"
	"fmt"

	"github.com/jhoicas/textil-erp/internal/application/ports"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// UseCase resuelve nombres de proveedor/cliente y de cada ítem y delega el render.
type UseCase struct {
	repos    repository.Repos
	renderer ports.OrderPDFRenderer
	issuer   string
}

// NewUseCase construye el caso de uso; issuer es el nombre que encabeza el documento.
func NewUseCase(repos repository.Repos, renderer ports.OrderPDFRenderer, issuer string) *UseCase {
	return &UseCase{repos: repos, renderer: renderer, issuer: issuer}
}

// PurchaseOrderPDF genera el PDF de la orden de compra para enviar al proveedor.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrOrderNotFound    si la orden no existe.
func (uc *UseCase) PurchaseOrderPDF(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar orden ───────────────────────────────────────────────────────
	o, err := uc.repos.Purchases.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener orden: %w", err)
	}
	if o == nil {
		return nil, "", domain.ErrOrderNotFound
	}

	doc := ports.OrderDocument{
		Title:      "ORDEN DE COMPRA",
		Number:     o.OrderNumber,
		Status:     string(o.Status),
		Date:       o.OrderDate,
		DueLabel:   "Entrega esperada",
		DueDate:    o.ExpectedDate,
		PartyLabel: "PROVEEDOR",
		Total:      o.TotalAmount,
		Notes:      o.Notes,
		QRData:     o.OrderNumber + "|" + o.ID,
		IssuerName: uc.issuer,
	}

	// ── 2. Proveedor ──────────────────────────────────────────────────────────
	sup, err := uc.repos.Suppliers.GetByID(ctx, o.SupplierID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener proveedor: %w", err)
	}
	if sup != nil {
		doc.PartyName, doc.PartyTaxID, doc.PartyEmail, doc.PartyPhone = sup.Name, sup.TaxID, sup.Email, sup.Phone
	} else {
		doc.PartyName = "Proveedor " + o.SupplierID
	}

	// ── 3. Ítems con nombre de material ───────────────────────────────────────
	for _, it := range o.Items {
		line := ports.DocumentLine{
			Quantity:    it.Quantity,
			Description: "Material " + it.MaterialID, // fallback
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.TotalPrice,
		}
		if m, mErr := uc.repos.Materials.GetByID(ctx, it.MaterialID); mErr == nil && m != nil {
			line.Description = m.SKU + " · " + m.Name
			line.Unit = m.Unit
		}
		doc.Lines = append(doc.Lines, line)
	}

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.renderer.RenderOrder(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, "orden_compra_" + o.OrderNumber + ".pdf", nil
}

// SalesOrderPDF genera el PDF de la orden de venta (remisión para el cliente).
func (uc *UseCase) SalesOrderPDF(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	o, err := uc.repos.Sales.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener orden: %w", err)
	}
	if o == nil {
		return nil, "", domain.ErrOrderNotFound
	}

	doc := ports.OrderDocument{
		Title:      "ORDEN DE VENTA",
		Number:     o.OrderNumber,
		Status:     string(o.Status),
		Date:       o.OrderDate,
		DueLabel:   "Fecha de entrega",
		DueDate:    o.DeliveryDate,
		PartyLabel: "CLIENTE",
		Total:      o.TotalAmount,
		Notes:      o.Notes,
		QRData:     o.OrderNumber + "|" + o.ID,
		IssuerName: uc.issuer,
	}

	cust, err := uc.repos.Customers.GetByID(ctx, o.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if cust != nil {
		doc.PartyName, doc.PartyTaxID, doc.PartyEmail, doc.PartyPhone = cust.Name, cust.TaxID, cust.Email, cust.Phone
	} else {
		doc.PartyName = "Cliente " + o.CustomerID
	}

	for _, it := range o.Items {
		line := ports.DocumentLine{
			Quantity:    it.Quantity,
			Description: "Producto " + it.ProductID,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.TotalPrice,
		}
		if p, pErr := uc.repos.Products.GetByID(ctx, it.ProductID); pErr == nil && p != nil {
			line.Description = p.SKU + " · " + p.Name
			line.Unit = p.Unit
		}
		doc.Lines = append(doc.Lines, line)
	}

	pdfBytes, err = uc.renderer.RenderOrder(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, "orden_venta_" + o.OrderNumber + ".pdf", nil
}
