package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Remito nota de entrega. CompanyID es inmutable tras la creación y StatusID siempre
// referencia un Status activo de la misma empresa; solo el motor de transiciones lo modifica.
type Remito struct {
	ID        string
	CompanyID string
	Number    int64 // secuencial por empresa
	ClientID  string
	StatusID  string
	StatusAt  time.Time
	Notes     string
	Total     decimal.Decimal
	Items     []RemitoItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RemitoItem línea del remito. LineTotal se congela al momento de la venta.
type RemitoItem struct {
	ID        string
	RemitoID  string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// NewRemitoItem calcula el total de línea (cantidad × precio unitario).
func NewRemitoItem(id, remitoID, productID string, qty, unitPrice decimal.Decimal) RemitoItem {
	return RemitoItem{
		ID:        id,
		RemitoID:  remitoID,
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: unitPrice,
		LineTotal: qty.Mul(unitPrice),
	}
}

// RemitoActivity proyección mínima que usa el dashboard para agrupar remitos.
type RemitoActivity struct {
	ID        string
	StatusID  string
	CreatedAt time.Time
}
