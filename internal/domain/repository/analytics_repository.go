package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/remitos-api/internal/domain/entity"
)

// CountKind entidad que el dashboard cuenta.
type CountKind string

const (
	CountClients            CountKind = "clients"
	CountProducts           CountKind = "products"
	CountProductsInStock    CountKind = "products_in_stock"
	CountProductsOutOfStock CountKind = "products_out_of_stock"
	CountCategories         CountKind = "categories"
	CountUsers              CountKind = "users"
)

// CountKinds todas las entidades que cuenta el dashboard, en orden estable.
var CountKinds = []CountKind{
	CountClients, CountProducts, CountProductsInStock, CountProductsOutOfStock, CountCategories, CountUsers,
}

// TopProductResult fila cruda del ranking de productos más vendidos.
type TopProductResult struct {
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para el dashboard.
// En todos los métodos companyID vacío significa "todas las empresas" (lo decide la capa tenant).
type AnalyticsRepository interface {
	// ListRemitoActivity devuelve (id, status_id, created_at) de los remitos, created_at DESC.
	ListRemitoActivity(ctx context.Context, companyID string) ([]entity.RemitoActivity, error)

	// CountEntities cuenta filas de kind; since != nil restringe a created_at >= since.
	CountEntities(ctx context.Context, kind CountKind, companyID string, since *time.Time) (int, error)

	// GetTopProducts suma cantidades vendidas por producto (remitos con created_at >= since si
	// since != nil), ordenadas de mayor a menor, como máximo limit filas.
	GetTopProducts(ctx context.Context, companyID string, since *time.Time, limit int) ([]TopProductResult, error)
}
