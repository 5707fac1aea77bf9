package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardRequest parámetros de GET /api/dashboard.
type DashboardRequest struct {
	CompanyID      string `query:"companyId"`
	ProductsPeriod string `query:"productsPeriod"` // hoy | ayer | esta_semana | este_mes | siempre
}

// DashboardResponse agregado operativo del dashboard.
// Es derivado y de solo lectura: puede cachearse unos segundos sin invalidación.
type DashboardResponse struct {
	TotalRemitos   int              `json:"total_remitos"`
	TodayRemitos   int              `json:"today_remitos"`
	ByStatus       []StatusCountDTO `json:"by_status"`
	ByDay          []DayCountDTO    `json:"by_day"` // 30 días, ascendente, hoy al final
	Counts         EntityCountsDTO  `json:"counts"`
	TopProducts    []TopProductDTO  `json:"top_products"`
	ProductsPeriod string           `json:"products_period"`
	GeneratedAt    time.Time        `json:"generated_at"`

	// Degraded lista las ramas que fallaron y se devolvieron en cero/vacío.
	Degraded []string `json:"degraded"`
}

// StatusCountDTO cantidad de remitos por estado.
type StatusCountDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

// DayCountDTO cantidad de remitos creados en un día calendario.
type DayCountDTO struct {
	Date  string `json:"date"`  // YYYY-MM-DD
	Label string `json:"label"` // dd/mm
	Count int    `json:"count"`
}

// EntityCounts conteos de entidades de referencia.
type EntityCounts struct {
	Clients            int `json:"clients"`
	Products           int `json:"products"`
	ProductsInStock    int `json:"products_in_stock"`
	ProductsOutOfStock int `json:"products_out_of_stock"`
	Categories         int `json:"categories"`
	Users              int `json:"users"`
}

// EntityCountsDTO conteos totales y los creados hoy.
type EntityCountsDTO struct {
	EntityCounts
	Today EntityCounts `json:"today"`
}

// TopProductDTO producto del ranking de más vendidos.
type TopProductDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
}
