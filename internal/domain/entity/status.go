package entity

import "time"

// Valores por defecto de presentación para estados creados sin color/ícono.
const (
	DefaultStatusColor = "#6b7280"
	DefaultStatusIcon  = "circle"
	// FirstCustomSortOrder se asigna al primer estado de una empresa que aún no tiene ninguno.
	FirstCustomSortOrder = 100
)

// Status es un estado de remito definido por la empresa. No existe un enum global:
// cada tenant tiene su propio catálogo. (CompanyID, Name) es único.
type Status struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	Color       string
	Icon        string
	IsActive    bool
	IsDefault   bool // creado por el seed; no lo protege de edición ni borrado
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StatusSpec entrada declarativa de la plantilla de estados que se siembra en cada empresa nueva.
type StatusSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
	Icon        string `yaml:"icon"`
	SortOrder   int    `yaml:"sort_order"`
}

// DefaultStatusTemplate devuelve la plantilla base: Pendiente, Preparado, Entregado, Cancelado.
// Se devuelve una copia nueva en cada llamada para que nadie mute la plantilla compartida.
func DefaultStatusTemplate() []StatusSpec {
	return []StatusSpec{
		{Name: "Pendiente", Description: "Remito creado, pendiente de preparación", Color: "#f59e0b", Icon: "clock", SortOrder: 1},
		{Name: "Preparado", Description: "Mercadería preparada para despacho", Color: "#3b82f6", Icon: "package", SortOrder: 2},
		{Name: "Entregado", Description: "Mercadería entregada al cliente", Color: "#10b981", Icon: "check-circle", SortOrder: 3},
		{Name: "Cancelado", Description: "Remito anulado", Color: "#ef4444", Icon: "x-circle", SortOrder: 4},
	}
}
