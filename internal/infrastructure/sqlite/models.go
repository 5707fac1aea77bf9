package sqlite

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/remitos-api/internal/domain/entity"
)

// Modelos gorm. Los nombres de tabla y columna coinciden con el esquema PostgreSQL.

type companyModel struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null;uniqueIndex"`
	Status    string `gorm:"not null;default:active"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (companyModel) TableName() string { return "companies" }

type userModel struct {
	ID        string `gorm:"primaryKey"`
	CompanyID string `gorm:"index"`
	Email     string `gorm:"not null;uniqueIndex"`
	Name      string
	Role      string `gorm:"not null"`
	CreatedAt time.Time
}

func (userModel) TableName() string { return "users" }

type categoryModel struct {
	ID        string `gorm:"primaryKey"`
	CompanyID string `gorm:"not null;uniqueIndex:ux_categories_company_name"`
	Name      string `gorm:"not null;uniqueIndex:ux_categories_company_name"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (categoryModel) TableName() string { return "categories" }

type productModel struct {
	ID         string          `gorm:"primaryKey"`
	CompanyID  string          `gorm:"not null;index"`
	CategoryID string          `gorm:"index"`
	Name       string          `gorm:"not null"`
	Price      decimal.Decimal `gorm:"type:numeric;not null"`
	Stock      decimal.Decimal `gorm:"type:numeric;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (productModel) TableName() string { return "products" }

type clientModel struct {
	ID        string `gorm:"primaryKey"`
	CompanyID string `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	TaxID     string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (clientModel) TableName() string { return "clients" }

type statusModel struct {
	ID          string `gorm:"primaryKey"`
	CompanyID   string `gorm:"not null;uniqueIndex:ux_remito_statuses_company_name"`
	Name        string `gorm:"not null;uniqueIndex:ux_remito_statuses_company_name"`
	Description string
	Color       string
	Icon        string
	IsActive    bool `gorm:"not null"`
	IsDefault   bool `gorm:"not null"`
	SortOrder   int  `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (statusModel) TableName() string { return "remito_statuses" }

type remitoModel struct {
	ID        string          `gorm:"primaryKey"`
	CompanyID string          `gorm:"not null;uniqueIndex:ux_remitos_company_number;index:idx_remitos_company_created"`
	Number    int64           `gorm:"not null;uniqueIndex:ux_remitos_company_number"`
	ClientID  string          `gorm:"not null"`
	StatusID  string          `gorm:"not null;index"`
	StatusAt  time.Time       `gorm:"not null"`
	Notes     string
	Total     decimal.Decimal `gorm:"type:numeric;not null"`
	CreatedAt time.Time       `gorm:"index:idx_remitos_company_created"`
	UpdatedAt time.Time
}

func (remitoModel) TableName() string { return "remitos" }

type remitoItemModel struct {
	ID        string          `gorm:"primaryKey"`
	RemitoID  string          `gorm:"not null;index"`
	ProductID string          `gorm:"not null;index"`
	Quantity  decimal.Decimal `gorm:"type:numeric;not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric;not null"`
	LineTotal decimal.Decimal `gorm:"type:numeric;not null"`
}

func (remitoItemModel) TableName() string { return "remito_items" }

func allModels() []any {
	return []any{
		&companyModel{}, &userModel{}, &categoryModel{}, &productModel{},
		&clientModel{}, &statusModel{}, &remitoModel{}, &remitoItemModel{},
	}
}

// ── conversiones ────────────────────────────────────────────────────────────

func companyFromEntity(c *entity.Company) *companyModel {
	return &companyModel{ID: c.ID, Name: c.Name, Status: c.Status, CreatedAt: utc(c.CreatedAt), UpdatedAt: utc(c.UpdatedAt)}
}

func (m *companyModel) toEntity() *entity.Company {
	return &entity.Company{ID: m.ID, Name: m.Name, Status: m.Status, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

func userFromEntity(u *entity.User) *userModel {
	return &userModel{ID: u.ID, CompanyID: u.CompanyID, Email: u.Email, Name: u.Name, Role: u.Role, CreatedAt: utc(u.CreatedAt)}
}

func categoryFromEntity(c *entity.Category) *categoryModel {
	return &categoryModel{ID: c.ID, CompanyID: c.CompanyID, Name: c.Name, CreatedAt: utc(c.CreatedAt), UpdatedAt: utc(c.UpdatedAt)}
}

func (m *categoryModel) toEntity() *entity.Category {
	return &entity.Category{ID: m.ID, CompanyID: m.CompanyID, Name: m.Name, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

func productFromEntity(p *entity.Product) *productModel {
	return &productModel{
		ID: p.ID, CompanyID: p.CompanyID, CategoryID: p.CategoryID, Name: p.Name,
		Price: p.Price, Stock: p.Stock, CreatedAt: utc(p.CreatedAt), UpdatedAt: utc(p.UpdatedAt),
	}
}

func (m *productModel) toEntity() *entity.Product {
	return &entity.Product{
		ID: m.ID, CompanyID: m.CompanyID, CategoryID: m.CategoryID, Name: m.Name,
		Price: m.Price, Stock: m.Stock, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func clientFromEntity(c *entity.Client) *clientModel {
	return &clientModel{
		ID: c.ID, CompanyID: c.CompanyID, Name: c.Name, TaxID: c.TaxID, Email: c.Email, Phone: c.Phone,
		CreatedAt: utc(c.CreatedAt), UpdatedAt: utc(c.UpdatedAt),
	}
}

func (m *clientModel) toEntity() *entity.Client {
	return &entity.Client{
		ID: m.ID, CompanyID: m.CompanyID, Name: m.Name, TaxID: m.TaxID, Email: m.Email, Phone: m.Phone,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func statusFromEntity(s *entity.Status) *statusModel {
	return &statusModel{
		ID: s.ID, CompanyID: s.CompanyID, Name: s.Name, Description: s.Description,
		Color: s.Color, Icon: s.Icon, IsActive: s.IsActive, IsDefault: s.IsDefault, SortOrder: s.SortOrder,
		CreatedAt: utc(s.CreatedAt), UpdatedAt: utc(s.UpdatedAt),
	}
}

func (m *statusModel) toEntity() *entity.Status {
	return &entity.Status{
		ID: m.ID, CompanyID: m.CompanyID, Name: m.Name, Description: m.Description,
		Color: m.Color, Icon: m.Icon, IsActive: m.IsActive, IsDefault: m.IsDefault, SortOrder: m.SortOrder,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func remitoFromEntity(r *entity.Remito) *remitoModel {
	return &remitoModel{
		ID: r.ID, CompanyID: r.CompanyID, Number: r.Number, ClientID: r.ClientID,
		StatusID: r.StatusID, StatusAt: utc(r.StatusAt), Notes: r.Notes, Total: r.Total,
		CreatedAt: utc(r.CreatedAt), UpdatedAt: utc(r.UpdatedAt),
	}
}

func (m *remitoModel) toEntity(items []remitoItemModel) *entity.Remito {
	r := &entity.Remito{
		ID: m.ID, CompanyID: m.CompanyID, Number: m.Number, ClientID: m.ClientID,
		StatusID: m.StatusID, StatusAt: m.StatusAt, Notes: m.Notes, Total: m.Total,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
	for _, it := range items {
		r.Items = append(r.Items, entity.RemitoItem{
			ID: it.ID, RemitoID: it.RemitoID, ProductID: it.ProductID,
			Quantity: it.Quantity, UnitPrice: it.UnitPrice, LineTotal: it.LineTotal,
		})
	}
	return r
}
