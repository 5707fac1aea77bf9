package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jhoicas/remitos-api/internal/domain/entity"
	"github.com/jhoicas/remitos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura del dashboard sobre SQLite.
type AnalyticsRepo struct {
	db *gorm.DB
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepo {
	return &AnalyticsRepo{db: db}
}

func (r *AnalyticsRepo) ListRemitoActivity(ctx context.Context, companyID string) ([]entity.RemitoActivity, error) {
	q := r.db.WithContext(ctx).Model(&remitoModel{}).Select("id, status_id, created_at")
	if companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}
	var rows []struct {
		ID        string
		StatusID  string
		CreatedAt time.Time
	}
	if err := q.Order("created_at DESC").Scan(&rows).Error; err != nil {
		return nil, storeErr("analytics.ListRemitoActivity", err)
	}
	out := make([]entity.RemitoActivity, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.RemitoActivity{ID: row.ID, StatusID: row.StatusID, CreatedAt: row.CreatedAt})
	}
	return out, nil
}

func (r *AnalyticsRepo) CountEntities(ctx context.Context, kind repository.CountKind, companyID string, since *time.Time) (int, error) {
	q := r.db.WithContext(ctx)
	switch kind {
	case repository.CountClients:
		q = q.Model(&clientModel{})
	case repository.CountProducts:
		q = q.Model(&productModel{})
	case repository.CountProductsInStock:
		q = q.Model(&productModel{}).Where("stock > 0")
	case repository.CountProductsOutOfStock:
		q = q.Model(&productModel{}).Where("stock <= 0")
	case repository.CountCategories:
		q = q.Model(&categoryModel{})
	case repository.CountUsers:
		q = q.Model(&userModel{})
	default:
		return 0, fmt.Errorf("analytics.CountEntities: tipo %q desconocido", kind)
	}
	if companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}
	if since != nil {
		q = q.Where("created_at >= ?", utc(*since))
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, storeErr("analytics.CountEntities "+string(kind), err)
	}
	return int(n), nil
}

func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, companyID string, since *time.Time, limit int) ([]repository.TopProductResult, error) {
	q := r.db.WithContext(ctx).
		Table("remito_items AS it").
		Select("p.id AS product_id, p.name AS product_name, SUM(it.quantity) AS quantity").
		Joins("JOIN remitos rm ON rm.id = it.remito_id").
		Joins("JOIN products p ON p.id = it.product_id")
	if companyID != "" {
		q = q.Where("rm.company_id = ? AND p.company_id = ?", companyID, companyID)
	}
	if since != nil {
		q = q.Where("rm.created_at >= ?", utc(*since))
	}
	var rows []struct {
		ProductID   string
		ProductName string
		Quantity    decimal.Decimal
	}
	err := q.Group("p.id, p.name").
		Order("quantity DESC").Order("p.name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr("analytics.GetTopProducts", err)
	}
	out := make([]repository.TopProductResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, repository.TopProductResult{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
		})
	}
	return out, nil
}
