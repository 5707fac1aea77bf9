package sqlite

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"github.com/jhoicas/remitos-api/internal/domain"
	"github.com/jhoicas/remitos-api/internal/domain/entity"
	"github.com/jhoicas/remitos-api/internal/domain/repository"
)

var _ repository.RemitoRepository = (*RemitoRepo)(nil)

// RemitoRepo remitos e ítems sobre SQLite.
type RemitoRepo struct {
	db *gorm.DB
}

// NewRemitoRepository construye el adaptador.
func NewRemitoRepository(db *gorm.DB) *RemitoRepo {
	return &RemitoRepo{db: db}
}

// Create numera y persiste dentro de una transacción. Con una única conexión la
// numeración queda serializada.
func (r *RemitoRepo) Create(ctx context.Context, remito *entity.Remito) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxNumber sql.NullInt64
		err := tx.Model(&remitoModel{}).
			Where("company_id = ?", remito.CompanyID).
			Select("MAX(number)").
			Scan(&maxNumber).Error
		if err != nil {
			return storeErr("next remito number", err)
		}
		m := remitoFromEntity(remito)
		m.Number = maxNumber.Int64 + 1

		if err := tx.Create(m).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return storeErr("insert remito", err)
		}
		if len(remito.Items) > 0 {
			items := make([]remitoItemModel, 0, len(remito.Items))
			for _, it := range remito.Items {
				items = append(items, remitoItemModel{
					ID: it.ID, RemitoID: remito.ID, ProductID: it.ProductID,
					Quantity: it.Quantity, UnitPrice: it.UnitPrice, LineTotal: it.LineTotal,
				})
			}
			if err := tx.Create(&items).Error; err != nil {
				return storeErr("insert remito items", err)
			}
		}
		remito.Number = m.Number
		return nil
	})
}

func (r *RemitoRepo) GetByID(ctx context.Context, id string) (*entity.Remito, error) {
	var m remitoModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, storeErr("get remito", err)
	}
	var items []remitoItemModel
	if err := r.db.WithContext(ctx).Where("remito_id = ?", id).Order("id").Find(&items).Error; err != nil {
		return nil, storeErr("list remito items", err)
	}
	return m.toEntity(items), nil
}

// UpdateStatus mismo UPDATE condicionado que en PostgreSQL.
func (r *RemitoRepo) UpdateStatus(ctx context.Context, remitoID, companyID, statusID string, at time.Time) error {
	at = utc(at)
	res := r.db.WithContext(ctx).Exec(`
		UPDATE remitos
		   SET status_id = ?, status_at = ?, updated_at = ?
		 WHERE id = ?
		   AND company_id = ?
		   AND EXISTS (
		       SELECT 1 FROM remito_statuses s
		        WHERE s.id = ? AND s.company_id = ? AND s.is_active = ?
		   )`,
		statusID, at, at, remitoID, companyID, statusID, companyID, true,
	)
	if res.Error != nil {
		return storeErr("update remito status", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvalidStatus
	}
	return nil
}

func (r *RemitoRepo) CountByStatus(ctx context.Context, statusID string) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&remitoModel{}).Where("status_id = ?", statusID).Count(&n).Error; err != nil {
		return 0, storeErr("count remitos by status", err)
	}
	return int(n), nil
}
