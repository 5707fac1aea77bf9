package sqlite

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/jhoicas/remitos-api/internal/domain"
	"github.com/jhoicas/remitos-api/internal/domain/entity"
	"github.com/jhoicas/remitos-api/internal/domain/repository"
)

var _ repository.StatusRepository = (*StatusRepo)(nil)

// StatusRepo catálogo de estados sobre SQLite.
type StatusRepo struct {
	db *gorm.DB
}

// NewStatusRepository construye el adaptador.
func NewStatusRepository(db *gorm.DB) *StatusRepo {
	return &StatusRepo{db: db}
}

func (r *StatusRepo) Create(ctx context.Context, s *entity.Status) error {
	if err := r.db.WithContext(ctx).Create(statusFromEntity(s)).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return storeErr("insert status", err)
	}
	return nil
}

func (r *StatusRepo) GetByID(ctx context.Context, id string) (*entity.Status, error) {
	return r.first(ctx, "get status", r.db.Where("id = ?", id))
}

func (r *StatusRepo) GetByCompanyAndName(ctx context.Context, companyID, name string) (*entity.Status, error) {
	return r.first(ctx, "get status by name", r.db.Where("company_id = ? AND name = ?", companyID, name))
}

func (r *StatusRepo) first(ctx context.Context, op string, q *gorm.DB) (*entity.Status, error) {
	var m statusModel
	if err := q.WithContext(ctx).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return m.toEntity(), nil
}

// Update usa un mapa para que los valores cero (is_active=false, sort_order=0) también se escriban.
func (r *StatusRepo) Update(ctx context.Context, s *entity.Status) error {
	res := r.db.WithContext(ctx).Model(&statusModel{}).Where("id = ?", s.ID).Updates(map[string]any{
		"name":        s.Name,
		"description": s.Description,
		"color":       s.Color,
		"icon":        s.Icon,
		"is_active":   s.IsActive,
		"sort_order":  s.SortOrder,
		"updated_at":  utc(s.UpdatedAt),
	})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return domain.ErrDuplicateName
		}
		return storeErr("update status", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el estado solo si ningún remito lo referencia, en la misma sentencia.
// SQLite no tiene FK desde remitos.status_id: sin el NOT EXISTS un remito creado entre
// CountByStatus y el borrado quedaría apuntando a un estado inexistente.
func (r *StatusRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Exec(
		`DELETE FROM remito_statuses
		 WHERE id = ? AND NOT EXISTS (SELECT 1 FROM remitos WHERE status_id = ?)`,
		id, id,
	)
	if res.Error != nil {
		return storeErr("delete status", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	var n int64
	if err := r.db.WithContext(ctx).Model(&statusModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return storeErr("delete status", err)
	}
	if n > 0 {
		return domain.ErrInUse
	}
	return domain.ErrNotFound
}

func (r *StatusRepo) List(ctx context.Context, companyID string, includeInactive bool) ([]*entity.Status, error) {
	q := r.db.WithContext(ctx).Model(&statusModel{})
	if companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var rows []statusModel
	if err := q.Order("sort_order ASC").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, storeErr("list statuses", err)
	}
	out := make([]*entity.Status, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

func (r *StatusRepo) MaxSortOrder(ctx context.Context, companyID string) (int, bool, error) {
	var maxOrder sql.NullInt64
	err := r.db.WithContext(ctx).Model(&statusModel{}).
		Where("company_id = ?", companyID).
		Select("MAX(sort_order)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, false, storeErr("max sort order", err)
	}
	if !maxOrder.Valid {
		return 0, false, nil
	}
	return int(maxOrder.Int64), true, nil
}
