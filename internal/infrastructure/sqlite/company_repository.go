package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/remitos-api/internal/domain"
	"github.com/jhoicas/remitos-api/internal/domain/entity"
	"github.com/jhoicas/remitos-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo empresas sobre SQLite.
type CompanyRepo struct {
	db *gorm.DB
}

// NewCompanyRepository construye el adaptador.
func NewCompanyRepository(db *gorm.DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	if err := r.db.WithContext(ctx).Create(companyFromEntity(company)).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert company", err)
	}
	return nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.first(ctx, "get company", "id = ?", id)
}

func (r *CompanyRepo) GetByName(ctx context.Context, name string) (*entity.Company, error) {
	return r.first(ctx, "get company by name", "name = ?", name)
}

func (r *CompanyRepo) first(ctx context.Context, op, cond string, arg any) (*entity.Company, error) {
	var m companyModel
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return m.toEntity(), nil
}

func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	var rows []companyModel
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, storeErr("list companies", err)
	}
	out := make([]*entity.Company, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}
