package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/remitos-api/internal/domain"
	"github.com/jhoicas/remitos-api/internal/domain/entity"
	"github.com/jhoicas/remitos-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.ClientRepository   = (*ClientRepo)(nil)
)

// ProductRepo productos sobre SQLite.
type ProductRepo struct{ db *gorm.DB }

// NewProductRepository construye el adaptador.
func NewProductRepository(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if err := r.db.WithContext(ctx).Create(productFromEntity(p)).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert product", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var m productModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, storeErr("get product", err)
	}
	return m.toEntity(), nil
}

func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	var rows []productModel
	err := r.db.WithContext(ctx).Where("company_id = ?", companyID).
		Order("name").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, storeErr("list products", err)
	}
	out := make([]*entity.Product, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

// CategoryRepo categorías sobre SQLite.
type CategoryRepo struct{ db *gorm.DB }

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(db *gorm.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	if err := r.db.WithContext(ctx).Create(categoryFromEntity(c)).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert category", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var m categoryModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, storeErr("get category", err)
	}
	return m.toEntity(), nil
}

func (r *CategoryRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Category, error) {
	var rows []categoryModel
	err := r.db.WithContext(ctx).Where("company_id = ?", companyID).
		Order("name").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, storeErr("list categories", err)
	}
	out := make([]*entity.Category, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

// ClientRepo clientes sobre SQLite.
type ClientRepo struct{ db *gorm.DB }

// NewClientRepository construye el adaptador.
func NewClientRepository(db *gorm.DB) *ClientRepo { return &ClientRepo{db: db} }

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	if err := r.db.WithContext(ctx).Create(clientFromEntity(c)).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert client", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	var m clientModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, storeErr("get client", err)
	}
	return m.toEntity(), nil
}

func (r *ClientRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Client, error) {
	var rows []clientModel
	err := r.db.WithContext(ctx).Where("company_id = ?", companyID).
		Order("name").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, storeErr("list clients", err)
	}
	out := make([]*entity.Client, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

// UserRepo alta de usuarios para cargas iniciales y tests; el dashboard solo los cuenta.
type UserRepo struct{ db *gorm.DB }

// NewUserRepository construye el adaptador.
func NewUserRepository(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(userFromEntity(u)).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert user", err)
	}
	return nil
}
