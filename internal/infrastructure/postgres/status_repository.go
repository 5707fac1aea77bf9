package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/remitos-api/internal/domain"
	"github.com/jhoicas/remitos-api/internal/domain/entity"
	"github.com/jhoicas/remitos-api/internal/domain/repository"
)

var _ repository.StatusRepository = (*StatusRepo)(nil)

// StatusRepo catálogo de estados (tabla remito_statuses) sobre PostgreSQL.
type StatusRepo struct {
	q Querier
}

// NewStatusRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStatusRepository(q Querier) *StatusRepo {
	return &StatusRepo{q: q}
}

const statusColumns = `id, company_id, name, description, color, icon, is_active, is_default, sort_order, created_at, updated_at`

func scanStatus(row pgx.Row) (*entity.Status, error) {
	var s entity.Status
	err := row.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Description, &s.Color, &s.Icon,
		&s.IsActive, &s.IsDefault, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta el estado. (company_id, name) duplicado → domain.ErrDuplicateName;
// empresa inexistente (23503) → domain.ErrNotFound.
func (r *StatusRepo) Create(ctx context.Context, s *entity.Status) error {
	query := `
		INSERT INTO remito_statuses (` + statusColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.Name, s.Description, s.Color, s.Icon,
		s.IsActive, s.IsDefault, s.SortOrder, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return storeErr("insert status", err)
	}
	return nil
}

// GetByID obtiene un estado por ID.
func (r *StatusRepo) GetByID(ctx context.Context, id string) (*entity.Status, error) {
	s, err := scanStatus(r.q.QueryRow(ctx, `SELECT `+statusColumns+` FROM remito_statuses WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storeErr("get status", err)
	}
	return s, nil
}

// GetByCompanyAndName busca por la clave natural (company_id, name).
func (r *StatusRepo) GetByCompanyAndName(ctx context.Context, companyID, name string) (*entity.Status, error) {
	query := `SELECT ` + statusColumns + ` FROM remito_statuses WHERE company_id = $1 AND name = $2`
	s, err := scanStatus(r.q.QueryRow(ctx, query, companyID, name))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storeErr("get status by name", err)
	}
	return s, nil
}

// Update persiste los campos editables. company_id e is_default no cambian.
func (r *StatusRepo) Update(ctx context.Context, s *entity.Status) error {
	query := `
		UPDATE remito_statuses
		   SET name = $2, description = $3, color = $4, icon = $5,
		       is_active = $6, sort_order = $7, updated_at = $8
		 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.Description, s.Color, s.Icon, s.IsActive, s.SortOrder, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return storeErr("update status", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el estado. La FK desde remitos impide borrar uno en uso (23503 → ErrInUse).
func (r *StatusRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM remito_statuses WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return storeErr("delete status", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List ordenado por sort_order, name. companyID vacío = todas las empresas.
func (r *StatusRepo) List(ctx context.Context, companyID string, includeInactive bool) ([]*entity.Status, error) {
	var (
		where []string
		args  []any
	)
	if companyID != "" {
		args = append(args, companyID)
		where = append(where, "company_id = $1")
	}
	if !includeInactive {
		where = append(where, "is_active = true")
	}
	query := `SELECT ` + statusColumns + ` FROM remito_statuses`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY sort_order ASC, name ASC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list statuses", err)
	}
	defer rows.Close()

	var list []*entity.Status
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, storeErr("scan status", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list statuses", err)
	}
	return list, nil
}

// MaxSortOrder mayor sort_order de la empresa; found=false si no tiene estados.
func (r *StatusRepo) MaxSortOrder(ctx context.Context, companyID string) (int, bool, error) {
	var maxOrder *int
	err := r.q.QueryRow(ctx, `SELECT MAX(sort_order) FROM remito_statuses WHERE company_id = $1`, companyID).Scan(&maxOrder)
	if err != nil {
		return 0, false, storeErr("max sort order", err)
	}
	if maxOrder == nil {
		return 0, false, nil
	}
	return *maxOrder, true, nil
}
