package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/remitos-api/internal/domain"
	"github.com/jhoicas/remitos-api/internal/domain/entity"
	"github.com/jhoicas/remitos-api/internal/domain/repository"
)

var _ repository.RemitoRepository = (*RemitoRepo)(nil)

// RemitoRepo remitos y remito_items sobre PostgreSQL.
type RemitoRepo struct {
	q Querier
}

// NewRemitoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRemitoRepository(q Querier) *RemitoRepo {
	return &RemitoRepo{q: q}
}

// Create numera y persiste el remito con sus ítems en una transacción.
// El advisory lock por empresa serializa la numeración; UNIQUE (company_id, number) la respalda.
func (r *RemitoRepo) Create(ctx context.Context, remito *entity.Remito) error {
	return withTx(ctx, r.q, func(tx Querier) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, remito.CompanyID); err != nil {
			return storeErr("lock remito number", err)
		}
		var next int64
		err := tx.QueryRow(ctx,
			`SELECT COALESCE(MAX(number), 0) + 1 FROM remitos WHERE company_id = $1`,
			remito.CompanyID,
		).Scan(&next)
		if err != nil {
			return storeErr("next remito number", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO remitos (id, company_id, number, client_id, status_id, status_at, notes, total, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			remito.ID, remito.CompanyID, next, remito.ClientID, remito.StatusID, remito.StatusAt,
			remito.Notes, remito.Total, remito.CreatedAt, remito.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return storeErr("insert remito", err)
		}

		for _, it := range remito.Items {
			_, err := tx.Exec(ctx, `
				INSERT INTO remito_items (id, remito_id, product_id, quantity, unit_price, line_total)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				it.ID, remito.ID, it.ProductID, it.Quantity, it.UnitPrice, it.LineTotal,
			)
			if err != nil {
				return storeErr("insert remito item", err)
			}
		}
		remito.Number = next
		return nil
	})
}

// GetByID devuelve el remito con sus ítems.
func (r *RemitoRepo) GetByID(ctx context.Context, id string) (*entity.Remito, error) {
	query := `
		SELECT id, company_id, number, client_id, status_id, status_at, notes, total, created_at, updated_at
		FROM remitos WHERE id = $1`
	var rm entity.Remito
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rm.ID, &rm.CompanyID, &rm.Number, &rm.ClientID, &rm.StatusID, &rm.StatusAt,
		&rm.Notes, &rm.Total, &rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storeErr("get remito", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, remito_id, product_id, quantity, unit_price, line_total
		FROM remito_items WHERE remito_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, storeErr("list remito items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.RemitoItem
		if err := rows.Scan(&it.ID, &it.RemitoID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, storeErr("scan remito item", err)
		}
		rm.Items = append(rm.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list remito items", err)
	}
	return &rm, nil
}

// UpdateStatus aplica la transición en un único UPDATE condicionado: el remito debe ser de
// companyID y el destino un estado activo de esa misma empresa en el momento de escribir.
func (r *RemitoRepo) UpdateStatus(ctx context.Context, remitoID, companyID, statusID string, at time.Time) error {
	const query = `
		UPDATE remitos
		   SET status_id = $3, status_at = $4, updated_at = $4
		 WHERE id = $1
		   AND company_id = $2
		   AND EXISTS (
		       SELECT 1 FROM remito_statuses s
		        WHERE s.id = $3 AND s.company_id = $2 AND s.is_active = true
		   )`
	cmd, err := r.q.Exec(ctx, query, remitoID, companyID, statusID, at)
	if err != nil {
		return storeErr("update remito status", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvalidStatus
	}
	return nil
}

// CountByStatus cuenta remitos con status_id = statusID.
func (r *RemitoRepo) CountByStatus(ctx context.Context, statusID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM remitos WHERE status_id = $1`, statusID).Scan(&n); err != nil {
		return 0, storeErr("count remitos by status", err)
	}
	return n, nil
}
