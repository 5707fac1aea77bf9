package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/remitos-api/internal/domain/entity"
	"github.com/jhoicas/remitos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard de remitos.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// countSource tabla y filtro fijo de cada conteo.
var countSource = map[repository.CountKind]struct {
	table string
	where string
}{
	repository.CountClients:            {"clients", ""},
	repository.CountProducts:           {"products", ""},
	repository.CountProductsInStock:    {"products", "stock > 0"},
	repository.CountProductsOutOfStock: {"products", "stock <= 0"},
	repository.CountCategories:         {"categories", ""},
	repository.CountUsers:              {"users", ""},
}

// filter arma cláusulas WHERE con placeholders numerados en orden.
type filter struct {
	conds []string
	args  []any
}

func (f *filter) add(cond string, arg any) {
	f.args = append(f.args, arg)
	f.conds = append(f.conds, fmt.Sprintf(cond, len(f.args)))
}

func (f *filter) raw(cond string) {
	if cond != "" {
		f.conds = append(f.conds, cond)
	}
}

func (f *filter) sql() string {
	if len(f.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.conds, " AND ")
}

// ListRemitoActivity escaneo (id, status_id, created_at) de los remitos del alcance.
func (r *AnalyticsRepo) ListRemitoActivity(ctx context.Context, companyID string) ([]entity.RemitoActivity, error) {
	var f filter
	if companyID != "" {
		f.add("company_id = $%d", companyID)
	}
	query := `SELECT id, status_id, created_at FROM remitos` + f.sql() + ` ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, f.args...)
	if err != nil {
		return nil, storeErr("analytics.ListRemitoActivity", err)
	}
	defer rows.Close()

	var out []entity.RemitoActivity
	for rows.Next() {
		var a entity.RemitoActivity
		if err := rows.Scan(&a.ID, &a.StatusID, &a.CreatedAt); err != nil {
			return nil, storeErr("analytics.ListRemitoActivity scan", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("analytics.ListRemitoActivity", err)
	}
	return out, nil
}

// CountEntities COUNT(*) de la tabla asociada a kind.
func (r *AnalyticsRepo) CountEntities(ctx context.Context, kind repository.CountKind, companyID string, since *time.Time) (int, error) {
	src, ok := countSource[kind]
	if !ok {
		return 0, fmt.Errorf("analytics.CountEntities: tipo %q desconocido", kind)
	}
	var f filter
	if companyID != "" {
		f.add("company_id = $%d", companyID)
	}
	if since != nil {
		f.add("created_at >= $%d", *since)
	}
	f.raw(src.where)

	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM `+src.table+f.sql(), f.args...).Scan(&n); err != nil {
		return 0, storeErr("analytics.CountEntities "+string(kind), err)
	}
	return n, nil
}

// GetTopProducts ranking por cantidad vendida.
// remito_items no tiene company_id: el alcance se aplica sobre remitos y sobre products.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, companyID string, since *time.Time, limit int) ([]repository.TopProductResult, error) {
	var f filter
	if companyID != "" {
		f.add("rm.company_id = $%d", companyID)
		f.add("p.company_id = $%d", companyID)
	}
	if since != nil {
		f.add("rm.created_at >= $%d", *since)
	}
	f.args = append(f.args, limit)
	query := `
	SELECT
	    p.id              AS product_id,
	    p.name            AS product_name,
	    SUM(it.quantity)  AS quantity
	FROM remito_items it
	JOIN remitos  rm ON rm.id = it.remito_id
	JOIN products p  ON p.id  = it.product_id` + f.sql() + `
	GROUP BY p.id, p.name
	ORDER BY quantity DESC, p.name ASC
	LIMIT $` + fmt.Sprint(len(f.args))

	rows, err := r.q.Query(ctx, query, f.args...)
	if err != nil {
		return nil, storeErr("analytics.GetTopProducts", err)
	}
	defer rows.Close()

	var out []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Quantity); err != nil {
			return nil, storeErr("analytics.GetTopProducts scan", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("analytics.GetTopProducts", err)
	}
	return out, nil
}
