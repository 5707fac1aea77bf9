// Package analytics arma el dashboard operativo de remitos: desglose por estado, volumen diario,
// conteos de entidades y productos más vendidos, calculados en cada pedido sobre el store.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/remitos-api/internal/application/dto"
	"github.com/jhoicas/remitos-api/internal/domain/entity"
	"github.com/jhoicas/remitos-api/internal/domain/repository"
	"github.com/jhoicas/remitos-api/internal/domain/tenant"
	"github.com/jhoicas/remitos-api/pkg/logger"
)

const (
	dashboardTopProducts = 5  // filas del ranking
	dashboardDays        = 30 // ventana de by_day, hoy incluido

	unknownStatusName = "Desconocido"
)

// Nombres de rama reportados en DashboardResponse.Degraded.
const (
	branchStatuses    = "statuses"
	branchTopProducts = "top_products"
)

// DashboardUseCase agregados del dashboard.
//
// Fuente de datos: AnalyticsRepository y StatusRepository (solo lectura).
// El escaneo de remitos es obligatorio; el resto de las ramas degradan a cero/vacío.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	statuses      repository.StatusRepository
	policy        tenant.Policy
	log           *logger.Logger
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	statuses repository.StatusRepository,
	policy tenant.Policy,
	log *logger.Logger,
) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		statuses:      statuses,
		policy:        policy,
		log:           log.Component("dashboard"),
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

type countResult struct {
	kind  repository.CountKind
	today bool
	n     int
	err   error
}

type topProductsResult struct {
	rows []repository.TopProductResult
	err  error
}

// GetDashboard resuelve el alcance de quien llama y arma el agregado.
//
// En paralelo con el escaneo de remitos:
//  1. conteo total y del día de cada entidad (12 consultas)
//  2. top 5 productos del período pedido
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, caller tenant.Caller, req dto.DashboardRequest) (*dto.DashboardResponse, error) {
	scope, err := uc.policy.ResolveScope(caller, req.CompanyID)
	if err != nil {
		return nil, err
	}
	period, err := ParsePeriod(req.ProductsPeriod)
	if err != nil {
		return nil, err
	}
	companyID := scope.CompanyID

	now := uc.now()
	todayStart := startOfDay(now)

	// ── Goroutines: conteos y ranking ─────────────────────────────────────────
	countsCh := make(chan countResult, 2*len(repository.CountKinds))
	topCh := make(chan topProductsResult, 1)

	for _, kind := range repository.CountKinds {
		go func(kind repository.CountKind) {
			n, err := uc.analyticsRepo.CountEntities(ctx, kind, companyID, nil)
			countsCh <- countResult{kind: kind, n: n, err: err}
		}(kind)
		go func(kind repository.CountKind) {
			n, err := uc.analyticsRepo.CountEntities(ctx, kind, companyID, &todayStart)
			countsCh <- countResult{kind: kind, today: true, n: n, err: err}
		}(kind)
	}
	go func() {
		rows, err := uc.analyticsRepo.GetTopProducts(ctx, companyID, period.Since(now), dashboardTopProducts)
		topCh <- topProductsResult{rows, err}
	}()

	// ── Catálogo de estados y escaneo de remitos ──────────────────────────────
	var degraded []string
	catalog, err := uc.statuses.List(ctx, companyID, false)
	if err != nil {
		uc.log.Warn().Err(err).Str("company_id", companyID).Msg("dashboard: catálogo de estados no disponible")
		degraded = append(degraded, branchStatuses)
	}

	activity, scanErr := uc.analyticsRepo.ListRemitoActivity(ctx, companyID)

	// Los canales tienen buffer: las goroutines terminan aunque se abandone el pedido.
	counts := dto.EntityCountsDTO{}
	var countDegraded []string
	for range 2 * len(repository.CountKinds) {
		r := <-countsCh
		if r.err != nil {
			uc.log.Warn().Err(r.err).Str("kind", string(r.kind)).Bool("today", r.today).Msg("dashboard: conteo degradado")
			name := string(r.kind)
			if r.today {
				name = "today_" + name
			}
			countDegraded = append(countDegraded, name)
			continue
		}
		if r.today {
			setCount(&counts.Today, r.kind, r.n)
		} else {
			setCount(&counts.EntityCounts, r.kind, r.n)
		}
	}
	top := <-topCh

	if scanErr != nil {
		return nil, fmt.Errorf("dashboard: escaneo de remitos: %w", scanErr)
	}

	sort.Strings(countDegraded)
	degraded = append(degraded, countDegraded...)

	topProducts := make([]dto.TopProductDTO, 0, len(top.rows))
	if top.err != nil {
		uc.log.Warn().Err(top.err).Str("period", string(period)).Msg("dashboard: top productos degradado")
		degraded = append(degraded, branchTopProducts)
	} else {
		for _, r := range top.rows {
			topProducts = append(topProducts, dto.TopProductDTO{
				ProductID: r.ProductID,
				Name:      r.ProductName,
				Quantity:  r.Quantity,
			})
		}
	}
	if degraded == nil {
		degraded = []string{}
	}

	byStatus, todayCount, byDay := summarize(activity, catalog, now)

	return &dto.DashboardResponse{
		TotalRemitos:   len(activity),
		TodayRemitos:   todayCount,
		ByStatus:       byStatus,
		ByDay:          byDay,
		Counts:         counts,
		TopProducts:    topProducts,
		ProductsPeriod: string(period),
		GeneratedAt:    now,
		Degraded:       degraded,
	}, nil
}

// summarize recorre el escaneo una sola vez y deriva by_status, el total del día y by_day.
// by_status sigue el orden del catálogo; los estados fuera del catálogo van al final como
// "Desconocido". by_day trae siempre dashboardDays filas, ascendente, hoy al final.
func summarize(activity []entity.RemitoActivity, catalog []*entity.Status, now time.Time) ([]dto.StatusCountDTO, int, []dto.DayCountDTO) {
	loc := now.Location()
	todayStart := startOfDay(now)
	firstDay := todayStart.AddDate(0, 0, -(dashboardDays - 1))

	byDay := make([]dto.DayCountDTO, dashboardDays)
	dayIndex := make(map[string]int, dashboardDays)
	for i := range dashboardDays {
		d := firstDay.AddDate(0, 0, i)
		key := d.Format(time.DateOnly)
		byDay[i] = dto.DayCountDTO{Date: key, Label: d.Format("02/01")}
		dayIndex[key] = i
	}

	perStatus := make(map[string]int)
	var unknownOrder []string
	known := make(map[string]bool, len(catalog))
	for _, st := range catalog {
		known[st.ID] = true
	}

	today := 0
	for _, a := range activity {
		if _, seen := perStatus[a.StatusID]; !seen && !known[a.StatusID] {
			unknownOrder = append(unknownOrder, a.StatusID)
		}
		perStatus[a.StatusID]++

		created := a.CreatedAt.In(loc)
		if !created.Before(todayStart) {
			today++
		}
		if i, ok := dayIndex[created.Format(time.DateOnly)]; ok {
			byDay[i].Count++
		}
	}

	byStatus := make([]dto.StatusCountDTO, 0, len(perStatus))
	for _, st := range catalog {
		n, ok := perStatus[st.ID]
		if !ok {
			continue
		}
		byStatus = append(byStatus, dto.StatusCountDTO{ID: st.ID, Name: st.Name, Color: st.Color, Count: n})
	}
	for _, id := range unknownOrder {
		byStatus = append(byStatus, dto.StatusCountDTO{
			ID:    id,
			Name:  unknownStatusName,
			Color: entity.DefaultStatusColor,
			Count: perStatus[id],
		})
	}
	return byStatus, today, byDay
}

func setCount(c *dto.EntityCounts, kind repository.CountKind, n int) {
	switch kind {
	case repository.CountClients:
		c.Clients = n
	case repository.CountProducts:
		c.Products = n
	case repository.CountProductsInStock:
		c.ProductsInStock = n
	case repository.CountProductsOutOfStock:
		c.ProductsOutOfStock = n
	case repository.CountCategories:
		c.Categories = n
	case repository.CountUsers:
		c.Users = n
	}
}
