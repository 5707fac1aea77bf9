package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/remitos-api/internal/domain"
)

// Period ventana del ranking de productos más vendidos.
type Period string

const (
	PeriodToday     Period = "hoy"
	PeriodYesterday Period = "ayer"
	PeriodWeek      Period = "esta_semana"
	PeriodMonth     Period = "este_mes"
	PeriodAll       Period = "siempre"
)

// ParsePeriod valida el parámetro productsPeriod. Vacío equivale a "siempre".
func ParsePeriod(raw string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(raw)))
	switch p {
	case "":
		return PeriodAll, nil
	case PeriodToday, PeriodYesterday, PeriodWeek, PeriodMonth, PeriodAll:
		return p, nil
	}
	return "", fmt.Errorf("%w: productsPeriod %q no soportado", domain.ErrInvalidInput, raw)
}

// Since cota inferior (inclusiva) del período relativa a now, o nil para "siempre".
// "ayer" solo fija la cota inferior: incluye también lo vendido hoy.
// La semana empieza el domingo.
func (p Period) Since(now time.Time) *time.Time {
	today := startOfDay(now)
	var since time.Time
	switch p {
	case PeriodToday:
		since = today
	case PeriodYesterday:
		since = today.AddDate(0, 0, -1)
	case PeriodWeek:
		since = today.AddDate(0, 0, -int(today.Weekday()))
	case PeriodMonth:
		since = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return nil
	}
	return &since
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
