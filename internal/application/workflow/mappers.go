package workflow

import (
	"github.com/jhoicas/remitos-api/internal/application/dto"
	"github.com/jhoicas/remitos-api/internal/domain/entity"
)

func toStatusResponse(s *entity.Status) *dto.StatusResponse {
	if s == nil {
		return nil
	}
	return &dto.StatusResponse{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		Name:        s.Name,
		Description: s.Description,
		Color:       s.Color,
		Icon:        s.Icon,
		IsActive:    s.IsActive,
		IsDefault:   s.IsDefault,
		SortOrder:   s.SortOrder,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toStatusResponses(list []*entity.Status) []dto.StatusResponse {
	out := make([]dto.StatusResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toStatusResponse(s))
	}
	return out
}

func toRemitoResponse(r *entity.Remito) *dto.RemitoResponse {
	if r == nil {
		return nil
	}
	items := make([]dto.RemitoItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, dto.RemitoItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		})
	}
	return &dto.RemitoResponse{
		ID:        r.ID,
		CompanyID: r.CompanyID,
		Number:    r.Number,
		ClientID:  r.ClientID,
		Status:    r.StatusID,
		StatusAt:  r.StatusAt,
		Notes:     r.Notes,
		Total:     r.Total,
		Items:     items,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
