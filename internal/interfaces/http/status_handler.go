package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/remitos-api/internal/application/dto"
	"github.com/jhoicas/remitos-api/internal/application/workflow"
	"github.com/jhoicas/remitos-api/pkg/logger"
)

// StatusHandler catálogo de estados de remito por empresa.
type StatusHandler struct {
	uc  *workflow.StatusUseCase
	log *logger.Logger
}

// NewStatusHandler construye el handler.
func NewStatusHandler(uc *workflow.StatusUseCase, log *logger.Logger) *StatusHandler {
	return &StatusHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar estados de remito
// @Description  Ordenados por sort_order y nombre. Un superadmin sin companyId ve todas las empresas.
// @Tags         statuses
// @Produce      json
// @Security     BearerAuth
// @Param        companyId         query  string  false  "Empresa (solo superadmin)"
// @Param        include_inactive  query  bool    false  "Incluir inactivos"
// @Success      200  {array}   dto.StatusResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/statuses [get]
func (h *StatusHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), CallerFrom(c), c.Query("companyId"), c.QueryBool("include_inactive", false))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear estado de remito
// @Tags         statuses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateStatusRequest  true  "Estado"
// @Success      201   {object}  dto.StatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/statuses [post]
func (h *StatusHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStatusRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), CallerFrom(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar estado de remito
// @Tags         statuses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID del estado"
// @Param        body  body  dto.UpdateStatusRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.StatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/statuses/{id} [put]
func (h *StatusHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), CallerFrom(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar estado de remito
// @Description  Falla con 400 si algún remito lo tiene asignado.
// @Tags         statuses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del estado"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/statuses/{id} [delete]
func (h *StatusHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), CallerFrom(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// Reseed godoc
// @Summary      Re-sembrar estados por defecto
// @Description  Crea los estados de la plantilla que falten en la empresa. Solo superadmin.
// @Tags         statuses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {array}   dto.StatusResponse
// @Router       /api/companies/{id}/statuses/reseed [post]
func (h *StatusHandler) Reseed(c *fiber.Ctx) error {
	out, err := h.uc.ReseedDefaults(c.UserContext(), CallerFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
