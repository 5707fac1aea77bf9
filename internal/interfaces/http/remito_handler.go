package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/remitos-api/internal/application/dto"
	"github.com/jhoicas/remitos-api/internal/application/workflow"
	"github.com/jhoicas/remitos-api/pkg/logger"
)

// RemitoHandler alta, consulta y cambio de estado de remitos.
type RemitoHandler struct {
	remitos     *workflow.RemitoUseCase
	transitions *workflow.TransitionUseCase
	log         *logger.Logger
}

// NewRemitoHandler construye el handler.
func NewRemitoHandler(remitos *workflow.RemitoUseCase, transitions *workflow.TransitionUseCase, log *logger.Logger) *RemitoHandler {
	return &RemitoHandler{remitos: remitos, transitions: transitions, log: log}
}

// Create godoc
// @Summary      Crear remito
// @Tags         remitos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateRemitoRequest  true  "Remito"
// @Success      201   {object}  dto.RemitoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/remitos [post]
func (h *RemitoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRemitoRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.remitos.Create(c.UserContext(), CallerFrom(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener remito con sus ítems
// @Tags         remitos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del remito"
// @Success      200  {object}  dto.RemitoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/remitos/{id} [get]
func (h *RemitoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.remitos.GetByID(c.UserContext(), CallerFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de un remito
// @Description  Cualquier estado activo de la empresa del remito es un destino válido.
// @Tags         remitos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                        true  "ID del remito"
// @Param        body  body  dto.UpdateRemitoStatusRequest  true  "Estado destino"
// @Success      200   {object}  dto.RemitoStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/remitos/{id}/status [put]
func (h *RemitoHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateRemitoStatusRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.transitions.Transition(c.UserContext(), CallerFrom(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
