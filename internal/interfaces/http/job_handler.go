package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simplepro/simplepro-api/internal/application/dto"
	"github.com/simplepro/simplepro-api/internal/application/scheduling"
	"github.com/simplepro/simplepro-api/internal/domain/entity"
)

// JobHandler maneja las peticiones HTTP para Job (protegido).
type JobHandler struct {
	uc *scheduling.JobUseCase
}

// NewJobHandler construye el handler.
func NewJobHandler(uc *scheduling.JobUseCase) *JobHandler {
	return &JobHandler{uc: uc}
}

// Create godoc
// @Summary      Crear trabajo agendado
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateJobRequest  true  "Datos del trabajo"
// @Success      201   {object}  dto.JobResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toJobResponse(out))
}

// List godoc
// @Summary      Listar trabajos (filtros opcionales por fecha, estado, prioridad y cliente)
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        date         query  string  false  "Fecha agendada (YYYY-MM-DD)"
// @Param        status       query  string  false  "Estado"
// @Param        priority     query  string  false  "Prioridad"
// @Param        customer_id  query  string  false  "ID del cliente"
// @Success      200  {array}  dto.JobResponse
// @Router       /api/jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	if date := c.Query("date"); date != "" {
		out, err := h.uc.ListByDate(date)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(toJobResponses(out))
	}
	if status := c.Query("status"); status != "" {
		out, err := h.uc.ListByStatus(entity.JobStatus(status))
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(toJobResponses(out))
	}
	if priority := c.Query("priority"); priority != "" {
		out, err := h.uc.ListByPriority(entity.JobPriority(priority))
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(toJobResponses(out))
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		out, err := h.uc.ListByCustomer(customerID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(toJobResponses(out))
	}
	out, err := h.uc.List()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toJobResponses(out))
}

// GetByID godoc
// @Summary      Obtener trabajo por ID
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del trabajo"
// @Success      200  {object}  dto.JobResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id} [get]
func (h *JobHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toJobResponse(out))
}

// Update godoc
// @Summary      Actualizar trabajo (parcial)
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del trabajo"
// @Param        body  body  dto.UpdateJobRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.JobResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id} [put]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toJobResponse(out))
}

// UpdateStatus godoc
// @Summary      Cambiar estado del trabajo (completed fija completed_at)
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del trabajo"
// @Param        body  body  dto.UpdateJobStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.JobResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/status [patch]
func (h *JobHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateJobStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), entity.JobStatus(in.Status))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toJobResponse(out))
}

// Delete godoc
// @Summary      Eliminar trabajo
// @Tags         jobs
// @Security     Bearer
// @Param        id  path  string  true  "ID del trabajo"
// @Success      204
// @Router       /api/jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
