package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simplepro/simplepro-api/internal/application/dto"
	"github.com/simplepro/simplepro-api/internal/application/scheduling"
	"github.com/simplepro/simplepro-api/internal/domain/entity"
)

// QuoteHandler maneja las peticiones HTTP para Quote (protegido).
type QuoteHandler struct {
	quotes *scheduling.QuoteUseCase
	jobs   *scheduling.JobUseCase
}

// NewQuoteHandler construye el handler. El caso de uso de jobs se necesita
// para la conversión cotización -> trabajo.
func NewQuoteHandler(quotes *scheduling.QuoteUseCase, jobs *scheduling.JobUseCase) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, jobs: jobs}
}

// Create godoc
// @Summary      Crear cotización (nace en estado draft)
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQuoteRequest  true  "Datos de la cotización"
// @Success      201   {object}  dto.QuoteResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/quotes [post]
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.quotes.Create(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toQuoteResponse(out))
}

// List godoc
// @Summary      Listar cotizaciones (filtros opcionales por estado y cliente)
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "Estado"
// @Param        customer_id  query  string  false  "ID del cliente"
// @Success      200  {array}  dto.QuoteResponse
// @Router       /api/quotes [get]
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	if status := c.Query("status"); status != "" {
		out, err := h.quotes.ListByStatus(entity.QuoteStatus(status))
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(toQuoteResponses(out))
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		out, err := h.quotes.ListByCustomer(customerID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(toQuoteResponses(out))
	}
	out, err := h.quotes.List()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toQuoteResponses(out))
}

// GetByID godoc
// @Summary      Obtener cotización por ID
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id} [get]
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.quotes.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toQuoteResponse(out))
}

// Update godoc
// @Summary      Actualizar cotización (parcial; el estado converted no es asignable)
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cotización"
// @Param        body  body  dto.UpdateQuoteRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/quotes/{id} [put]
func (h *QuoteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.quotes.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toQuoteResponse(out))
}

// Delete godoc
// @Summary      Eliminar cotización
// @Tags         quotes
// @Security     Bearer
// @Param        id  path  string  true  "ID de la cotización"
// @Success      204
// @Router       /api/quotes/{id} [delete]
func (h *QuoteHandler) Delete(c *fiber.Ctx) error {
	if err := h.quotes.Delete(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Convert godoc
// @Summary      Convertir cotización en trabajo agendado
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cotización"
// @Success      201  {object}  dto.JobResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/convert [post]
func (h *QuoteHandler) Convert(c *fiber.Ctx) error {
	out, err := h.jobs.CreateJobFromQuote(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toJobResponse(out))
}

// Job godoc
// @Summary      Obtener el trabajo ligado a una cotización
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.JobResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/job [get]
func (h *QuoteHandler) Job(c *fiber.Ctx) error {
	out, err := h.jobs.GetByQuoteID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toJobResponse(out))
}
