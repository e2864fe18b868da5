package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simplepro/simplepro-api/internal/application/crm"
	"github.com/simplepro/simplepro-api/internal/application/dto"
	"github.com/simplepro/simplepro-api/internal/domain/entity"
)

// CustomerHandler maneja las peticiones HTTP para Customer (protegido).
type CustomerHandler struct {
	svc *crm.Service
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(svc *crm.Service) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.svc.Add(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCustomerResponse(out))
}

// List godoc
// @Summary      Listar clientes (con busqueda opcional por ?q=)
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Subcadena a buscar en nombre, teléfono, email, dirección, ciudad y código postal"
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	if q := c.Query("q"); q != "" {
		out, err := h.svc.Search(q)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(toCustomerResponses(out))
	}
	out, err := h.svc.List()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toCustomerResponses(out))
}

// GetByID godoc
// @Summary      Obtener cliente por ID
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toCustomerResponse(out))
}

// Update godoc
// @Summary      Actualizar cliente (parcial)
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.UpdateCustomerRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.svc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toCustomerResponse(out))
}

// Delete godoc
// @Summary      Eliminar cliente
// @Tags         customers
// @Security     Bearer
// @Param        id  path  string  true  "ID del cliente"
// @Success      204
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BySegment godoc
// @Summary      Listar clientes por segmento
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        segment  path  string  true  "Segmento: all, new, recurring, vip, at_risk"
// @Success      200  {array}  dto.CustomerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/customers/segments/{segment} [get]
func (h *CustomerHandler) BySegment(c *fiber.Ctx) error {
	segment := entity.CustomerSegment(c.Params("segment"))
	out, err := h.svc.FilterBySegment(segment)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toCustomerResponses(out))
}

// Metrics godoc
// @Summary      Métricas agregadas de la cartera de clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.CustomerMetrics
// @Router       /api/customers/metrics [get]
func (h *CustomerHandler) Metrics(c *fiber.Ctx) error {
	out, err := h.svc.Metrics()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
