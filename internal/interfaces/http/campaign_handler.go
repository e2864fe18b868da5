package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/simplepro/simplepro-api/internal/application/crm"
	"github.com/simplepro/simplepro-api/internal/application/dto"
	"github.com/simplepro/simplepro-api/internal/domain/entity"
)

// CampaignHandler maneja las peticiones HTTP de campañas de marketing (protegido).
type CampaignHandler struct {
	svc *crm.Service
}

// NewCampaignHandler construye el handler.
func NewCampaignHandler(svc *crm.Service) *CampaignHandler {
	return &CampaignHandler{svc: svc}
}

// Add godoc
// @Summary      Programar una campaña sobre un cliente
// @Tags         campaigns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.AddCampaignRequest  true  "Tipo de campaña"
// @Success      201   {object}  dto.CampaignResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/campaigns [post]
func (h *CampaignHandler) Add(c *fiber.Ctx) error {
	var in dto.AddCampaignRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.svc.AddCampaign(c.Context(), c.Params("id"), entity.CampaignType(in.Type))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCampaignResponse(*out))
}

// Remove godoc
// @Summary      Quitar una campaña de un cliente
// @Tags         campaigns
// @Security     Bearer
// @Param        id          path  string  true  "ID del cliente"
// @Param        campaignId  path  string  true  "ID de la campaña"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/campaigns/{campaignId} [delete]
func (h *CampaignHandler) Remove(c *fiber.Ctx) error {
	if err := h.svc.RemoveCampaign(c.Context(), c.Params("id"), c.Params("campaignId")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Bulk godoc
// @Summary      Inscribir varios clientes en una misma campaña
// @Tags         campaigns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkCampaignRequest  true  "Clientes y tipo de campaña"
// @Success      200   {object}  map[string]int
// @Router       /api/campaigns/bulk [post]
func (h *CampaignHandler) Bulk(c *fiber.Ctx) error {
	var in dto.BulkCampaignRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	enrolled, err := h.svc.AddCustomersToCampaign(c.Context(), in.CustomerIDs, entity.CampaignType(in.Type))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"enrolled": enrolled})
}

// RunAutomatic godoc
// @Summary      Ejecutar las campañas automáticas por recencia
// @Tags         campaigns
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/campaigns/run-automatic [post]
func (h *CampaignHandler) RunAutomatic(c *fiber.Ctx) error {
	scheduled, err := h.svc.RunAutomaticCampaigns(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"scheduled": scheduled})
}

// Buckets godoc
// @Summary      Clasificación de clientes para campañas automáticas
// @Tags         campaigns
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  crm.CampaignBuckets
// @Router       /api/campaigns/buckets [get]
func (h *CampaignHandler) Buckets(c *fiber.Ctx) error {
	out, err := h.svc.AutomaticCampaignBuckets(time.Now())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Statistics godoc
// @Summary      Estadísticas agregadas de campañas
// @Tags         campaigns
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.CampaignStats
// @Router       /api/campaigns/statistics [get]
func (h *CampaignHandler) Statistics(c *fiber.Ctx) error {
	out, err := h.svc.CampaignStatistics()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// CustomersByType godoc
// @Summary      Clientes con una campaña activa del tipo dado
// @Tags         campaigns
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "Tipo de campaña"
// @Success      200   {array}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/campaigns/{type}/customers [get]
func (h *CampaignHandler) CustomersByType(c *fiber.Ctx) error {
	out, err := h.svc.CustomersByCampaign(entity.CampaignType(c.Params("type")))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toCustomerResponses(out))
}
