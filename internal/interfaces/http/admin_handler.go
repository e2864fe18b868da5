package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simplepro/simplepro-api/internal/application/auth"
	"github.com/simplepro/simplepro-api/internal/application/dto"
)

// AdminHandler maneja los procedimientos administrativos simulados.
type AdminHandler struct {
	uc *auth.AdminUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *auth.AdminUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión de administrador
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales admin"
// @Success      200   {object}  dto.AdminLoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/admin/login [post]
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ValidateCredentials godoc
// @Summary      Verificar credenciales admin sin crear sesión
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdminValidateCredentialsRequest  true  "Credenciales a verificar"
// @Success      200   {object}  dto.AdminValidateCredentialsResponse
// @Router       /api/admin/validate-credentials [post]
func (h *AdminHandler) ValidateCredentials(c *fiber.Ctx) error {
	var in dto.AdminValidateCredentialsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.JSON(h.uc.ValidateCredentials(c.Context(), in.Email, in.Password))
}

// Config godoc
// @Summary      Configuración admin visible (sin contraseña)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdminConfigResponse
// @Router       /api/admin/config [get]
func (h *AdminHandler) Config(c *fiber.Ctx) error {
	return c.JSON(h.uc.Config())
}

// ChangePassword godoc
// @Summary      Cambiar contraseña de administrador
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdminChangePasswordRequest  true  "Contraseñas"
// @Success      200   {object}  dto.AdminChangePasswordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/admin/change-password [post]
func (h *AdminHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.AdminChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.ChangePassword(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ValidateSession godoc
// @Summary      Validar un token de sesión admin
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdminValidateSessionRequest  true  "Token a validar"
// @Success      200   {object}  dto.AdminSessionResponse
// @Router       /api/admin/validate-session [post]
func (h *AdminHandler) ValidateSession(c *fiber.Ctx) error {
	var in dto.AdminValidateSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.JSON(h.uc.ValidateSession(c.Context(), in.Token))
}

// CreateTestUser godoc
// @Summary      Crear la cuenta de prueba (idempotente)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.TestUserResponse
// @Router       /api/admin/test-user [post]
func (h *AdminHandler) CreateTestUser(c *fiber.Ctx) error {
	return c.Status(fiber.StatusCreated).JSON(h.uc.CreateTestUser(c.Context()))
}

// GetTestUser godoc
// @Summary      Obtener la cuenta de prueba
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TestUserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/test-user [get]
func (h *AdminHandler) GetTestUser(c *fiber.Ctx) error {
	out, err := h.uc.TestUser(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// DeleteTestUser godoc
// @Summary      Eliminar la cuenta de prueba
// @Tags         admin
// @Security     Bearer
// @Success      204
// @Router       /api/admin/test-user [delete]
func (h *AdminHandler) DeleteTestUser(c *fiber.Ctx) error {
	h.uc.DeleteTestUser(c.Context())
	return c.SendStatus(fiber.StatusNoContent)
}

// SystemStats godoc
// @Summary      Métricas simuladas del sistema
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SystemStatsResponse
// @Router       /api/admin/stats [get]
func (h *AdminHandler) SystemStats(c *fiber.Ctx) error {
	return c.JSON(h.uc.SystemStats(c.Context()))
}
