package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simplepro/simplepro-api/internal/application/auth"
	"github.com/simplepro/simplepro-api/internal/application/crm"
	"github.com/simplepro/simplepro-api/internal/application/dto"
	"github.com/simplepro/simplepro-api/internal/application/scheduling"
	"github.com/simplepro/simplepro-api/internal/domain"
	"github.com/simplepro/simplepro-api/internal/domain/entity"
)

// AuthHandler maneja registro, sesión y suscripción del usuario.
type AuthHandler struct {
	session   *auth.SessionUseCase
	customers *crm.Service
	quotes    *scheduling.QuoteUseCase
	jobs      *scheduling.JobUseCase
}

// NewAuthHandler construye el handler. Los stores se necesitan para el
// resumen de uso de la suscripción.
func NewAuthHandler(session *auth.SessionUseCase, customers *crm.Service, quotes *scheduling.QuoteUseCase, jobs *scheduling.JobUseCase) *AuthHandler {
	return &AuthHandler{session: session, customers: customers, quotes: quotes, jobs: jobs}
}

// Register godoc
// @Summary      Registrar cuenta nueva (plan free)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos de registro"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.session.Register(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toUserResponse(out))
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	token, user, err := h.session.Login(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.LoginResponse{Token: token, User: toUserResponse(user)})
}

// Logout godoc
// @Summary      Cerrar sesión (vacía los stores en memoria)
// @Tags         auth
// @Security     Bearer
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.session.Logout(c.Context()); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// VerifyEmail godoc
// @Summary      Confirmar email (envío simulado)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.VerifyEmailRequest  true  "Token de verificación"
// @Success      204
// @Router       /api/auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var in dto.VerifyEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.session.VerifyEmail(c.Context(), in.Token); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResetPassword godoc
// @Summary      Solicitar restablecimiento de contraseña (envío simulado)
// @Tags         auth
// @Accept       json
// @Param        body  body  dto.ResetPasswordRequest  true  "Email de la cuenta"
// @Success      204
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.session.ResetPassword(c.Context(), in.Email); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Refresh godoc
// @Summary      Renovar el token de sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	token, err := h.session.RefreshToken(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"token": token})
}

// Me godoc
// @Summary      Usuario en sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := h.session.CurrentUser()
	if user == nil {
		return domainError(c, domain.ErrUnauthorized)
	}
	return c.JSON(toUserResponse(user))
}

// Usage godoc
// @Summary      Cuotas del plan y uso actual por recurso
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SubscriptionUsageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/subscription/usage [get]
func (h *AuthHandler) Usage(c *fiber.Ctx) error {
	user := h.session.CurrentUser()
	if user == nil {
		return domainError(c, domain.ErrUnauthorized)
	}
	customerCount, err := h.customers.Count()
	if err != nil {
		return domainError(c, err)
	}
	quoteCount, err := h.quotes.Count()
	if err != nil {
		return domainError(c, err)
	}
	jobCount, err := h.jobs.Count()
	if err != nil {
		return domainError(c, err)
	}
	limits := user.Limits()
	return c.JSON(dto.SubscriptionUsageResponse{
		Tier:           string(user.Tier),
		CustomerCount:  customerCount,
		CustomerLimit:  limits.Customers,
		QuoteCount:     quoteCount,
		QuoteLimit:     limits.Quotes,
		JobCount:       jobCount,
		JobLimit:       limits.Jobs,
		CanAddCustomer: h.customers.CanAdd(),
		CanAddQuote:    h.quotes.CanAdd(),
		CanAddJob:      h.jobs.CanAdd(),
	})
}

// Upgrade godoc
// @Summary      Cambiar el plan de suscripción (pago simulado)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  object{tier=string}  true  "Plan destino"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/subscription/upgrade [post]
func (h *AuthHandler) Upgrade(c *fiber.Ctx) error {
	var in struct {
		Tier string `json:"tier"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.session.UpgradeTier(c.Context(), entity.SubscriptionTier(in.Tier))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toUserResponse(out))
}
