package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/yakoovad/hackathon-registration/internal/auth"
	"github.com/yakoovad/hackathon-registration/internal/model"
	"github.com/yakoovad/hackathon-registration/internal/service"
	"github.com/yakoovad/hackathon-registration/pkg/logger"
	"go.uber.org/zap"
)

const (
	messageEmailQueued = "Registration successful! A confirmation email has been sent to the team lead."
	messageNoEmail     = "Registration successful! Keep your Hackathon ID handy for check-in."
)

type Handler struct {
	registrations *service.RegistrationService
	issuer        *auth.Issuer

	healthChecker HealthChecker

	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{
		logger: logger,
	}
}

func (h *Handler) WithHealthChecker(c HealthChecker) *Handler {
	h.healthChecker = c
	return h
}

func (h *Handler) WithRegistrationService(s *service.RegistrationService) *Handler {
	h.registrations = s
	return h
}

func (h *Handler) WithIssuer(i *auth.Issuer) *Handler {
	h.issuer = i
	return h
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewValidator()
	e.Use(middleware.RequestID())
	e.Use(ZapLoggerMiddleware(h.logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if h.healthChecker != nil {
		e.GET("/health", h.healthChecker.HealthCheck())
	}

	e.POST("/register", h.Register)

	staff := e.Group("", AuthMiddleware(h.issuer, auth.TokenTypeOrganizer, auth.TokenTypeAdmin))
	staff.GET("/registration/:id", h.GetRegistration)
}

func (h *Handler) Register(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	req := &model.RegistrationPayload{}
	if err := ProcessRequest(e, req, bindBody[model.RegistrationPayload], validateBody[model.RegistrationPayload]); err != nil {
		svcErr := asServiceError(err)
		l.Warn("invalid registration", zap.Strings("details", svcErr.Details), zap.String("error", svcErr.Message))
		return h.transportError(e, svcErr)
	}

	l.Info("registering team", zap.String("team_name", req.TeamName))

	res, err := h.registrations.Register(e.Request().Context(), req)
	if err != nil {
		l.Error("failed to register team", zap.String("team_name", req.TeamName), zap.Any("error", err))
		return h.transportError(e, err)
	}

	reg := res.Registration
	message := messageNoEmail
	if res.ConfirmationQueued {
		message = messageEmailQueued
	}

	return e.JSON(http.StatusCreated, &model.RegisterResponse{
		Success:               true,
		Message:               message,
		HackathonID:           reg.HackathonID,
		RegisteredAt:          reg.RegisteredAt.UTC().Format(model.RegisteredAtLayout),
		TeamName:              reg.TeamName,
		EmailSentTo:           reg.LeadEmail,
		ConfirmationEmailSent: res.ConfirmationQueued,
	})
}

func (h *Handler) GetRegistration(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	id := e.Param("id")

	l.Info("getting registration", zap.String("hackathon_id", id))

	reg, err := h.registrations.Get(e.Request().Context(), id)
	if err != nil {
		l.Warn("failed to get registration", zap.String("hackathon_id", id), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, model.NewRegistrationDetails(reg))
}

func (h *Handler) transportError(e echo.Context, err *service.Error) error {
	response := &model.ErrorResponse{
		Error:   err.Message,
		Code:    string(err.Code),
		Details: err.Details,
	}

	switch err.Code {
	case service.ErrorCodeInvalidBody:
		return e.JSON(http.StatusBadRequest, response)
	case service.ErrorCodeDuplicate:
		response.Error = "Duplicate registration."
		response.Message = err.Message
		return e.JSON(http.StatusConflict, response)
	case service.ErrorCodeNotFound:
		response.Error = "Not found."
		response.Message = err.Message
		return e.JSON(http.StatusNotFound, response)
	default:
		response.Error = "Internal server error."
		response.Message = "Registration failed. Please try again later."
		return e.JSON(http.StatusInternalServerError, response)
	}
}
