package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dad-ventas/sales-platform/internal/api/metrics"
	"github.com/dad-ventas/sales-platform/internal/core/domain"
	"github.com/dad-ventas/sales-platform/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
	Name     string `json:"name"`
	Document string `json:"document"`
	Telefono string `json:"telefono"`
}

// tokenResponse is the wire shape shared by login and validate. clientId is
// null until the account is linked to an external client record.
type tokenResponse struct {
	Token    string `json:"token"`
	UserName string `json:"userName"`
	Role     string `json:"role"`
	ClientID *int64 `json:"clientId"`
	ID       int64  `json:"id"`
}

func toTokenResponse(claims *domain.SessionClaims) tokenResponse {
	return tokenResponse{
		Token:    claims.Token,
		UserName: claims.Username,
		Role:     claims.Role,
		ClientID: claims.ClientID,
		ID:       claims.UserID,
	}
}

// Login authenticates a username/password pair and returns a fresh session
// token with the resolved claims.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claims, err := h.authService.Login(c.Request().Context(), req.UserName, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toTokenResponse(claims))
}

// Validate verifies the token passed as a query parameter and returns its
// current claims. Consumed by the gateway; the token in the response is the
// original string, unchanged.
func (h *AuthHandler) Validate(c echo.Context) error {
	tok := c.QueryParam("token")
	if tok == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing token")
	}

	claims, err := h.authService.Validate(c.Request().Context(), tok)
	if err != nil {
		metrics.ValidationsTotal.WithLabelValues(validateResult(err)).Inc()
		return err
	}

	metrics.ValidationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toTokenResponse(claims))
}

// Register creates a new account. The linked client record is provisioned
// asynchronously; the returned account is initially unlinked.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.UserName,
		Password: req.Password,
		Role:     req.Role,
		Name:     req.Name,
		Document: req.Document,
		Phone:    req.Telefono,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registerResult(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, user)
}

// Users lists all registered accounts.
func (h *AuthHandler) Users(c echo.Context) error {
	users, err := h.authService.Users(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func validateResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func registerResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return "duplicate"
	case errors.Is(err, domain.ErrInvalidRole), errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid"
	default:
		return "error"
	}
}
