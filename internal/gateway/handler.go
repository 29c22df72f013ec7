package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bizmatters/usdc-actions/internal/actions"
	"github.com/bizmatters/usdc-actions/internal/auth"
	"github.com/bizmatters/usdc-actions/internal/config"
	"github.com/bizmatters/usdc-actions/internal/models"
)

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// Handler handles HTTP requests for the gateway layer
type Handler struct {
	service     *actions.Service
	jwtManager  *auth.JWTManager
	credentials auth.Credentials
	tokenTTL    time.Duration
	ready       ReadinessCheck
	log         *zap.Logger
}

// NewHandler creates a new gateway handler. jwtManager is nil when admin
// auth is disabled.
func NewHandler(service *actions.Service, jwtManager *auth.JWTManager, authCfg config.AuthConfig, ready ReadinessCheck, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		service:    service,
		jwtManager: jwtManager,
		credentials: auth.Credentials{
			Username:     authCfg.AdminUsername,
			PasswordHash: authCfg.AdminPasswordHash,
		},
		tokenTTL: authCfg.TokenTTL,
		ready:    ready,
		log:      log,
	}
}

// Login godoc
// @Summary Admin login
// @Description Authenticate the admin account and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	if h.jwtManager == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Authentication is disabled"})
		return
	}

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.credentials.Verify(req.Username, req.Password); err != nil {
		h.log.Warn("login rejected", zap.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, expiresAt, err := h.jwtManager.GenerateToken(c.Request.Context(), req.Username, req.Username, []string{auth.RoleAdmin}, h.tokenTTL)
	if err != nil {
		h.log.Error("failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	h.log.Info("admin logged in", zap.String("username", req.Username))
	c.JSON(http.StatusOK, models.LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// RefreshToken godoc
// @Summary Refresh admin token
// @Description Exchange a valid bearer token for a new one
// @Tags auth
// @Produce json
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /auth/refresh [post]
func (h *Handler) RefreshToken(c *gin.Context) {
	if h.jwtManager == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Authentication is disabled"})
		return
	}

	token := auth.ExtractBearerToken(c.GetHeader("Authorization"))
	refreshed, expiresAt, err := h.jwtManager.RefreshToken(c.Request.Context(), token, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	c.JSON(http.StatusOK, models.LoginResponse{Token: refreshed, ExpiresAt: expiresAt})
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Ready godoc
// @Summary Readiness probe
// @Description Reports whether spec storage is reachable
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /ready [get]
func (h *Handler) Ready(c *gin.Context) {
	if h.ready != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ready(ctx); err != nil {
			h.log.Warn("readiness check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": "storage unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// statusFor maps service errors onto HTTP status codes and error codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, actions.ErrSpecNotFound):
		return http.StatusNotFound, models.ErrCodeNotFound
	case errors.Is(err, actions.ErrInvalidRecipientAddress):
		return http.StatusBadRequest, models.ErrCodeInvalidRecipient
	case errors.Is(err, actions.ErrInvalidSpec):
		return http.StatusBadRequest, models.ErrCodeInvalidSpec
	case errors.Is(err, actions.ErrInvalidAccount):
		return http.StatusBadRequest, models.ErrCodeInvalidAccount
	case errors.Is(err, actions.ErrInvalidAmount):
		return http.StatusBadRequest, models.ErrCodeInvalidAmount
	case errors.Is(err, actions.ErrTransactionBuildFailed):
		return http.StatusInternalServerError, models.ErrCodeBuildFailed
	case errors.Is(err, actions.ErrStorageFailure):
		return http.StatusInternalServerError, models.ErrCodeStorageFailure
	default:
		return http.StatusInternalServerError, models.ErrCodeInternalError
	}
}
