package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bizmatters/usdc-actions/internal/models"
)

// CreateAppResponse is returned by POST /app
type CreateAppResponse struct {
	Message   string       `json:"message"`
	ID        string       `json:"id"`
	Endpoints string       `json:"endpoints"`
	Links     models.Links `json:"links"`
}

// CreateApp godoc
// @Summary Create USDC transfer action app
// @Description Validate and persist an action spec, returning its public discovery endpoint
// @Tags apps
// @Accept json
// @Produce json
// @Param request body models.ActionSpec true "Action spec"
// @Success 201 {object} CreateAppResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /app [post]
func (h *Handler) CreateApp(c *gin.Context) {
	var req models.ActionSpec
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid input data", Code: models.ErrCodeInvalidRequest})
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		status, code := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.log.Error("failed to create app", zap.Error(err))
			c.JSON(status, models.ErrorResponse{Error: "Failed to create USDC Transfer Action app", Code: code})
			return
		}
		c.JSON(status, models.ErrorResponse{Error: err.Error(), Code: code})
		return
	}

	c.JSON(http.StatusCreated, CreateAppResponse{
		Message:   "USDC Transfer Action app created successfully",
		ID:        result.ID,
		Endpoints: result.Endpoint,
		Links:     result.Spec.Links,
	})
}

// GetApp godoc
// @Summary Get action app
// @Description Return the stored spec of an action app
// @Tags apps
// @Produce json
// @Param id path string true "App ID"
// @Success 200 {object} models.Spec
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /app/{id} [get]
func (h *Handler) GetApp(c *gin.Context) {
	spec, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, code := statusFor(err)
		if status == http.StatusNotFound {
			c.JSON(status, models.ErrorResponse{Error: "App not found", Code: code})
			return
		}
		h.log.Error("failed to load app", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(status, models.ErrorResponse{Error: "Failed to load app", Code: code})
		return
	}
	c.JSON(http.StatusOK, spec)
}

// DeleteApp godoc
// @Summary Delete action app
// @Description Remove an action app. Deleting an unknown id succeeds.
// @Tags apps
// @Produce json
// @Param id path string true "App ID"
// @Success 200 {object} map[string]string
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /app/{id} [delete]
func (h *Handler) DeleteApp(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Error("failed to delete app", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to delete app", Code: models.ErrCodeStorageFailure})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "App deleted successfully"})
}
