package gateway

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bizmatters/usdc-actions/internal/models"
)

// GetAction godoc
// @Summary Action discovery
// @Description Solana Actions GET payload for an app
// @Tags actions
// @Produce json
// @Param id path string true "App ID"
// @Success 200 {object} models.ActionGetResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /endpoint/app/{id} [get]
func (h *Handler) GetAction(c *gin.Context) {
	payload, err := h.service.Render(c.Request.Context(), c.Param("id"), requestOrigin(c))
	if err != nil {
		status, _ := statusFor(err)
		if status == http.StatusNotFound {
			c.JSON(status, gin.H{"error": "App not found"})
			return
		}
		h.log.Error("failed to render action", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(status, gin.H{"error": "Failed to load app"})
		return
	}
	c.JSON(http.StatusOK, payload)
}

// PostAction godoc
// @Summary Action execution
// @Description Build an unsigned USDC transfer from account to the app's recipient
// @Tags actions
// @Accept json
// @Produce json
// @Param id path string true "App ID"
// @Param amount query number false "Amount in USDC; defaults to the first predefined amount"
// @Param request body models.ActionPostRequest true "Payer account"
// @Success 200 {object} models.ActionPostResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /endpoint/app/{id}/transfer [post]
func (h *Handler) PostAction(c *gin.Context) {
	amount, err := queryAmount(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	var req models.ActionPostRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if amount == nil {
		amount = req.Amount
	}

	resp, err := h.service.Execute(c.Request.Context(), c.Param("id"), req.Account, amount)
	if err != nil {
		status, _ := statusFor(err)
		switch status {
		case http.StatusNotFound:
			c.JSON(status, gin.H{"error": "App not found"})
		case http.StatusBadRequest:
			c.JSON(status, gin.H{"error": err.Error()})
		default:
			h.log.Error("failed to execute action", zap.String("id", c.Param("id")), zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to execute USDC Transfer Action app"})
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActionsJSON godoc
// @Summary Actions rules
// @Description Maps public paths onto the action API
// @Tags actions
// @Produce json
// @Success 200 {object} models.ActionsJSON
// @Router /actions.json [get]
func (h *Handler) ActionsJSON(c *gin.Context) {
	c.JSON(http.StatusOK, models.ActionsJSON{
		Rules: []models.ActionRule{
			{PathPattern: "/endpoint/app/**", APIPath: "/endpoint/app/**"},
		},
	})
}

// Options answers CORS preflight requests.
func (h *Handler) Options(c *gin.Context) {
	c.Status(http.StatusOK)
}

var errNonPositiveAmount = errors.New("amount must be a positive number")

// queryAmount parses the optional amount query parameter. An absent
// parameter yields nil; anything that is not a positive finite number is an error.
func queryAmount(c *gin.Context) (*float64, error) {
	raw, ok := c.GetQuery("amount")
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return nil, errNonPositiveAmount
	}
	return &v, nil
}

// requestOrigin rebuilds scheme://host of the incoming request, honoring
// a TLS-terminating proxy.
func requestOrigin(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		// A proxy chain appends its own scheme; the first hop is the client's.
		first, _, _ := strings.Cut(proto, ",")
		switch first = strings.ToLower(strings.TrimSpace(first)); first {
		case "http", "https":
			scheme = first
		}
	}
	return scheme + "://" + c.Request.Host
}
