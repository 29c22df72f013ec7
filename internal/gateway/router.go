package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/bizmatters/usdc-actions/internal/auth"
	"github.com/bizmatters/usdc-actions/internal/logging"
	"github.com/bizmatters/usdc-actions/internal/metrics"
)

// RouterConfig wires the optional parts of the HTTP surface.
type RouterConfig struct {
	Handler *Handler
	// Webhook is nil when the Telegram bot is disabled.
	Webhook  gin.HandlerFunc
	Recorder *metrics.HTTPRecorder
	// IconDir is served at /icons when icons are stored locally.
	IconDir string
	Log     *zap.Logger
}

// NewRouter builds the gin engine serving every route of the service.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	h := cfg.Handler

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logging.Middleware(log))
	if cfg.Recorder != nil {
		router.Use(cfg.Recorder.Middleware())
		router.GET("/metrics", gin.WrapH(cfg.Recorder.Handler()))
	}

	// Health checks MUST be at the root for the WebService standard
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public action routes
	router.GET("/actions.json", ActionCORS(), h.ActionsJSON)
	endpoint := router.Group("/endpoint/app")
	endpoint.Use(ActionCORS())
	endpoint.GET("/:id", h.GetAction)
	endpoint.POST("/:id/transfer", h.PostAction)
	endpoint.POST("/:id/transfer-usdc", h.PostAction)

	// Preflight for every path
	router.OPTIONS("/*path", ActionCORS(), h.Options)

	if cfg.Webhook != nil {
		router.POST("/telegram-bot/webhook", cfg.Webhook)
	}
	if cfg.IconDir != "" {
		router.StaticFS("/icons", http.Dir(cfg.IconDir))
	}

	// Authoring routes, guarded when auth is enabled
	router.POST("/auth/login", h.Login)
	router.POST("/auth/refresh", h.RefreshToken)
	apps := router.Group("/app")
	if h.jwtManager != nil {
		apps.Use(auth.RequireAuth(h.jwtManager, log), auth.RequireRole(auth.RoleAdmin, log))
	}
	apps.POST("", h.CreateApp)
	apps.GET("/:id", h.GetApp)
	apps.DELETE("/:id", h.DeleteApp)

	return router
}
