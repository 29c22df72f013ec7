package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	_ "github.com/bizmatters/usdc-actions/docs" // swagger docs
	"github.com/bizmatters/usdc-actions/internal/actions"
	"github.com/bizmatters/usdc-actions/internal/auth"
	"github.com/bizmatters/usdc-actions/internal/gateway"
	"github.com/bizmatters/usdc-actions/internal/icons"
	"github.com/bizmatters/usdc-actions/internal/kv"
	"github.com/bizmatters/usdc-actions/internal/metrics"
	"github.com/bizmatters/usdc-actions/internal/solana"
	"github.com/bizmatters/usdc-actions/internal/telegram"
	"github.com/bizmatters/usdc-actions/internal/wizard"
)

const jwtIssuer = "usdc-actions"

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Initialize OpenTelemetry
	if cfg.Tracing.Enabled {
		tp, err := initTracer()
		if err != nil {
			return fmt.Errorf("failed to initialize tracer: %w", err)
		}
		defer func() { _ = tp.Shutdown(context.Background()) }()
	}

	log.Info("opening spec storage", zap.String("driver", cfg.Storage.Driver))
	specs, err := kv.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open spec storage: %w", err)
	}
	defer specs.Close()

	sessions := specs
	if sc := cfg.SessionStorage(); sc != cfg.Storage {
		log.Info("opening session storage", zap.String("driver", sc.Driver))
		sessions, err = kv.Open(ctx, sc)
		if err != nil {
			return fmt.Errorf("failed to open session storage: %w", err)
		}
		defer sessions.Close()
	}

	actionMetrics, err := metrics.NewActionMetrics()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	// Transaction building
	blockhash := solana.NewRPCBlockhashSource(cfg.Solana.RPCURL, log)
	builder, err := solana.NewBuilder(cfg.Solana.Mint, cfg.Solana.Decimals, blockhash)
	if err != nil {
		return fmt.Errorf("failed to initialize transaction builder: %w", err)
	}

	service := actions.NewService(specs, builder, cfg.Server.BaseURL,
		actions.WithLogger(log),
		actions.WithMetrics(actionMetrics),
		actions.WithTokenSymbol(cfg.Solana.TokenSymbol),
		actions.WithDecimals(cfg.Solana.Decimals),
	)

	var jwtManager *auth.JWTManager
	if cfg.Auth.Enabled() {
		jwtManager, err = auth.NewJWTManager(cfg.Auth.JWTSecret, jwtIssuer)
		if err != nil {
			return fmt.Errorf("failed to initialize JWT manager: %w", err)
		}
	} else {
		log.Warn("admin auth disabled; /app routes are open")
	}

	iconStore, err := icons.Open(ctx, cfg.Icons)
	if err != nil {
		return fmt.Errorf("failed to open icon storage: %w", err)
	}

	routerCfg := gateway.RouterConfig{
		Handler: gateway.NewHandler(service, jwtManager, cfg.Auth, func(ctx context.Context) error {
			return kv.Ping(ctx, specs)
		}, log),
		Recorder: metrics.NewHTTPRecorder(),
		Log:      log,
	}
	if fs, ok := iconStore.(*icons.FileStore); ok {
		routerCfg.IconDir = fs.Dir()
	}

	if cfg.Telegram.BotToken != "" {
		bot, err := telegram.NewBot(cfg.Telegram.BotToken, log)
		if err != nil {
			return fmt.Errorf("failed to initialize telegram bot: %w", err)
		}
		machine := wizard.Machine{
			DefaultIconURL: cfg.Telegram.DefaultIconURL,
			ShareBaseURL:   cfg.Telegram.ShareBaseURL,
		}
		wiz := wizard.New(machine, sessions, service, bot, iconStore,
			wizard.WithLogger(log),
			wizard.WithMetrics(actionMetrics),
		)
		routerCfg.Webhook = telegram.NewWebhookHandler(cfg.Telegram.SecretToken, wiz, bot, log).Handle
	} else {
		log.Info("BOT_TOKEN not set; telegram wizard disabled")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      gateway.NewRouter(routerCfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting USDC Actions API server", zap.Int("port", cfg.Server.Port), zap.String("base_url", cfg.Server.BaseURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}
	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server exited")
	return nil
}

// initTracer initializes OpenTelemetry tracing
func initTracer() (*trace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
	)

	otel.SetTracerProvider(tp)

	return tp, nil
}
