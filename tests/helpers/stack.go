package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bizmatters/usdc-actions/internal/actions"
	"github.com/bizmatters/usdc-actions/internal/auth"
	"github.com/bizmatters/usdc-actions/internal/config"
	"github.com/bizmatters/usdc-actions/internal/gateway"
	"github.com/bizmatters/usdc-actions/internal/icons"
	"github.com/bizmatters/usdc-actions/internal/kv"
	"github.com/bizmatters/usdc-actions/internal/metrics"
	"github.com/bizmatters/usdc-actions/internal/solana"
	"github.com/bizmatters/usdc-actions/internal/telegram"
	"github.com/bizmatters/usdc-actions/internal/wizard"
)

// TestBlockhash is the blockhash every test transaction is built against.
var TestBlockhash = solanago.Hash{7, 7, 7}

type staticBlockhash struct{}

func (staticBlockhash) LatestBlockhash(context.Context) (solanago.Hash, error) {
	return TestBlockhash, nil
}

// StackOptions selects the storage and auth of a test stack.
type StackOptions struct {
	Specs    kv.Store
	Sessions kv.Store
	Auth     config.AuthConfig
}

// Stack is the full service wired the way cmd/api wires it, with a fake
// Telegram API and a static blockhash in place of the network.
type Stack struct {
	Router   *gin.Engine
	Service  *actions.Service
	Telegram *FakeTelegram
	IconDir  string
}

// NewStack builds a test stack. Nil stores default to memory.
func NewStack(t *testing.T, opts StackOptions) *Stack {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	if opts.Specs == nil {
		opts.Specs = kv.NewMemoryStore()
	}
	if opts.Sessions == nil {
		opts.Sessions = opts.Specs
	}

	actionMetrics, err := metrics.NewActionMetrics()
	require.NoError(t, err)

	builder, err := solana.NewBuilder(USDCMint, 6, staticBlockhash{})
	require.NoError(t, err)
	service := actions.NewService(opts.Specs, builder, BaseURL,
		actions.WithLogger(log),
		actions.WithMetrics(actionMetrics),
		actions.WithDecimals(6),
	)

	var jwtManager *auth.JWTManager
	if opts.Auth.Enabled() {
		jwtManager, err = auth.NewJWTManager(opts.Auth.JWTSecret, "usdc-actions")
		require.NoError(t, err)
	}

	iconDir := t.TempDir()
	iconStore, err := icons.NewFileStore(iconDir, BaseURL+"/icons")
	require.NoError(t, err)

	fake, bot := NewFakeTelegram(t)
	wiz := wizard.New(wizard.Machine{
		DefaultIconURL: config.DefaultIconURL,
		ShareBaseURL:   "https://dial.to",
	}, opts.Sessions, service, bot, iconStore,
		wizard.WithLogger(log),
		wizard.WithMetrics(actionMetrics),
	)

	router := gateway.NewRouter(gateway.RouterConfig{
		Handler: gateway.NewHandler(service, jwtManager, opts.Auth, func(ctx context.Context) error {
			return kv.Ping(ctx, opts.Specs)
		}, log),
		Webhook:  telegram.NewWebhookHandler(WebhookSecret, wiz, bot, log).Handle,
		Recorder: metrics.NewHTTPRecorder(),
		IconDir:  iconDir,
		Log:      log,
	})

	return &Stack{Router: router, Service: service, Telegram: fake, IconDir: iconDir}
}

// Do sends a JSON request through the router.
func (s *Stack) Do(method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

// Webhook posts an update to the Telegram webhook with the right secret.
func (s *Stack) Webhook(t *testing.T, update any) {
	t.Helper()
	w := s.Do(http.MethodPost, "/telegram-bot/webhook", update, map[string]string{telegram.SecretHeader: WebhookSecret})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
