package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bizmatters/usdc-actions/internal/actions"
	"github.com/bizmatters/usdc-actions/internal/auth"
	"github.com/bizmatters/usdc-actions/internal/config"
	"github.com/bizmatters/usdc-actions/internal/kv"
	"github.com/bizmatters/usdc-actions/internal/metrics"
	"github.com/bizmatters/usdc-actions/internal/models"
	"github.com/bizmatters/usdc-actions/internal/solana"
)

const usdcMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

type staticBlockhash struct{}

func (staticBlockhash) LatestBlockhash(context.Context) (solanago.Hash, error) {
	return solanago.Hash{9, 9, 9}, nil
}

type countingBuilder struct {
	inner *solana.Builder
	calls int
	err   error
}

func (b *countingBuilder) BuildTransfer(ctx context.Context, t solana.Transfer) (*solanago.Transaction, error) {
	b.calls++
	if b.err != nil {
		return nil, b.err
	}
	return b.inner.BuildTransfer(ctx, t)
}

type testEnv struct {
	router  *gin.Engine
	builder *countingBuilder
	service *actions.Service
}

func newTestEnv(t *testing.T, jm *auth.JWTManager, authCfg config.AuthConfig) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	inner, err := solana.NewBuilder(usdcMint, 6, staticBlockhash{})
	require.NoError(t, err)
	builder := &countingBuilder{inner: inner}

	backend := kv.NewMemoryStore()
	svc := actions.NewService(backend, builder, "https://actions.example.com")
	h := NewHandler(svc, jm, authCfg, func(ctx context.Context) error { return kv.Ping(ctx, backend) }, zap.NewNop())

	router := NewRouter(RouterConfig{
		Handler:  h,
		Recorder: metrics.NewHTTPRecorder(),
		Log:      zap.NewNop(),
	})
	return &testEnv{router: router, builder: builder, service: svc}
}

func (e *testEnv) do(method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func validBody(recipient string) map[string]any {
	return map[string]any{
		"title":             "T",
		"icon":              "I",
		"description":       "D",
		"label":             "L",
		"predefinedAmounts": []float64{1, 5},
		"recipient":         recipient,
	}
}

func createApp(t *testing.T, e *testEnv) CreateAppResponse {
	t.Helper()
	w := e.do(http.MethodPost, "/app", validBody(solanago.NewWallet().PublicKey().String()), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp CreateAppResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreateApp(t *testing.T) {
	e := newTestEnv(t, nil, config.AuthConfig{})

	resp := createApp(t, e)
	assert.Equal(t, "USDC Transfer Action app created successfully", resp.Message)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "https://actions.example.com/endpoint/app/"+resp.ID, resp.Endpoints)
	require.Len(t, resp.Links.Actions, 2)
	assert.True(t, strings.HasSuffix(resp.Links.Actions[0].Href, "?amount=1"))
	assert.True(t, strings.HasSuffix(resp.Links.Actions[1].Href, "?amount=5"))
}

func TestCreateApp_Invalid(t *testing.T) {
	e := newTestEnv(t, nil, config.AuthConfig{})

	missingTitle := validBody(solanago.NewWallet().PublicKey().String())
	delete(missingTitle, "title")

	tests := []struct {
		name string
		body any
		code string
	}{
		{"malformed json", "{not json", models.ErrCodeInvalidRequest},
		{"missing title", missingTitle, models.ErrCodeInvalidSpec},
		{"bad recipient", validBody("not-an-address"), models.ErrCodeInvalidRecipient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.do(http.MethodPost, "/app", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestGetAndDeleteApp(t *testing.T) {
	e := newTestEnv(t, nil, config.AuthConfig{})
	created := createApp(t, e)

	w := e.do(http.MethodGet, "/app/"+created.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var spec models.Spec
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &spec))
	assert.Equal(t, created.ID, spec.ID)
	assert.Equal(t, []float64{1, 5}, spec.PredefinedAmounts)

	w = e.do(http.MethodDelete, "/app/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"App deleted successfully"}`, w.Body.String())

	// Idempotent
	w = e.do(http.MethodDelete, "/app/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.do(http.MethodGet, "/app/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = e.do(http.MethodGet, "/endpoint/app/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAction(t *testing.T) {
	e := newTestEnv(t, nil, config.AuthConfig{})
	created := createApp(t, e)

	w := e.do(http.MethodGet, "/endpoint/app/"+created.ID, nil, map[string]string{"X-Forwarded-Proto": "https"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, ActionVersion, w.Header().Get("X-Action-Version"))
	assert.Equal(t, BlockchainIDs, w.Header().Get("X-Blockchain-Ids"))

	var payload models.ActionGetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, models.ActionTypeAction, payload.Type)
	assert.Equal(t, "T", payload.Title)
	require.Len(t, payload.Links.Actions, 2)
	assert.Equal(t, "https://example.com/endpoint/app/"+created.ID+"/transfer?amount=1", payload.Links.Actions[0].Href)
	assert.Equal(t, "Send 5 USDC", payload.Links.Actions[1].Label)
}

func TestGetAction_ForwardedProto(t *testing.T) {
	e := newTestEnv(t, nil, config.AuthConfig{})
	created := createApp(t, e)

	tests := []struct {
		proto string
		want  string
	}{
		{"https, http", "https://example.com/"},
		{" HTTPS ", "https://example.com/"},
		{"http,https", "http://example.com/"},
		{"javascript", "http://example.com/"},
	}
	for _, tt := range tests {
		t.Run(tt.proto, func(t *testing.T) {
			w := e.do(http.MethodGet, "/endpoint/app/"+created.ID, nil, map[string]string{"X-Forwarded-Proto": tt.proto})
			require.Equal(t, http.StatusOK, w.Code)

			var payload models.ActionGetResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
			for _, link := range payload.Links.Actions {
				assert.True(t, strings.HasPrefix(link.Href, tt.want), link.Href)
			}
		})
	}
}

func TestGetAction_NotFound(t *testing.T) {
	e := newTestEnv(t, nil, config.AuthConfig{})

	w := e.do(http.MethodGet, "/endpoint/app/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"App not found"}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPostAction(t *testing.T) {
	e := newTestEnv(t, nil, config.AuthConfig{})
	created := createApp(t, e)
	account := solanago.NewWallet().PublicKey().String()

	for _, path := range []string{"/transfer?amount=2.5", "/transfer-usdc?amount=2.5"} {
		w := e.do(http.MethodPost, "/endpoint/app/"+created.ID+path, map[string]string{"account": account}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

		var resp models.ActionPostResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, models.ActionTypeTransaction, resp.Type)
		assert.NotEmpty(t, resp.Transaction)
		assert.Contains(t, resp.Message, "Send 2.5 USDC to ")
	}

	t.Run("defaults to first predefined amount", func(t *testing.T) {
		w := e.do(http.MethodPost, "/endpoint/app/"+created.ID+"/transfer", map[string]string{"account": account}, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Send 1 USDC")
	})
}

func TestPostAction_Errors(t *testing.T) {
	e := newTestEnv(t, nil, config.AuthConfig{})
	created := createApp(t, e)
	account := solanago.NewWallet().PublicKey().String()
	base := "/endpoint/app/" + created.ID + "/transfer"

	t.Run("invalid amounts never reach the builder", func(t *testing.T) {
		for _, q := range []string{"?amount=abc", "?amount=0", "?amount=-1", "?amount=NaN"} {
			w := e.do(http.MethodPost, base+q, map[string]string{"account": account}, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, q)
		}
		assert.Zero(t, e.builder.calls)
	})

	t.Run("invalid account", func(t *testing.T) {
		w := e.do(http.MethodPost, base+"?amount=1", map[string]string{"account": "nope"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, e.builder.calls)
	})

	t.Run("unknown app", func(t *testing.T) {
		w := e.do(http.MethodPost, "/endpoint/app/missing/transfer?amount=1", map[string]string{"account": account}, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"App not found"}`, w.Body.String())
	})

	t.Run("build failure", func(t *testing.T) {
		e.builder.err = errors.New("rpc down")
		defer func() { e.builder.err = nil }()

		w := e.do(http.MethodPost, base+"?amount=1", map[string]string{"account": account}, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "error")
	})
}

func TestOptionsAndActionsJSON(t *testing.T) {
	e := newTestEnv(t, nil, config.AuthConfig{})

	w := e.do(http.MethodOptions, "/endpoint/app/anything/transfer", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "GET,POST,PUT,OPTIONS,DELETE", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization, Content-Encoding, Accept-Encoding", w.Header().Get("Access-Control-Allow-Headers"))

	w = e.do(http.MethodGet, "/actions.json", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"rules":[{"pathPattern":"/endpoint/app/**","apiPath":"/endpoint/app/**"}]}`, w.Body.String())
}

func TestHealthReadyMetrics(t *testing.T) {
	e := newTestEnv(t, nil, config.AuthConfig{})

	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/health", nil, nil).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/ready", nil, nil).Code)

	w := e.do(http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "usdc_actions_http_requests_total")
}

func TestReady_Failure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, nil, config.AuthConfig{}, func(context.Context) error { return errors.New("down") }, nil)
	router := NewRouter(RouterConfig{Handler: h})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAdminAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	jm, err := auth.NewJWTManager("jwt-secret", "usdc-actions")
	require.NoError(t, err)

	e := newTestEnv(t, jm, config.AuthConfig{
		JWTSecret:         "jwt-secret",
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
		TokenTTL:          time.Hour,
	})
	body := validBody(solanago.NewWallet().PublicKey().String())

	w := e.do(http.MethodPost, "/app", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(http.MethodPost, "/auth/login", models.LoginRequest{Username: "admin", Password: "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(http.MethodPost, "/auth/login", models.LoginRequest{Username: "admin", Password: "s3cret-pass"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var login models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	bearer := map[string]string{"Authorization": "Bearer " + login.Token}
	w = e.do(http.MethodPost, "/app", body, bearer)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = e.do(http.MethodPost, "/auth/refresh", nil, bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	// Public action routes stay open
	var created CreateAppResponse
	w = e.do(http.MethodPost, "/app", body, bearer)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/endpoint/app/"+created.ID, nil, nil).Code)
}

func TestLogin_Disabled(t *testing.T) {
	e := newTestEnv(t, nil, config.AuthConfig{})
	w := e.do(http.MethodPost, "/auth/login", models.LoginRequest{Username: "admin", Password: "x"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
