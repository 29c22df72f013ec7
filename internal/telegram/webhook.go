package telegram

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/bizmatters/usdc-actions/internal/wizard"
)

// SecretHeader carries the secret registered with setWebhook.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// ErrUnauthorized is returned when a webhook call carries the wrong secret.
var ErrUnauthorized = errors.New("unauthorized webhook call")

// Messenger sends replies back to a chat.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// Conversation advances the per-author dialogue.
type Conversation interface {
	Handle(ctx context.Context, author string, in wizard.Input) ([]string, error)
}

// WebhookHandler receives Telegram updates.
type WebhookHandler struct {
	secret    string
	wizard    Conversation
	messenger Messenger
	log       *zap.Logger
	tracer    trace.Tracer
}

// NewWebhookHandler creates a handler that only accepts calls carrying secret.
func NewWebhookHandler(secret string, conv Conversation, messenger Messenger, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		secret:    secret,
		wizard:    conv,
		messenger: messenger,
		log:       log,
		tracer:    otel.Tracer("telegram-webhook"),
	}
}

// CheckSecret compares the presented secret with the expected one in
// constant time. An empty expected secret rejects every call.
func CheckSecret(expected, presented string) error {
	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(presented)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// Handle godoc
// @Summary Telegram webhook
// @Description Receives bot updates and drives the authoring wizard
// @Tags telegram
// @Accept json
// @Produce plain
// @Param X-Telegram-Bot-Api-Secret-Token header string true "Webhook secret"
// @Success 200 {string} string "OK"
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Error processing update"
// @Router /telegram-bot/webhook [post]
func (h *WebhookHandler) Handle(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "telegram.webhook")
	defer span.End()

	if err := CheckSecret(h.secret, c.GetHeader(SecretHeader)); err != nil {
		h.log.Warn("invalid webhook secret", zap.String("client_ip", c.ClientIP()))
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.String(http.StatusBadRequest, "Invalid update")
		return
	}
	span.SetAttributes(attribute.Int("telegram.update_id", update.UpdateID))

	chatID, in, ok := Translate(update)
	if !ok {
		c.String(http.StatusOK, "OK")
		return
	}
	author := strconv.FormatInt(chatID, 10)
	span.SetAttributes(attribute.String("wizard.author", author))

	replies, err := h.wizard.Handle(ctx, author, in)
	// Replies computed before a session save failure are still delivered.
	for _, text := range replies {
		if sendErr := h.messenger.SendText(ctx, chatID, text); sendErr != nil {
			h.log.Error("failed to send reply", zap.Int64("chat_id", chatID), zap.Error(sendErr))
			err = errors.Join(err, sendErr)
		}
	}
	if err != nil {
		span.RecordError(err)
		h.log.Error("error processing update", zap.Int("update_id", update.UpdateID), zap.Error(err))
		c.String(http.StatusInternalServerError, "Error processing update")
		return
	}

	c.String(http.StatusOK, "OK")
}

// Translate maps an update to the chat it came from and a wizard input.
// Updates the wizard does not handle report ok=false.
func Translate(update tgbotapi.Update) (int64, wizard.Input, bool) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return 0, nil, false
	}
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch name := msg.Command(); name {
		case wizard.CommandStart, wizard.CommandCreate, wizard.CommandCancel:
			return chatID, wizard.Command{Name: name}, true
		}
		return chatID, wizard.Text{Body: msg.Text}, true
	}

	if n := len(msg.Photo); n > 0 {
		// Photo sizes are ordered smallest first.
		return chatID, wizard.Image{FileID: msg.Photo[n-1].FileID}, true
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return chatID, wizard.Image{FileID: msg.Document.FileID}, true
	}
	if msg.Text != "" {
		return chatID, wizard.Text{Body: msg.Text}, true
	}
	return 0, nil, false
}
