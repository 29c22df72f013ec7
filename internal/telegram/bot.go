// Package telegram connects the authoring wizard to a Telegram bot.
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// maxFileSize caps icon downloads. Telegram bots cannot fetch files above 20MB.
const maxFileSize = 20 << 20

// Bot is a Telegram Bot API client used to answer authors and fetch uploads.
type Bot struct {
	api          *tgbotapi.BotAPI
	client       *http.Client
	fileEndpoint string
	log          *zap.Logger
}

// NewBot authenticates against the public Bot API.
func NewBot(token string, log *zap.Logger) (*Bot, error) {
	return NewBotWithEndpoints(token, tgbotapi.APIEndpoint, tgbotapi.FileEndpoint, &http.Client{Timeout: 30 * time.Second}, log)
}

// NewBotWithEndpoints is NewBot against custom API and file endpoint
// formats, as used by tgbotapi ("%s" for the token then the method or path).
func NewBotWithEndpoints(token, apiEndpoint, fileEndpoint string, client *http.Client, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, apiEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	log.Info("telegram bot authorized", zap.String("username", api.Self.UserName))

	return &Bot{
		api:          api,
		client:       client,
		fileEndpoint: fileEndpoint,
		log:          log,
	}, nil
}

// SendText sends a plain text message to a chat.
func (b *Bot) SendText(_ context.Context, chatID int64, text string) error {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send message to %d: %w", chatID, err)
	}
	return nil
}

// FetchFile downloads an uploaded file by its file id.
func (b *Bot) FetchFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", fileID, err)
	}

	url := fmt.Sprintf(b.fileEndpoint, b.api.Token, file.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create file request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file %s: status %d", fileID, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", fileID, err)
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("file %s exceeds %d bytes", fileID, maxFileSize)
	}
	return data, nil
}

// SetWebhook registers url as the update target, signed with secret.
func (b *Bot) SetWebhook(url, secret string) error {
	_, err := b.api.MakeRequest("setWebhook", tgbotapi.Params{
		"url":          url,
		"secret_token": secret,
	})
	if err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	return nil
}
