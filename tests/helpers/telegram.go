package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bizmatters/usdc-actions/internal/telegram"
)

const (
	// BotToken is the token the fake Bot API answers to.
	BotToken = "100:test-token"
	// WebhookSecret is the secret test stacks require on webhook calls.
	WebhookSecret = "test-webhook-secret"
	// IconFileID names the only file the fake Bot API can serve.
	IconFileID = "icon-file"
)

// JPEG magic bytes followed by padding.
var iconBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, []byte("fake-jpeg-body")...)

// SentMessage is a sendMessage call seen by the fake Bot API.
type SentMessage struct {
	ChatID int64
	Text   string
}

// FakeTelegram is an in-process Bot API server.
type FakeTelegram struct {
	mu   sync.Mutex
	sent []SentMessage
}

// NewFakeTelegram starts a fake Bot API and returns a Bot connected to it.
func NewFakeTelegram(t *testing.T) (*FakeTelegram, *telegram.Bot) {
	t.Helper()
	f := &FakeTelegram{}
	server := httptest.NewServer(f.handler())
	t.Cleanup(server.Close)

	bot, err := telegram.NewBotWithEndpoints(BotToken, server.URL+"/bot%s/%s", server.URL+"/file/bot%s/%s", server.Client(), zap.NewNop())
	require.NoError(t, err)
	return f, bot
}

// Sent returns every message sent to chatID, in order.
func (f *FakeTelegram) Sent(chatID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, m := range f.sent {
		if m.ChatID == chatID {
			out = append(out, m.Text)
		}
	}
	return out
}

func (f *FakeTelegram) handler() http.Handler {
	reply := func(w http.ResponseWriter, result any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": result})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/bot"+BotToken+"/getMe", func(w http.ResponseWriter, r *http.Request) {
		reply(w, map[string]any{"id": 100, "is_bot": true, "first_name": "USDC", "username": "usdc_actions_bot"})
	})
	mux.HandleFunc("/bot"+BotToken+"/sendMessage", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		chatID, _ := strconv.ParseInt(r.PostForm.Get("chat_id"), 10, 64)
		f.mu.Lock()
		f.sent = append(f.sent, SentMessage{ChatID: chatID, Text: r.PostForm.Get("text")})
		f.mu.Unlock()
		reply(w, map[string]any{"message_id": 1, "date": 0, "chat": map[string]any{"id": chatID, "type": "private"}})
	})
	mux.HandleFunc("/bot"+BotToken+"/getFile", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("file_id") != IconFileID {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error_code": 400, "description": "Bad Request: invalid file_id"})
			return
		}
		reply(w, map[string]any{"file_id": IconFileID, "file_unique_id": "u1", "file_path": "photos/icon.jpg"})
	})
	mux.HandleFunc("/file/bot"+BotToken+"/photos/icon.jpg", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(iconBytes)
	})
	return mux
}

// TextUpdate builds an update carrying text from chatID. Text starting
// with "/" is marked as a bot command.
func TextUpdate(chatID int64, text string) tgbotapi.Update {
	msg := &tgbotapi.Message{
		MessageID: 1,
		Chat:      &tgbotapi.Chat{ID: chatID, Type: "private"},
		Text:      text,
	}
	if strings.HasPrefix(text, "/") {
		length := len(text)
		if i := strings.IndexByte(text, ' '); i > 0 {
			length = i
		}
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}}
	}
	return tgbotapi.Update{UpdateID: 1, Message: msg}
}

// PhotoUpdate builds an update carrying a photo upload from chatID.
func PhotoUpdate(chatID int64, fileID string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			MessageID: 1,
			Chat:      &tgbotapi.Chat{ID: chatID, Type: "private"},
			Photo: []tgbotapi.PhotoSize{
				{FileID: "thumb", FileUniqueID: "t", Width: 90, Height: 90},
				{FileID: fileID, FileUniqueID: "p", Width: 640, Height: 640},
			},
		},
	}
}
