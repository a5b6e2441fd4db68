package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/FeoreV/telegram-ecommerce-cms-sub017/pkg/notifications"
)

const defaultAPIBase = "https://api.telegram.org"

// Config holds the bot transport configuration.
type Config struct {
	BotToken string        `env:"TELEGRAM_BOT_TOKEN,required"`
	Timeout  time.Duration `env:"TELEGRAM_SEND_TIMEOUT" envDefault:"10s"`
}

// Adapter delivers notifications through the Telegram Bot API. Recipient ids
// on the TELEGRAM channel are chat ids.
type Adapter struct {
	token   string
	apiBase string
	client  *http.Client
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithAPIBase overrides the Bot API base URL. Used by tests.
func WithAPIBase(base string) AdapterOption {
	return func(a *Adapter) {
		a.apiBase = base
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) AdapterOption {
	return func(a *Adapter) {
		a.client = client
	}
}

// NewAdapter creates a Telegram channel adapter. The per-attempt timeout
// lives on the HTTP client so one slow Bot API call cannot exceed it.
func NewAdapter(cfg Config, opts ...AdapterOption) (*Adapter, error) {
	if cfg.BotToken == "" {
		return nil, ErrMissingBotToken
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	a := &Adapter{
		token:   cfg.BotToken,
		apiBase: defaultAPIBase,
		client:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *Adapter) Channel() notifications.Channel {
	return notifications.ChannelTelegram
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (a *Adapter) AttemptDeliver(ctx context.Context, recipientID string, payload notifications.Payload) error {
	text := fmt.Sprintf("<b>%s</b>\n%s", html.EscapeString(payload.Title), html.EscapeString(payload.Message))

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    recipientID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sendMessage request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", a.apiBase, a.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	var apiResp sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("%w: failed to decode response (status %d): %w", ErrDeliveryFailed, resp.StatusCode, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("%w: telegram api: %s (status %d)", ErrDeliveryFailed, apiResp.Description, resp.StatusCode)
	}
	return nil
}
