package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lottopantera/draw-engine/internal/config"
	"github.com/lottopantera/draw-engine/internal/models"
)

// Client delivers draw notifications to a Telegram channel. Delivery is
// fire-and-forget from the engine's point of view; the broadcaster retries
// failures out-of-band.
type Client interface {
	Send(ctx context.Context, event models.NotificationEvent) error
}

// BotClient posts messages through the Telegram Bot API
type BotClient struct {
	botToken   string
	chatID     string
	httpClient *http.Client
}

// MockClient is a telegram stand-in for development and testing
type MockClient struct{}

// NewClient creates a telegram client according to configuration
func NewClient(cfg *config.Config) Client {
	if cfg.Telegram.MockTelegram {
		return &MockClient{}
	}
	return &BotClient{
		botToken: cfg.Telegram.BotToken,
		chatID:   cfg.Telegram.ChatID,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Telegram.TimeoutSecs) * time.Second,
		},
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Send posts the event as a channel message
func (c *BotClient) Send(ctx context.Context, event models.NotificationEvent) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      formatMessage(event),
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("failed to encode telegram message: %w", err)
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// Send is a no-op
func (c *MockClient) Send(_ context.Context, _ models.NotificationEvent) error {
	return nil
}

func formatMessage(event models.NotificationEvent) string {
	draw := event.Payload
	switch event.Kind {
	case models.EventPublished:
		return fmt.Sprintf("<b>%s</b> %s\nResultado: <b>%s</b>", draw.TemplateName, draw.DrawTime, draw.WinningNumber)
	case models.EventWinnerPreselected, models.EventWinnerChanged:
		return fmt.Sprintf("<b>%s</b> %s\nGanador actualizado", draw.TemplateName, draw.DrawTime)
	default:
		return fmt.Sprintf("<b>%s</b> %s\nEstado: %s", draw.TemplateName, draw.DrawTime, draw.Status)
	}
}
