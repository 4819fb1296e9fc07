package renderer

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

// Client invokes the external result-image renderer. The renderer is a black
// box; only the trigger contract is implemented here.
type Client interface {
	Render(ctx context.Context, drawID, winningNumber string, meta models.TemplateMetadata) (string, error)
}

// HTTPClient renders result images through the external rendering service
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// MockClient is a renderer stand-in for development and testing
type MockClient struct{}

// NewClient creates a renderer client according to configuration
func NewClient(cfg *config.Config) Client {
	if cfg.Renderer.MockRenderer {
		return &MockClient{}
	}
	return &HTTPClient{
		baseURL: cfg.Renderer.BaseURL,
		apiKey:  cfg.Renderer.APIKey,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Renderer.TimeoutSecs) * time.Second,
		},
	}
}

type renderRequest struct {
	DrawID        string                  `json:"drawId"`
	WinningNumber string                  `json:"winningNumber"`
	Template      models.TemplateMetadata `json:"template"`
}

type renderResponse struct {
	ImageURL string `json:"imageUrl"`
	Error    string `json:"error,omitempty"`
}

// Render asks the rendering service for a result image and returns its handle
func (c *HTTPClient) Render(ctx context.Context, drawID, winningNumber string, meta models.TemplateMetadata) (string, error) {
	body, err := json.Marshal(renderRequest{
		DrawID:        drawID,
		WinningNumber: winningNumber,
		Template:      meta,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/render", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("render call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read render response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("renderer returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var rendered renderResponse
	if err := json.Unmarshal(respBody, &rendered); err != nil {
		return "", fmt.Errorf("failed to decode render response: %w", err)
	}
	if rendered.Error != "" {
		return "", fmt.Errorf("renderer error: %s", rendered.Error)
	}
	return rendered.ImageURL, nil
}

// Render returns a fake image handle without calling anything
func (c *MockClient) Render(_ context.Context, drawID, winningNumber string, meta models.TemplateMetadata) (string, error) {
	return fmt.Sprintf("mock://%s/%s-%s.png", meta.Slug, drawID, winningNumber), nil
}
