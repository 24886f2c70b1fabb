package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"portfolio_backend/platform/logger"
)

const discordTimeout = 10 * time.Second

// DiscordClient posts messages to a Discord-compatible incoming webhook.
type DiscordClient struct {
	webhookURL string
	http       *http.Client
	log        *logger.Logger
}

// NewDiscordClient returns nil when webhookURL is empty; a nil client sends nothing.
func NewDiscordClient(webhookURL string, log *logger.Logger) *DiscordClient {
	if strings.TrimSpace(webhookURL) == "" {
		return nil
	}

	return &DiscordClient{
		webhookURL: webhookURL,
		http:       &http.Client{Timeout: discordTimeout},
		log:        log,
	}
}

// Send posts payload to the webhook.
func (c *DiscordClient) Send(ctx context.Context, payload DiscordPayload) error {
	if c == nil {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("discord request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("discord webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	c.log.Info("discord notification sent", "status", resp.StatusCode)
	return nil
}
