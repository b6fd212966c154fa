package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"NewsHarvester/internal/ports"
)

const (
	defaultEndpoint = "https://api.telegram.org"
	maxMessageRunes = 4096
)

// ErrMisconfigured is returned when the bot token or chat id is missing.
var ErrMisconfigured = errors.New("telegram notifier misconfigured")

// apiResponse is the error envelope of the bot API.
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Notifier sends run summaries to a Telegram chat via bot API.
type Notifier struct {
	botToken string
	chatID   string
	endpoint string
	client   *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier. An empty endpoint
// means the public bot API.
func NewNotifier(botToken, chatID, endpoint string) *Notifier {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Notifier{
		botToken: botToken,
		chatID:   chatID,
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// PublishSummary posts a plain-text message, cut to the API message limit.
func (n *Notifier) PublishSummary(ctx context.Context, summary string) error {
	if n.botToken == "" || n.chatID == "" || n.client == nil {
		return ErrMisconfigured
	}

	if r := []rune(summary); len(r) > maxMessageRunes {
		summary = string(r[:maxMessageRunes])
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.endpoint, n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", summary)
	form.Set("disable_web_page_preview", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var res apiResponse
		if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&res); err == nil && res.Description != "" {
			return fmt.Errorf("telegram error: %s: %s", resp.Status, res.Description)
		}
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}
