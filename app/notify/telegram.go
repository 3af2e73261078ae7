package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultEndpoint is the Telegram bot API base URL.
const DefaultEndpoint = "https://api.telegram.org"

var ErrNotConfigured = errors.New("telegram bot token or channel ID is not set")

// Notifier posts announcements to a Telegram channel via the bot API.
// Delivery failures never affect the result store; persistence happens before
// any notification is attempted.
type Notifier struct {
	httpClient *http.Client
	token      string
	chatID     string
	endpoint   string
}

func NewNotifier(httpClient *http.Client, token, chatID string) *Notifier {
	return &Notifier{
		httpClient: httpClient,
		token:      token,
		chatID:     chatID,
		endpoint:   DefaultEndpoint,
	}
}

// Enabled reports whether channel credentials are present.
func (n *Notifier) Enabled() bool {
	return n.token != "" && n.chatID != ""
}

// Send posts one HTML-formatted message with link previews suppressed.
func (n *Notifier) Send(ctx context.Context, text string) error {
	if !n.Enabled() {
		return ErrNotConfigured
	}

	body, err := json.Marshal(map[string]interface{}{
		"chat_id":                  n.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.endpoint, n.token)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResp struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	// The body is informative only; an undecodable body still reports the
	// HTTP status below.
	_ = json.Unmarshal(respBody, &apiResp)

	if resp.StatusCode != http.StatusOK || !apiResp.OK {
		if apiResp.Description != "" {
			return fmt.Errorf("telegram API error: %d %s", resp.StatusCode, apiResp.Description)
		}
		return fmt.Errorf("telegram API error: HTTP %d", resp.StatusCode)
	}

	return nil
}
