// Package telegram is a minimal Telegram Bot API client covering what
// the bot needs: identity check, message sending, the typing
// indicator and long-poll update consumption.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "calorie-coach-bot/internal/common/errors"
	"calorie-coach-bot/internal/features/chat"
)

const apiBase = "https://api.telegram.org"

type Client struct {
	httpClient *http.Client
	token      string
}

type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

func NewClient(token string, pollTimeout int) *Client {
	return &Client{
		httpClient: &http.Client{
			// Long-poll requests block server-side for pollTimeout
			// seconds, so the HTTP timeout must exceed it.
			Timeout: time.Duration(pollTimeout+10) * time.Second,
		},
		token: token,
	}
}

// GetMe validates the bot token against the API and returns the bot's
// own identity. Called once at startup.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	var result struct {
		Ok          bool   `json:"ok"`
		Description string `json:"description,omitempty"`
		Result      User   `json:"result"`
	}

	if err := c.makeRequest(ctx, "GET", "getMe", nil, &result); err != nil {
		return nil, apperrors.NewTelegramAPIError("getMe", err)
	}
	if !result.Ok {
		return nil, apperrors.NewTelegramAPIError("getMe", fmt.Errorf("API error: %s", result.Description))
	}

	return &result.Result, nil
}

// SendText implements chat.Messenger.
func (c *Client) SendText(ctx context.Context, chatID int64, text string) error {
	params := url.Values{
		"chat_id": {strconv.FormatInt(chatID, 10)},
		"text":    {text},
	}

	var result struct {
		Ok          bool   `json:"ok"`
		Description string `json:"description,omitempty"`
	}

	if err := c.makeRequest(ctx, "POST", "sendMessage", params, &result); err != nil {
		return apperrors.NewTelegramAPIError("sendMessage", err)
	}
	if !result.Ok {
		return apperrors.NewTelegramAPIError("sendMessage", fmt.Errorf("API error: %s", result.Description))
	}

	return nil
}

// SetPresence implements chat.Messenger. Composing maps to the
// "typing" chat action; the API clears it on its own, so paused is a
// no-op.
func (c *Client) SetPresence(ctx context.Context, chatID int64, state chat.Presence) error {
	if state != chat.PresenceComposing {
		return nil
	}

	params := url.Values{
		"chat_id": {strconv.FormatInt(chatID, 10)},
		"action":  {"typing"},
	}

	var result struct {
		Ok bool `json:"ok"`
	}
	if err := c.makeRequest(ctx, "POST", "sendChatAction", params, &result); err != nil {
		return apperrors.NewTelegramAPIError("sendChatAction", err)
	}

	return nil
}

// MarkRead implements chat.Messenger. The Bot API has no read
// receipts; incoming messages are considered read once consumed.
func (c *Client) MarkRead(ctx context.Context, ref string) error {
	return nil
}

// GetUpdates long-polls the API for new updates past offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeoutSec int) ([]Update, error) {
	params := url.Values{
		"offset":          {strconv.FormatInt(offset, 10)},
		"timeout":         {strconv.Itoa(timeoutSec)},
		"allowed_updates": {`["message"]`},
	}

	var result struct {
		Ok          bool     `json:"ok"`
		Description string   `json:"description,omitempty"`
		Result      []Update `json:"result"`
	}

	if err := c.makeRequest(ctx, "GET", "getUpdates", params, &result); err != nil {
		return nil, apperrors.NewTelegramAPIError("getUpdates", err)
	}
	if !result.Ok {
		return nil, apperrors.NewTelegramAPIError("getUpdates", fmt.Errorf("API error: %s", result.Description))
	}

	return result.Result, nil
}

func (c *Client) makeRequest(ctx context.Context, method, apiMethod string, data url.Values, result interface{}) error {
	endpoint := fmt.Sprintf("%s/bot%s/%s", apiBase, c.token, apiMethod)

	var req *http.Request
	var err error

	if method == "POST" {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(data.Encode()))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		if len(data) > 0 {
			endpoint = fmt.Sprintf("%s?%s", endpoint, data.Encode())
		}
		req, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
