package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultAPIBaseURL = "https://api.telegram.org"

var (
	ErrNotConfigured = errors.New("telegram bot token or chat id is not configured")
)

// APIError is a non-ok response from the Telegram Bot API.
type APIError struct {
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return e.Description
	}
	return "Telegram API returned an error"
}

// Order is a book order submitted through the storefront order form.
type Order struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	BookTitle string `json:"bookTitle"`
	Message   string `json:"message"`
}

func (o *Order) text() string {
	extra := o.Message
	if extra == "" {
		extra = "Yo'q"
	}
	return fmt.Sprintf("📚 Yangi Buyurtma!\n\n👤 Mijoz: %s\n📱 Telefon: %s\n📍 Manzil: %s\n📖 Kitob: %s\n💬 Qo'shimcha: %s",
		o.Name, o.Phone, o.Address, o.BookTitle, extra)
}

type Config struct {
	BotToken   string
	ChatID     string
	APIBaseURL string
	Timeout    time.Duration
}

// Client relays storefront orders to a Telegram chat.
type Client struct {
	botToken   string
	chatID     string
	apiBaseURL string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		botToken:   cfg.BotToken,
		chatID:     cfg.ChatID,
		apiBaseURL: cfg.APIBaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Configured() bool {
	return c.botToken != "" && c.chatID != ""
}

// SendOrder posts the formatted order message to the configured chat.
func (c *Client) SendOrder(ctx context.Context, order Order) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id": c.chatID,
		"text":    order.text(),
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBaseURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result struct {
		Ok          bool   `json:"ok"`
		Description string `json:"description"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode != http.StatusOK {
		// error bodies are not always JSON; fall back to the status line
		if result.Description == "" {
			result.Description = resp.Status
		}
		return &APIError{Description: result.Description}
	}
	if decodeErr != nil {
		return decodeErr
	}
	if !result.Ok {
		return &APIError{Description: result.Description}
	}
	return nil
}
