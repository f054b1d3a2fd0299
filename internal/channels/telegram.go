package channels

import (
	"context"
	"net/http"
	"strings"
)

const DefaultTelegramBaseURL = "https://api.telegram.org"

type Telegram struct {
	token  string
	client *client
}

type TelegramConfig struct {
	Token   string
	BaseURL string
}

func NewTelegram(cfg TelegramConfig, httpClient *http.Client) (*Telegram, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultTelegramBaseURL
	}
	c, err := newClient("telegram", base, httpClient)
	if err != nil {
		return nil, err
	}
	token := strings.TrimSpace(cfg.Token)
	c.addSecret(token)
	return &Telegram{token: token, client: c}, nil
}

type telegramMessage struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

// Send posts text to chatID through the Bot API sendMessage method.
func (t *Telegram) Send(ctx context.Context, chatID int64, text string) error {
	if t.token == "" {
		return ErrNotConfigured
	}
	return t.client.postJSON(ctx, nil, telegramMessage{ChatID: chatID, Text: text}, "bot"+t.token, "sendMessage")
}
