package channels

import (
	"context"
	"net/http"
	"strings"
)

const (
	DefaultWhatsAppBaseURL = "https://graph.facebook.com"
	whatsAppAPIVersion     = "v17.0"
)

type WhatsApp struct {
	token   string
	phoneID string
	client  *client
}

type WhatsAppConfig struct {
	Token   string
	PhoneID string
	BaseURL string
}

func NewWhatsApp(cfg WhatsAppConfig, httpClient *http.Client) (*WhatsApp, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultWhatsAppBaseURL
	}
	c, err := newClient("whatsapp", base, httpClient)
	if err != nil {
		return nil, err
	}
	return &WhatsApp{
		token:   strings.TrimSpace(cfg.Token),
		phoneID: strings.TrimSpace(cfg.PhoneID),
		client:  c,
	}, nil
}

type whatsAppText struct {
	Body string `json:"body"`
}

type whatsAppMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Text             whatsAppText `json:"text"`
}

// Send delivers a text message to the phone number "to" through the Cloud API.
func (w *WhatsApp) Send(ctx context.Context, to, text string) error {
	if w.token == "" || w.phoneID == "" {
		return ErrNotConfigured
	}
	headers := http.Header{"Authorization": []string{"Bearer " + w.token}}
	return w.client.postJSON(ctx, headers, whatsAppMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Text:             whatsAppText{Body: text},
	}, whatsAppAPIVersion, w.phoneID, "messages")
}
