package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

type TelegramSender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

type WhatsAppSender interface {
	Send(ctx context.Context, to, text string) error
}

const (
	webhookRatePerSecond = 1
	webhookBurst         = 5
)

// WebhookHandler answers chat platform webhooks. Platforms retry on non-2xx,
// so once a message has been processed the webhook is acknowledged even if
// the reply could not be delivered.
type WebhookHandler struct {
	proc        Processor
	telegram    TelegramSender
	whatsapp    WhatsAppSender
	verifyToken string
	limiter     *chatLimiter
	logger      *zap.Logger
}

type WebhookDeps struct {
	Processor           Processor
	Telegram            TelegramSender
	WhatsApp            WhatsAppSender
	WhatsAppVerifyToken string
	Logger              *zap.Logger
}

func NewWebhookHandler(d WebhookDeps) *WebhookHandler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{
		proc:        d.Processor,
		telegram:    d.Telegram,
		whatsapp:    d.WhatsApp,
		verifyToken: d.WhatsAppVerifyToken,
		limiter:     newChatLimiter(webhookRatePerSecond, webhookBurst),
		logger:      logger,
	}
}

type telegramUpdate struct {
	UpdateID      int64            `json:"update_id"`
	Message       *telegramMessage `json:"message"`
	EditedMessage *telegramMessage `json:"edited_message"`
}

type telegramMessage struct {
	Chat struct {
		ID int64 `json:"id"`
	} `json:"chat"`
	Text string `json:"text"`
}

func (h *WebhookHandler) Telegram(w http.ResponseWriter, r *http.Request) {
	var upd telegramUpdate
	if err := decodeBody(w, r, &upd); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	msg := upd.Message
	if msg == nil {
		msg = upd.EditedMessage
	}
	if msg == nil || strings.TrimSpace(msg.Text) == "" {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	chatID := msg.Chat.ID
	if !h.limiter.Allow("telegram:" + strconv.FormatInt(chatID, 10)) {
		h.logger.Warn("telegram update dropped by rate limit", zap.Int64("chat_id", chatID), zap.Int64("update_id", upd.UpdateID))
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	res := h.proc.Process(r.Context(), msg.Text)
	if h.telegram != nil {
		if err := h.telegram.Send(r.Context(), chatID, res.Reply); err != nil {
			h.logger.Warn("telegram reply not delivered", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// WhatsAppVerify answers the Meta webhook subscription handshake.
func (h *WebhookHandler) WhatsAppVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")
	challenge := q.Get("hub.challenge")

	if mode == "" || token == "" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if mode == "subscribe" && h.verifyToken != "" && token == h.verifyToken {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(challenge))
		return
	}
	w.WriteHeader(http.StatusForbidden)
}

type whatsAppWebhook struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From string `json:"from"`
					Type string `json:"type"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// firstMessage returns the sender and text of the first message of the first
// change of the first entry.
func (p whatsAppWebhook) firstMessage() (from, text string, ok bool) {
	if len(p.Entry) == 0 || len(p.Entry[0].Changes) == 0 {
		return "", "", false
	}
	msgs := p.Entry[0].Changes[0].Value.Messages
	if len(msgs) == 0 {
		return "", "", false
	}
	return msgs[0].From, msgs[0].Text.Body, true
}

func (h *WebhookHandler) WhatsApp(w http.ResponseWriter, r *http.Request) {
	var payload whatsAppWebhook
	if err := decodeBody(w, r, &payload); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	from, text, ok := payload.firstMessage()
	if !ok || strings.TrimSpace(text) == "" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if !h.limiter.Allow("whatsapp:" + from) {
		h.logger.Warn("whatsapp message dropped by rate limit", zap.String("from", from))
		w.WriteHeader(http.StatusOK)
		return
	}

	res := h.proc.Process(r.Context(), text)
	if h.whatsapp != nil {
		if err := h.whatsapp.Send(r.Context(), from, res.Reply); err != nil {
			h.logger.Warn("whatsapp reply not delivered", zap.String("from", from), zap.Error(err))
		}
	}
	w.WriteHeader(http.StatusOK)
}
