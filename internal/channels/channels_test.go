package channels

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/middleware"
)

type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   map[string]any
}

func newStubServer(t *testing.T, status int) (*httptest.Server, <-chan recordedRequest) {
	t.Helper()
	ch := make(chan recordedRequest, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		ch <- recordedRequest{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone(), Body: body}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)
	return srv, ch
}

func TestTelegramSend(t *testing.T) {
	srv, reqs := newStubServer(t, http.StatusOK)
	tg, err := NewTelegram(TelegramConfig{Token: "123:abc", BaseURL: srv.URL}, srv.Client())
	require.NoError(t, err)

	ctx := middleware.WithCorrelationID(context.Background(), "cid-1")
	require.NoError(t, tg.Send(ctx, 42, "hola"))

	got := <-reqs
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/bot123:abc/sendMessage", got.Path)
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "cid-1", got.Header.Get(middleware.HeaderCorrelationID))
	assert.EqualValues(t, 42, got.Body["chat_id"])
	assert.Equal(t, "hola", got.Body["text"])
}

func TestWhatsAppSend(t *testing.T) {
	srv, reqs := newStubServer(t, http.StatusOK)
	wa, err := NewWhatsApp(WhatsAppConfig{Token: "tok", PhoneID: "1055", BaseURL: srv.URL}, srv.Client())
	require.NoError(t, err)

	require.NoError(t, wa.Send(context.Background(), "34600111222", "hola"))

	got := <-reqs
	assert.Equal(t, "/v17.0/1055/messages", got.Path)
	assert.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
	assert.Equal(t, "whatsapp", got.Body["messaging_product"])
	assert.Equal(t, "34600111222", got.Body["to"])
	assert.Equal(t, map[string]any{"body": "hola"}, got.Body["text"])
}

func TestSendNotConfigured(t *testing.T) {
	tg, err := NewTelegram(TelegramConfig{}, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, tg.Send(context.Background(), 1, "x"), ErrNotConfigured)

	wa, err := NewWhatsApp(WhatsAppConfig{Token: "tok"}, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, wa.Send(context.Background(), "1", "x"), ErrNotConfigured)
}

func TestSendNon2xx(t *testing.T) {
	srv, _ := newStubServer(t, http.StatusUnauthorized)
	tg, err := NewTelegram(TelegramConfig{Token: "bad", BaseURL: srv.URL}, srv.Client())
	require.NoError(t, err)

	err = tg.Send(context.Background(), 1, "x")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, "telegram", statusErr.Channel)
}

func TestInvalidBaseURL(t *testing.T) {
	_, err := NewTelegram(TelegramConfig{Token: "t", BaseURL: "://nope"}, nil)
	assert.Error(t, err)
}

func TestTelegramTransportErrorHidesToken(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	const token = "123456:SECRET-BOT-TOKEN"
	tg, err := NewTelegram(TelegramConfig{Token: token, BaseURL: "http://" + addr}, nil)
	require.NoError(t, err)

	err = tg.Send(context.Background(), 1, "x")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), token)
	assert.NotContains(t, err.Error(), "SECRET")
	assert.Contains(t, err.Error(), "/botREDACTED/sendMessage")

	var urlErr *url.Error
	assert.True(t, errors.As(err, &urlErr))
}

func TestBaseURLPathPrefixIsKept(t *testing.T) {
	srv, reqs := newStubServer(t, http.StatusOK)

	tg, err := NewTelegram(TelegramConfig{Token: "123:abc", BaseURL: srv.URL + "/tg/"}, srv.Client())
	require.NoError(t, err)
	require.NoError(t, tg.Send(context.Background(), 1, "x"))
	assert.Equal(t, "/tg/bot123:abc/sendMessage", (<-reqs).Path)

	wa, err := NewWhatsApp(WhatsAppConfig{Token: "tok", PhoneID: "1055", BaseURL: srv.URL + "/meta"}, srv.Client())
	require.NoError(t, err)
	require.NoError(t, wa.Send(context.Background(), "1", "x"))
	assert.Equal(t, "/meta/v17.0/1055/messages", (<-reqs).Path)
}
