package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/fulfillment"
)

// Processor runs one message through the fulfillment pipeline.
type Processor interface {
	Process(ctx context.Context, text string) fulfillment.Result
}

type Handler struct {
	proc   Processor
	logger *zap.Logger
}

func NewHandler(proc Processor, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{proc: proc, logger: logger}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type createRequest struct {
	Text string `json:"text"`
}

type createResponse struct {
	Reply   string `json:"reply"`
	Outcome string `json:"outcome"`
}

func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(w, r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	res := h.proc.Process(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, createResponse{Reply: res.Reply, Outcome: string(res.Decision.Outcome)})
}

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 64 << 10

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
