package events

import "time"

const (
	EventTypeProcurementRequested = "ProcurementRequested"
	EventTypeProcurementReplied   = "ProcurementReplied"

	procurementRepliedSchema = "procurement/procurement.replied.v1"
)

// ProcurementRequested asks the service to process one free-text message.
// It arrives either bare or as the payload of an EventEnvelope.
type ProcurementRequested struct {
	RequestID string `json:"requestId"`
	Text      string `json:"text"`
	ReplyTo   string `json:"replyTo,omitempty"`
}

type ProcurementReplied struct {
	RequestID string    `json:"requestId"`
	ReplyTo   string    `json:"replyTo,omitempty"`
	Reply     string    `json:"reply"`
	Outcome   string    `json:"outcome"`
	Timestamp time.Time `json:"timestamp"`
}
