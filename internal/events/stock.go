package events

import "time"

const (
	EventTypeStockReserved = "StockReserved"
	EventTypeStockDepleted = "StockDepleted"

	stockReservedSchema = "procurement/stock.reserved.v1"
	stockDepletedSchema = "procurement/stock.depleted.v1"
)

// StockReservedPayload is published after a successful reservation.
type StockReservedPayload struct {
	ItemID    string    `json:"itemId"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Remaining int       `json:"remaining"`
	Location  string    `json:"location,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// StockDepletedPayload is published when a reservation asked for more than
// the catalog holds. Available is the untouched stock level.
type StockDepletedPayload struct {
	ItemID    string    `json:"itemId"`
	Name      string    `json:"name"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
	Location  string    `json:"location,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
