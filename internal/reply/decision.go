// Package reply turns a fulfillment decision into the text sent back to the user.
package reply

import (
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/inventory"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/request"
)

type Outcome string

const (
	OutcomeNotUnderstood      Outcome = "not_understood"
	OutcomeNeedsClarification Outcome = "needs_clarification"
	OutcomeNotFound           Outcome = "not_found"
	OutcomeNeedsQuantity      Outcome = "needs_quantity"
	OutcomeReserved           Outcome = "reserved"
	OutcomeInsufficientStock  Outcome = "insufficient_stock"
)

// Outcomes lists every outcome, in decision order.
var Outcomes = []Outcome{
	OutcomeNotUnderstood,
	OutcomeNeedsClarification,
	OutcomeNotFound,
	OutcomeNeedsQuantity,
	OutcomeReserved,
	OutcomeInsufficientStock,
}

// Decision is everything a renderer needs to phrase a reply.
// Match and Reservation are nil when the pipeline stopped before them.
type Decision struct {
	Outcome     Outcome
	Request     *request.Request
	Match       *inventory.Match
	Reservation *inventory.Reservation
}
