package request

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Field names that may appear in Request.Clarify.
const (
	FieldMaterial = "material"
	FieldQuantity = "quantity"
	FieldUnit     = "unit"
	FieldLocation = "location"
	FieldNeededBy = "needed_by"
	FieldUrgency  = "urgency"
	FieldNotes    = "notes"
)

var knownFields = map[string]struct{}{
	FieldMaterial: {},
	FieldQuantity: {},
	FieldUnit:     {},
	FieldLocation: {},
	FieldNeededBy: {},
	FieldUrgency:  {},
	FieldNotes:    {},
}

// IsField reports whether name is one of the request's field names.
func IsField(name string) bool {
	_, ok := knownFields[name]
	return ok
}

// Request is the structured intent extracted from one incoming text.
// It is built once per message and treated as read-only afterwards.
type Request struct {
	Material *string  `json:"material" validate:"omitempty,min=1"`
	Quantity *int     `json:"quantity" validate:"omitempty,gt=0"`
	Unit     *string  `json:"unit"`
	Location *string  `json:"location"`
	NeededBy *Date    `json:"needed_by"`
	Urgency  *Urgency `json:"urgency" validate:"omitempty,oneof=low medium high"`
	Notes    string   `json:"notes"`
	Clarify  []string `json:"clarify" validate:"dive,oneof=material quantity unit location needed_by urgency notes"`
}

func (r *Request) HasMaterial() bool {
	return r != nil && r.Material != nil && strings.TrimSpace(*r.Material) != ""
}

func (r *Request) HasQuantity() bool {
	return r != nil && r.Quantity != nil && *r.Quantity > 0
}

// NeedsClarification reports whether the extractor left fields undetermined.
func (r *Request) NeedsClarification() bool {
	return r != nil && len(r.Clarify) > 0
}

// NormalizeClarify drops unknown and repeated names, keeping the first occurrence order.
func NormalizeClarify(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(strings.ToLower(n))
		if !IsField(n) {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Compact returns a copy with blank strings and zero dates turned into absent
// values and Clarify normalized.
func (r Request) Compact() Request {
	out := r
	out.Material = blankToNil(r.Material)
	out.Unit = blankToNil(r.Unit)
	out.Location = blankToNil(r.Location)
	if r.NeededBy != nil && r.NeededBy.IsZero() {
		out.NeededBy = nil
	}
	if r.Urgency != nil {
		u := Urgency(strings.ToLower(strings.TrimSpace(string(*r.Urgency))))
		if u == "" {
			out.Urgency = nil
		} else {
			out.Urgency = &u
		}
	}
	out.Notes = strings.TrimSpace(r.Notes)
	out.Clarify = NormalizeClarify(r.Clarify)
	return out
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

const dateLayout = "2006-01-02"

// Date is a calendar date without time of day, encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
