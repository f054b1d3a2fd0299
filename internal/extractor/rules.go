package extractor

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/reply"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/request"
)

// quantityPattern only takes numbers that start a word, so digits glued to a
// code such as "xyz123" are not a quantity and the request asks for one.
var quantityPattern = regexp.MustCompile(`\b(\d+)\s*(uds|unidades|unidad|kg|sacos|saco)?`)

const defaultUnit = "unidades"

var (
	defaultMaterials = []string{"planchas de yeso", "tornillos", "cemento", "cemento saco 25kg"}
	defaultLocations = []string{"planta 2"}
	urgentMarkers    = []string{"urgent", "cuanto antes", "asap"}
)

// Rules is the deterministic extractor. It needs no network access and
// produces the same request for the same text.
type Rules struct {
	materials []string
	locations []string
	wording   reply.Wording
}

type RulesOption func(*Rules)

// WithMaterials replaces the material vocabulary. Order matters: the first
// phrase found in the text wins.
func WithMaterials(phrases ...string) RulesOption {
	return func(r *Rules) { r.materials = lowerAll(phrases) }
}

func WithLocations(phrases ...string) RulesOption {
	return func(r *Rules) { r.locations = lowerAll(phrases) }
}

func WithRulesWording(w reply.Wording) RulesOption {
	return func(r *Rules) { r.wording = w }
}

func NewRules(opts ...RulesOption) *Rules {
	r := &Rules{
		materials: defaultMaterials,
		locations: defaultLocations,
		wording:   reply.Spanish,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Rules) Name() string { return ProviderRules }

func (r *Rules) Parse(_ context.Context, text string) (*request.Request, error) {
	t := strings.ToLower(text)
	req := &request.Request{}

	if m := quantityPattern.FindStringSubmatch(t); m != nil {
		if q, err := strconv.Atoi(m[1]); err == nil && q > 0 {
			unit := m[2]
			if unit == "" {
				unit = defaultUnit
			}
			req.Quantity = &q
			req.Unit = &unit
		}
	}

	for _, phrase := range r.materials {
		if strings.Contains(t, phrase) || strings.Contains(t, firstWord(phrase)) {
			req.Material = request.Ptr(phrase)
			break
		}
	}

	for _, phrase := range r.locations {
		if strings.Contains(t, phrase) {
			req.Location = request.Ptr(phrase)
			break
		}
	}

	for _, marker := range urgentMarkers {
		if strings.Contains(t, marker) {
			req.Urgency = request.Ptr(request.UrgencyHigh)
			break
		}
	}

	if req.Quantity == nil {
		req.Clarify = []string{request.FieldQuantity}
	}
	return req, nil
}

func (r *Rules) Render(d reply.Decision) string {
	return reply.Render(r.wording, d)
}

func firstWord(phrase string) string {
	if f := strings.Fields(phrase); len(f) > 0 {
		return f[0]
	}
	return phrase
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
