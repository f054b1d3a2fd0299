package extractor

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/reply"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/request"
)

func TestRulesParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *request.Request
	}{
		{
			name: "quantity unit and material",
			text: "Necesito 10 sacos de cemento",
			want: &request.Request{
				Material: request.Ptr("cemento"),
				Quantity: request.Ptr(10),
				Unit:     request.Ptr("sacos"),
			},
		},
		{
			name: "material only asks for quantity",
			text: "tornillos",
			want: &request.Request{
				Material: request.Ptr("tornillos"),
				Clarify:  []string{"quantity"},
			},
		},
		{
			name: "number without unit defaults unit",
			text: "necesito 500 planchas de yeso en planta 2",
			want: &request.Request{
				Material: request.Ptr("planchas de yeso"),
				Quantity: request.Ptr(500),
				Unit:     request.Ptr("unidades"),
				Location: request.Ptr("planta 2"),
			},
		},
		{
			name: "first word of a phrase is enough",
			text: "mandad 20 planchas a obra",
			want: &request.Request{
				Material: request.Ptr("planchas de yeso"),
				Quantity: request.Ptr(20),
				Unit:     request.Ptr("unidades"),
			},
		},
		{
			name: "digits glued to letters are not a quantity",
			text: "xyz123 pedido urgente",
			want: &request.Request{
				Urgency: request.Ptr(request.UrgencyHigh),
				Clarify: []string{"quantity"},
			},
		},
		{
			name: "zero is not a quantity",
			text: "0 kg de cemento",
			want: &request.Request{
				Material: request.Ptr("cemento"),
				Clarify:  []string{"quantity"},
			},
		},
		{
			name: "empty text",
			text: "",
			want: &request.Request{Clarify: []string{"quantity"}},
		},
	}

	r := NewRules()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Parse(context.Background(), tt.text)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestRulesIsDeterministic(t *testing.T) {
	r := NewRules()
	a, err := r.Parse(context.Background(), "necesito 10 sacos de cemento urgente")
	require.NoError(t, err)
	b, err := r.Parse(context.Background(), "necesito 10 sacos de cemento urgente")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(a, b))
}

func TestRulesCustomVocabulary(t *testing.T) {
	r := NewRules(WithMaterials("Ladrillo Hueco", "arena"), WithLocations("Nave 3"))
	got, err := r.Parse(context.Background(), "3 ladrillos para nave 3")
	require.NoError(t, err)
	require.NotNil(t, got.Material)
	assert.Equal(t, "ladrillo hueco", *got.Material)
	require.NotNil(t, got.Location)
	assert.Equal(t, "nave 3", *got.Location)
}

func TestRulesRender(t *testing.T) {
	r := NewRules(WithRulesWording(reply.English))
	assert.Equal(t, reply.English.NotUnderstood, r.Render(reply.Decision{Outcome: reply.OutcomeNotUnderstood}))
}
