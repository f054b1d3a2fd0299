package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/request"
)

const systemPrompt = "Eres un extractor de pedidos de materiales de obra. Devuelve SOLO un objeto JSON según el schema indicado, sin texto adicional."

const requestSchema = `{
  "material":"string|null","quantity":number|null,"unit":"string|null","location":"string|null",
  "needed_by":"YYYY-MM-DD|null","urgency":"low|medium|high|null","notes":"string","clarify":[]
}`

// userPrompt embeds the schema so models without a system role still see it.
func userPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Devuelve SOLO JSON con schema:\n")
	b.WriteString(requestSchema)
	b.WriteString("\nEn \"clarify\" lista los campos que no puedas determinar con seguridad.\n")
	fmt.Fprintf(&b, "Entrada: %q\nSalida:", text)
	return b.String()
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeRequest reads the first JSON object in raw. Models often wrap the
// object in commentary, so everything before the first '{' and after the
// end of the object is ignored.
func DecodeRequest(raw string) (*request.Request, error) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return nil, fmt.Errorf("%w: no JSON object in response", ErrExtraction)
	}

	var req request.Request
	if err := json.NewDecoder(strings.NewReader(raw[start:])).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrExtraction, err)
	}

	req = req.Compact()
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: invalid request: %v", ErrExtraction, err)
	}
	return &req, nil
}
