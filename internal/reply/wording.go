package reply

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/request"
)

// Wording holds the reply templates for one locale. Templates use the
// placeholders {material}, {fields}, {name}, {id}, {location}, {available},
// {quantity} and {remaining}.
type Wording struct {
	Locale           string
	NotUnderstood    string
	Clarify          string
	ClarifyDelimiter string
	FieldNames       map[string]string
	NotFound         string
	NeedsQuantity    string
	Reserved         string
	Insufficient     string
}

var spanishFields = map[string]string{
	request.FieldMaterial: "material",
	request.FieldQuantity: "cantidad",
	request.FieldUnit:     "unidad",
	request.FieldLocation: "ubicación",
	request.FieldNeededBy: "fecha de entrega",
	request.FieldUrgency:  "urgencia",
	request.FieldNotes:    "notas",
}

// Spanish is the conversational wording used by the extractors.
var Spanish = Wording{
	Locale:           "es",
	NotUnderstood:    "No he entendido la petición. ¿Puedes reformularla?",
	Clarify:          "Necesito aclaración sobre: {fields}.",
	ClarifyDelimiter: ", ",
	FieldNames:       spanishFields,
	NotFound:         `No he encontrado el material "{material}" en el inventario. ¿Puedes confirmar el nombre?`,
	NeedsQuantity:    `He encontrado "{name}" en {location}. ¿Qué cantidad necesitas? Actualmente hay {available} disponibles.`,
	Reserved:         `OK: He reservado {quantity} de "{name}" (SKU {id}). Quedan {remaining} en {location}.`,
	Insufficient:     `No hay suficiente stock de "{name}". Disponible: {available}. ¿Deseas reservar esa cantidad o crear un pedido de reposición?`,
}

var englishFields = map[string]string{
	request.FieldNeededBy: "needed-by date",
}

var English = Wording{
	Locale:           "en",
	NotUnderstood:    "I did not understand the request. Could you rephrase it?",
	Clarify:          "I need clarification on: {fields}.",
	ClarifyDelimiter: ", ",
	FieldNames:       englishFields,
	NotFound:         `I could not find "{material}" in the inventory. Can you confirm the name?`,
	NeedsQuantity:    `I found "{name}" in {location}. How many do you need? {available} are available right now.`,
	Reserved:         `OK: reserved {quantity} of "{name}" (SKU {id}). {remaining} left in {location}.`,
	Insufficient:     `Not enough stock of "{name}". Available: {available}. Do you want to reserve that amount or create a replenishment order?`,
}

// Brief is the terse wording the orchestrator falls back to when the
// extractor does not render replies itself.
var Brief = Wording{
	Locale:           "es",
	NotUnderstood:    "No he entendido la petición.",
	Clarify:          "Necesito aclaración: {fields}",
	ClarifyDelimiter: ", ",
	FieldNames:       spanishFields,
	NotFound:         `No encuentro "{material}" en el inventario. ¿Puedes confirmar el nombre?`,
	NeedsQuantity:    `Hay {available} de "{name}" en {location}. ¿Cuántas necesitas?`,
	Reserved:         `Reservado {quantity} de "{name}" (SKU {id}). Quedan {remaining}.`,
	Insufficient:     `No hay suficiente stock de "{name}". Disponible: {available}. ¿Reservo esa cantidad o creo un pedido de reposición?`,
}

// ForLocale returns the conversational wording for locale.
func ForLocale(locale string) (Wording, error) {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "", "es":
		return Spanish, nil
	case "en":
		return English, nil
	default:
		return Wording{}, fmt.Errorf("unsupported reply locale %q", locale)
	}
}

func (w Wording) fieldName(f string) string {
	if n, ok := w.FieldNames[f]; ok {
		return n
	}
	return f
}

func (w Wording) fields(names []string) string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, w.fieldName(n))
	}
	return strings.Join(out, w.ClarifyDelimiter)
}

func fill(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func itoa(n int) string { return strconv.Itoa(n) }
