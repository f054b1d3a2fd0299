package reply

// Render phrases d with w. Every outcome maps to exactly one template, so
// all renderers share the same decision tree and differ only in wording.
func Render(w Wording, d Decision) string {
	switch d.Outcome {
	case OutcomeNeedsClarification:
		if d.Request == nil {
			return w.NotUnderstood
		}
		return fill(w.Clarify, map[string]string{"fields": w.fields(d.Request.Clarify)})

	case OutcomeNotFound:
		material := ""
		if d.Request != nil && d.Request.Material != nil {
			material = *d.Request.Material
		}
		return fill(w.NotFound, map[string]string{"material": material})

	case OutcomeNeedsQuantity:
		if d.Match == nil {
			return w.NotUnderstood
		}
		return fill(w.NeedsQuantity, itemVars(d))

	case OutcomeReserved:
		if d.Match == nil || d.Reservation == nil {
			return w.NotUnderstood
		}
		return fill(w.Reserved, itemVars(d))

	case OutcomeInsufficientStock:
		if d.Match == nil || d.Reservation == nil {
			return w.NotUnderstood
		}
		vars := itemVars(d)
		vars["available"] = itoa(d.Reservation.Remaining)
		return fill(w.Insufficient, vars)

	default:
		return w.NotUnderstood
	}
}

func itemVars(d Decision) map[string]string {
	it := d.Match.Item
	vars := map[string]string{
		"name":      it.Name,
		"id":        it.ID,
		"location":  it.Location,
		"available": itoa(it.Available),
	}
	if d.Request != nil && d.Request.Quantity != nil {
		vars["quantity"] = itoa(*d.Request.Quantity)
	}
	if d.Reservation != nil {
		vars["remaining"] = itoa(d.Reservation.Remaining)
	}
	return vars
}
