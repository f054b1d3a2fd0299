package inventory

// Item is one catalog SKU.
type Item struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Aliases   []string `json:"aliases,omitempty" yaml:"aliases"`
	Available int      `json:"available" yaml:"available"`
	Location  string   `json:"location" yaml:"location"`
}

func (it Item) clone() Item {
	out := it
	if it.Aliases != nil {
		out.Aliases = append([]string(nil), it.Aliases...)
	}
	return out
}

// Match pairs a snapshot of a catalog item with its match score in [0,1].
type Match struct {
	Item  Item    `json:"item"`
	Score float64 `json:"score"`
}

// Reservation is the outcome of one reservation attempt.
type Reservation struct {
	Succeeded bool `json:"succeeded"`
	Remaining int  `json:"remaining"`
}
