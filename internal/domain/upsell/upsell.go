package upsell

import "masseria/internal/domain/money"

type ID string

// Upsell is an optional paid extra offered during booking. MinNights gates
// the offer: an upsell is selectable only when the stay is long enough.
type Upsell struct {
	ID            ID
	Slug          string
	TitleIT       string
	TitleEN       string
	DescriptionIT string
	DescriptionEN string
	Price         money.Money
	MinNights     int
	Active        bool
	Icon          string
}

// Eligible filters the catalog down to upsells whose minimum-night
// requirement is met by the current stay length.
func Eligible(catalog []Upsell, nights int) []Upsell {
	out := make([]Upsell, 0, len(catalog))
	for _, u := range catalog {
		if u.MinNights <= nights {
			out = append(out, u)
		}
	}
	return out
}

// Find returns the catalog entry with the given id.
func Find(catalog []Upsell, id ID) (Upsell, bool) {
	for _, u := range catalog {
		if u.ID == id {
			return u, true
		}
	}
	return Upsell{}, false
}

// PruneSelection drops selected ids that are unknown or no longer eligible
// for the given stay length. A draft must never carry an ineligible upsell.
func PruneSelection(selected []ID, catalog []Upsell, nights int) []ID {
	out := make([]ID, 0, len(selected))
	for _, id := range selected {
		u, ok := Find(catalog, id)
		if !ok || u.MinNights > nights {
			continue
		}
		out = append(out, id)
	}
	return out
}
