package calendar

import "errors"

var ErrInvalidRange = errors.New("calendar: check-out must be after check-in")

// DateRange is the half-open stay interval [From, To): To is the check-out
// date and is not itself charged as a night.
type DateRange struct {
	From Date
	To   Date
}

// NewRange validates that both ends are set and ordered.
func NewRange(from, to Date) (DateRange, error) {
	if from.IsZero() || to.IsZero() || !from.Before(to) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{From: from, To: to}, nil
}

// IsZero reports whether either end of the range is unset.
func (r DateRange) IsZero() bool {
	return r.From.IsZero() || r.To.IsZero()
}

// Valid reports whether the range is set and ordered.
func (r DateRange) Valid() bool {
	return !r.IsZero() && r.From.Before(r.To)
}

// Nights counts the charged dates in [From, To). Invalid ranges yield 0.
func (r DateRange) Nights() int {
	if !r.Valid() {
		return 0
	}
	return r.From.DaysUntil(r.To)
}

// Dates enumerates every charged date in [From, To).
func (r DateRange) Dates() []Date {
	nights := r.Nights()
	if nights == 0 {
		return nil
	}
	dates := make([]Date, 0, nights)
	for d := r.From; d.Before(r.To); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

// Contains reports whether d falls inside the stay.
func (r DateRange) Contains(d Date) bool {
	if !r.Valid() {
		return false
	}
	return !d.Before(r.From) && d.Before(r.To)
}
