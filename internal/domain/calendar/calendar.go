package calendar

import "masseria/internal/domain/money"

// Calendar holds the availability picture for one room: the set of dates
// that cannot be part of a stay and the per-date nightly price overrides.
// A nil *Calendar behaves as empty, which is the permissive fallback when
// the remote source is unreachable.
type Calendar struct {
	blocked   map[Date]struct{}
	overrides map[Date]money.Money
}

// New builds a calendar from blocked dates and price overrides.
func New(blocked []Date, overrides map[Date]money.Money) *Calendar {
	c := &Calendar{
		blocked:   make(map[Date]struct{}, len(blocked)),
		overrides: make(map[Date]money.Money, len(overrides)),
	}
	for _, d := range blocked {
		c.blocked[d] = struct{}{}
	}
	for d, p := range overrides {
		c.overrides[d] = p
	}
	return c
}

// Empty returns a calendar with no blocks and no overrides.
func Empty() *Calendar {
	return New(nil, nil)
}

// Blocked reports whether d can not be part of a stay: either it is in the
// blocked set or it lies strictly before today.
func (c *Calendar) Blocked(d, today Date) bool {
	if d.Before(today) {
		return true
	}
	if c == nil {
		return false
	}
	_, ok := c.blocked[d]
	return ok
}

// RangeFree reports whether every charged night of r is bookable.
func (c *Calendar) RangeFree(r DateRange, today Date) bool {
	if !r.Valid() {
		return false
	}
	for d := r.From; d.Before(r.To); d = d.AddDays(1) {
		if c.Blocked(d, today) {
			return false
		}
	}
	return true
}

// PriceFor resolves the nightly price for d: the override when present,
// the room's base price otherwise.
func (c *Calendar) PriceFor(d Date, base money.Money) money.Money {
	if c == nil {
		return base
	}
	if p, ok := c.overrides[d]; ok {
		return p
	}
	return base
}

// Override exposes the raw override for d, if any.
func (c *Calendar) Override(d Date) (money.Money, bool) {
	if c == nil {
		return 0, false
	}
	p, ok := c.overrides[d]
	return p, ok
}

// BlockedDates returns the blocked set as a slice, unordered.
func (c *Calendar) BlockedDates() []Date {
	if c == nil {
		return nil
	}
	out := make([]Date, 0, len(c.blocked))
	for d := range c.blocked {
		out = append(out, d)
	}
	return out
}

// Overrides returns a copy of the override map.
func (c *Calendar) Overrides() map[Date]money.Money {
	if c == nil {
		return nil
	}
	out := make(map[Date]money.Money, len(c.overrides))
	for d, p := range c.overrides {
		out[d] = p
	}
	return out
}
