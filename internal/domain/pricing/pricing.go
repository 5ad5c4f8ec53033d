package pricing

import (
	"math"

	"masseria/internal/domain/calendar"
	"masseria/internal/domain/coupon"
	"masseria/internal/domain/money"
	"masseria/internal/domain/upsell"
)

// Quote is the price breakdown for the current draft, shown in the booking
// summary and recomputed on every input change.
type Quote struct {
	Nights       int
	RoomSubtotal money.Money
	UpsellTotal  money.Money
	Discount     money.Money
	Total        money.Money
}

// StaySubtotal sums the nightly price over every charged date in the range,
// using the calendar override when one exists. Pure addition: iteration
// order cannot affect the result. Invalid ranges price to zero.
func StaySubtotal(base money.Money, r calendar.DateRange, cal *calendar.Calendar) money.Money {
	var total money.Money
	if !r.Valid() {
		return total
	}
	for d := r.From; d.Before(r.To); d = d.AddDays(1) {
		total += cal.PriceFor(d, base)
	}
	return total
}

// UpsellSubtotal sums the fixed prices of the selected upsells. Unknown ids
// contribute nothing; a stale selection must not inflate the total.
func UpsellSubtotal(selected []upsell.ID, catalog []upsell.Upsell) money.Money {
	var total money.Money
	for _, id := range selected {
		if u, ok := upsell.Find(catalog, id); ok {
			total += u.Price
		}
	}
	return total
}

// DiscountAmount resolves a discount descriptor against the room subtotal.
// The discount applies to the room portion only, never to upsells, and a
// fixed discount is capped at the room subtotal so the result can never go
// negative. A nil descriptor or non-positive value discounts nothing.
func DiscountAmount(roomSubtotal money.Money, d *coupon.Discount) money.Money {
	if d == nil || d.Value <= 0 || roomSubtotal <= 0 {
		return 0
	}
	switch d.Kind {
	case coupon.KindPercentage:
		return money.Money(math.Round(float64(roomSubtotal) * d.Value / 100))
	case coupon.KindFixed:
		return money.Min(money.FromDecimal(d.Value), roomSubtotal)
	default:
		return 0
	}
}

// Compute assembles the full quote. The grand total is floored at zero.
func Compute(base money.Money, r calendar.DateRange, cal *calendar.Calendar, selected []upsell.ID, catalog []upsell.Upsell, d *coupon.Discount) Quote {
	q := Quote{
		Nights:       r.Nights(),
		RoomSubtotal: StaySubtotal(base, r, cal),
		UpsellTotal:  UpsellSubtotal(selected, catalog),
	}
	q.Discount = DiscountAmount(q.RoomSubtotal, d)
	q.Total = q.RoomSubtotal + q.UpsellTotal - q.Discount
	if q.Total.IsNegative() {
		q.Total = 0
	}
	return q
}
