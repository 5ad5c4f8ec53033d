package pricing

import (
	"testing"

	"masseria/internal/domain/calendar"
	"masseria/internal/domain/coupon"
	"masseria/internal/domain/money"
	"masseria/internal/domain/upsell"
)

func date(s string) calendar.Date {
	d, err := calendar.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func mustRange(from, to string) calendar.DateRange {
	r, err := calendar.NewRange(date(from), date(to))
	if err != nil {
		panic(err)
	}
	return r
}

func TestStaySubtotalNoOverrides(t *testing.T) {
	base := money.FromCents(10000)
	r := mustRange("2025-06-01", "2025-06-06")
	got := StaySubtotal(base, r, calendar.Empty())
	if got != base.Multiply(5) {
		t.Fatalf("subtotal = %d, want %d", got, base.Multiply(5))
	}
}

func TestStaySubtotalWithOverride(t *testing.T) {
	// Room base €100, override €150 on the 10th, stay 09 → 11: two nights,
	// one at base and one at the override.
	base := money.FromCents(10000)
	cal := calendar.New(nil, map[calendar.Date]money.Money{
		date("2025-06-10"): money.FromCents(15000),
	})
	r := mustRange("2025-06-09", "2025-06-11")

	got := StaySubtotal(base, r, cal)
	if got != money.FromCents(25000) {
		t.Fatalf("subtotal = %d, want 25000", got)
	}
	if r.Nights() != 2 {
		t.Fatalf("nights = %d, want 2", r.Nights())
	}
}

func TestStaySubtotalEmptyRange(t *testing.T) {
	if got := StaySubtotal(money.FromCents(10000), calendar.DateRange{}, nil); got != 0 {
		t.Fatalf("subtotal = %d, want 0", got)
	}
}

func TestUpsellSubtotalIgnoresUnknownIDs(t *testing.T) {
	catalog := []upsell.Upsell{
		{ID: "colazione", Price: money.FromCents(1500)},
		{ID: "cena", Price: money.FromCents(3000)},
	}
	got := UpsellSubtotal([]upsell.ID{"colazione", "deleted"}, catalog)
	if got != money.FromCents(1500) {
		t.Fatalf("upsell subtotal = %d, want 1500", got)
	}
}

func TestDiscountAmount(t *testing.T) {
	cases := []struct {
		name     string
		subtotal money.Money
		discount *coupon.Discount
		want     money.Money
	}{
		{"no coupon", money.FromCents(25000), nil, 0},
		{"percentage", money.FromCents(25000), &coupon.Discount{Kind: coupon.KindPercentage, Value: 10}, money.FromCents(2500)},
		{"fixed below subtotal", money.FromCents(25000), &coupon.Discount{Kind: coupon.KindFixed, Value: 20}, money.FromCents(2000)},
		{"fixed capped at subtotal", money.FromCents(8000), &coupon.Discount{Kind: coupon.KindFixed, Value: 100}, money.FromCents(8000)},
		{"negative value ignored", money.FromCents(8000), &coupon.Discount{Kind: coupon.KindFixed, Value: -5}, 0},
		{"zero subtotal", 0, &coupon.Discount{Kind: coupon.KindPercentage, Value: 10}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DiscountAmount(tc.subtotal, tc.discount); got != tc.want {
				t.Fatalf("DiscountAmount = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestComputeWithCouponAndUpsell(t *testing.T) {
	// Room subtotal €250, 10% coupon ⇒ €25 off, €30 add-on ⇒ total €255.
	base := money.FromCents(10000)
	cal := calendar.New(nil, map[calendar.Date]money.Money{
		date("2025-06-10"): money.FromCents(15000),
	})
	catalog := []upsell.Upsell{{ID: "cena", Price: money.FromCents(3000), MinNights: 1}}

	q := Compute(base, mustRange("2025-06-09", "2025-06-11"), cal,
		[]upsell.ID{"cena"}, catalog,
		&coupon.Discount{Kind: coupon.KindPercentage, Value: 10})

	if q.RoomSubtotal != money.FromCents(25000) {
		t.Errorf("room subtotal = %d", q.RoomSubtotal)
	}
	if q.Discount != money.FromCents(2500) {
		t.Errorf("discount = %d", q.Discount)
	}
	if q.Total != money.FromCents(25500) {
		t.Errorf("total = %d, want 25500", q.Total)
	}
}

func TestComputeFixedDiscountNeverEatsUpsells(t *testing.T) {
	// Room subtotal €80, fixed coupon €100: the discount is capped at the
	// room portion, the add-on remains fully charged.
	base := money.FromCents(8000)
	catalog := []upsell.Upsell{{ID: "cena", Price: money.FromCents(3000), MinNights: 1}}

	q := Compute(base, mustRange("2025-06-09", "2025-06-10"), calendar.Empty(),
		[]upsell.ID{"cena"}, catalog,
		&coupon.Discount{Kind: coupon.KindFixed, Value: 100})

	if q.Discount != money.FromCents(8000) {
		t.Errorf("discount = %d, want capped 8000", q.Discount)
	}
	if q.Total != money.FromCents(3000) {
		t.Errorf("total = %d, want add-ons only (3000)", q.Total)
	}
}

func TestComputeTotalNeverNegative(t *testing.T) {
	q := Compute(money.FromCents(5000), mustRange("2025-06-09", "2025-06-10"), nil,
		nil, nil, &coupon.Discount{Kind: coupon.KindFixed, Value: 500})
	if q.Total.IsNegative() {
		t.Fatalf("total went negative: %d", q.Total)
	}
}
