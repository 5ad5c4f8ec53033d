package dto

import (
	"masseria/internal/app/policies"
	"masseria/internal/app/session"
	"masseria/internal/domain/booking"
	"masseria/internal/domain/pricing"
)

type QuoteDTO struct {
	Nights       int     `json:"nights"`
	RoomSubtotal float64 `json:"room_subtotal"`
	UpsellTotal  float64 `json:"upsell_total"`
	Discount     float64 `json:"discount"`
	Total        float64 `json:"total"`
}

type GuestDTO struct {
	Name       string `json:"guest_name"`
	Email      string `json:"guest_email"`
	Phone      string `json:"guest_phone,omitempty"`
	NumGuests  int    `json:"num_guests"`
	Notes      string `json:"notes,omitempty"`
	StayReason string `json:"stay_reason,omitempty"`
}

type DraftDTO struct {
	RoomID     string   `json:"room_id,omitempty"`
	CheckIn    string   `json:"check_in,omitempty"`
	CheckOut   string   `json:"check_out,omitempty"`
	Guest      GuestDTO `json:"guest"`
	UpsellIDs  []string `json:"upsell_ids"`
	CouponCode string   `json:"coupon_code,omitempty"`
	State      string   `json:"state"`
}

type CheckoutDTO struct {
	BookingID   string  `json:"booking_id"`
	SessionID   string  `json:"session_id"`
	CheckoutURL string  `json:"checkout_url"`
	TotalPrice  float64 `json:"total_price"`
	Nights      int     `json:"nights"`
}

// SessionDTO is the full view returned after every mutation, so the front
// end can rerender without issuing extra reads.
type SessionDTO struct {
	ID              string           `json:"id"`
	Draft           DraftDTO         `json:"draft"`
	CouponStatus    string           `json:"coupon_status"`
	Quote           QuoteDTO         `json:"quote"`
	Availability    *AvailabilityDTO `json:"availability,omitempty"`
	EligibleUpsells []UpsellDTO      `json:"eligible_upsells"`
	Checkout        *CheckoutDTO     `json:"checkout,omitempty"`
}

func MapQuote(q pricing.Quote) QuoteDTO {
	return QuoteDTO{
		Nights:       q.Nights,
		RoomSubtotal: decimalOrZero(q.RoomSubtotal),
		UpsellTotal:  decimalOrZero(q.UpsellTotal),
		Discount:     decimalOrZero(q.Discount),
		Total:        decimalOrZero(q.Total),
	}
}

func MapDraft(d booking.Draft) DraftDTO {
	out := DraftDTO{
		RoomID: string(d.RoomID),
		Guest: GuestDTO{
			Name:       d.Guest.Name,
			Email:      d.Guest.Email,
			Phone:      d.Guest.Phone,
			NumGuests:  d.Guest.Count,
			Notes:      d.Guest.Notes,
			StayReason: d.Guest.StayReason,
		},
		UpsellIDs:  make([]string, 0, len(d.Upsells)),
		CouponCode: d.CouponCode,
		State:      string(d.State),
	}
	if !d.Range.From.IsZero() {
		out.CheckIn = d.Range.From.String()
	}
	if !d.Range.To.IsZero() {
		out.CheckOut = d.Range.To.String()
	}
	for _, id := range d.Upsells {
		out.UpsellIDs = append(out.UpsellIDs, string(id))
	}
	return out
}

func MapCheckout(cs policies.CheckoutSession) CheckoutDTO {
	return CheckoutDTO{
		BookingID:   cs.BookingID,
		SessionID:   cs.SessionID,
		CheckoutURL: cs.CheckoutURL,
		TotalPrice:  cs.TotalPrice,
		Nights:      cs.Nights,
	}
}

func MapSession(snap session.Snapshot) SessionDTO {
	out := SessionDTO{
		ID:              snap.ID,
		Draft:           MapDraft(snap.Draft),
		CouponStatus:    string(snap.CouponStatus),
		Quote:           MapQuote(snap.Quote),
		EligibleUpsells: MapUpsells(snap.Eligible).Items,
	}
	if snap.Calendar != nil {
		av := MapAvailability(snap.Draft.RoomID, snap.Calendar)
		out.Availability = &av
	}
	if snap.Checkout != nil {
		cs := MapCheckout(*snap.Checkout)
		out.Checkout = &cs
	}
	return out
}
