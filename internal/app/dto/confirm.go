package dto

import (
	"masseria/internal/app/confirm"
	"masseria/internal/app/policies"
)

type BookingRecordDTO struct {
	ID            string  `json:"id"`
	RoomID        string  `json:"room_id"`
	GuestName     string  `json:"guest_name,omitempty"`
	GuestEmail    string  `json:"guest_email,omitempty"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	NumGuests     int     `json:"num_guests,omitempty"`
	TotalPrice    float64 `json:"total_price"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
}

// ConfirmationDTO is the terminal outcome of a payment confirmation poll.
type ConfirmationDTO struct {
	State    string            `json:"state"`
	Attempts int               `json:"attempts"`
	Booking  *BookingRecordDTO `json:"booking,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func MapBookingRecord(b policies.BookingRecord) BookingRecordDTO {
	return BookingRecordDTO{
		ID:            b.ID,
		RoomID:        b.RoomID,
		GuestName:     b.GuestName,
		GuestEmail:    b.GuestEmail,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		NumGuests:     b.NumGuests,
		TotalPrice:    b.TotalPrice,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
	}
}

func MapConfirmation(res confirm.Result) ConfirmationDTO {
	out := ConfirmationDTO{
		State:    string(res.State),
		Attempts: res.Attempts,
	}
	if res.Booking != nil {
		b := MapBookingRecord(*res.Booking)
		out.Booking = &b
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	return out
}
