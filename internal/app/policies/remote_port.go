package policies

import (
	"context"
	"errors"

	"masseria/internal/domain/calendar"
	"masseria/internal/domain/coupon"
	"masseria/internal/domain/room"
	"masseria/internal/domain/upsell"
)

// ErrCouponRejected is returned by ValidateCoupon when the remote rule set
// rejects the code (unknown, expired, or stay too short).
var ErrCouponRejected = errors.New("policies: coupon rejected")

// Submission is the one-shot booking creation request assembled from a
// validated draft.
type Submission struct {
	RoomID     room.ID
	CheckIn    calendar.Date
	CheckOut   calendar.Date
	GuestName  string
	GuestEmail string
	GuestPhone string
	NumGuests  int
	Notes      string
	StayReason string
	CouponCode string
	UpsellIDs  []upsell.ID
	OriginURL  string
}

// CheckoutSession is the payment redirect target issued for a submission.
type CheckoutSession struct {
	BookingID   string
	SessionID   string
	CheckoutURL string
	TotalPrice  float64
	Nights      int
}

// BookingRecord is the resolved booking as reported by the status endpoint.
type BookingRecord struct {
	ID            string
	RoomID        string
	GuestName     string
	GuestEmail    string
	CheckIn       string
	CheckOut      string
	NumGuests     int
	TotalPrice    float64
	Status        string
	PaymentStatus string
}

// BookingStatus is one poll result for a payment session.
type BookingStatus struct {
	PaymentStatus string
	Status        string
	Booking       *BookingRecord
}

// RemoteAPI is the engine's view of the remote booking service. All calls
// are reads except CreateBooking.
type RemoteAPI interface {
	Rooms(ctx context.Context) ([]room.Room, error)
	Availability(ctx context.Context, roomID room.ID, from, to calendar.Date) (*calendar.Calendar, error)
	Upsells(ctx context.Context, activeOnly bool) ([]upsell.Upsell, error)
	ValidateCoupon(ctx context.Context, code string, nights int) (*coupon.Discount, error)
	CreateBooking(ctx context.Context, sub Submission) (CheckoutSession, error)
	BookingStatus(ctx context.Context, sessionID string) (BookingStatus, error)
}

// StatusChecker is the narrow slice of RemoteAPI the confirmation poller
// needs.
type StatusChecker interface {
	BookingStatus(ctx context.Context, sessionID string) (BookingStatus, error)
}
