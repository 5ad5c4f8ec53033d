package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"masseria/internal/app/policies"
	"masseria/internal/domain/booking"
	"masseria/internal/domain/calendar"
	"masseria/internal/domain/coupon"
	"masseria/internal/domain/money"
	"masseria/internal/domain/pricing"
	"masseria/internal/domain/room"
	"masseria/internal/domain/upsell"
)

var (
	ErrUnknownRoom        = errors.New("session: unknown room")
	ErrUpsellNotEligible  = errors.New("session: upsell not eligible for this stay")
	ErrAlreadySubmitted   = errors.New("session: booking already submitted")
	ErrSubmissionRejected = errors.New("session: submission rejected")
)

// defaultWindowDays is how far ahead availability is loaded when a room is
// selected, matching the one-year calendar shown by the site.
const defaultWindowDays = 365

// Session owns one guest's in-progress booking. It is the single writer of
// its draft; the mutex only shields it from concurrent HTTP handlers, there
// is no concurrent logical writer. Derived values (nights, eligible upsells,
// quote) are pure functions of the current draft and are recomputed on read.
type Session struct {
	mu     sync.Mutex
	id     string
	api    policies.RemoteAPI
	logger *slog.Logger
	now    func() time.Time

	rooms   []room.Room
	upsells []upsell.Upsell

	draft *booking.Draft
	cal   *calendar.Calendar
	// calGen supersedes in-flight availability loads: the last selected
	// room wins, earlier responses are dropped.
	calGen uint64

	couponStatus coupon.Status
	discount     *coupon.Discount

	checkout *policies.CheckoutSession

	windowDays int
}

// Option tweaks session construction.
type Option func(*Session)

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithAvailabilityWindow overrides how many days of availability are loaded.
func WithAvailabilityWindow(days int) Option {
	return func(s *Session) {
		if days > 0 {
			s.windowDays = days
		}
	}
}

// New creates a session with an empty draft in the editing state.
func New(id string, api policies.RemoteAPI, logger *slog.Logger, opts ...Option) *Session {
	s := &Session{
		id:           id,
		api:          api,
		logger:       logger,
		now:          time.Now,
		couponStatus: coupon.StatusUnknown,
		windowDays:   defaultWindowDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.draft = booking.NewDraft(booking.DraftID(id), s.now())
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Start loads the room and upsell catalogs. Rooms are required for any
// further step; an upsell fetch failure degrades to an empty catalog.
func (s *Session) Start(ctx context.Context) error {
	rooms, err := s.api.Rooms(ctx)
	if err != nil {
		return err
	}
	upsells, err := s.api.Upsells(ctx, true)
	if err != nil {
		s.logWarn("upsell catalog load failed", "error", err)
		upsells = nil
	}
	s.mu.Lock()
	s.rooms = rooms
	s.upsells = upsells
	s.mu.Unlock()
	return nil
}

// SelectRoom picks a room and refreshes its availability calendar. The fetch
// failure path is non-fatal: browsing continues with an empty calendar that
// blocks only past dates. When rooms are switched while a fetch is still in
// flight, the stale response is discarded.
func (s *Session) SelectRoom(ctx context.Context, id room.ID) error {
	s.mu.Lock()
	if _, ok := room.Find(s.rooms, id); !ok {
		s.mu.Unlock()
		return ErrUnknownRoom
	}
	s.resumeIfFailed()
	s.draft.RoomID = id
	s.draft.UpdatedAt = s.now().UTC()
	s.cal = nil
	s.calGen++
	gen := s.calGen
	today := calendar.DateOf(s.now())
	until := today.AddDays(s.windowDays)
	s.mu.Unlock()

	cal, err := s.api.Availability(ctx, id, today, until)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calGen != gen {
		// A later room selection superseded this fetch.
		return nil
	}
	if err != nil {
		s.logWarn("availability load failed, using permissive fallback", "room_id", id, "error", err)
		s.cal = calendar.Empty()
		return nil
	}
	s.cal = cal
	return nil
}

// SetDates updates the stay range. Partial input is allowed while editing;
// upsells that became ineligible for the new stay length are dropped.
func (s *Session) SetDates(from, to calendar.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumeIfFailed()
	s.draft.Range = calendar.DateRange{From: from, To: to}
	s.draft.Upsells = upsell.PruneSelection(s.draft.Upsells, s.upsells, s.draft.Range.Nights())
	s.draft.UpdatedAt = s.now().UTC()
}

// SetGuest replaces the guest contact fields.
func (s *Session) SetGuest(g booking.Guest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumeIfFailed()
	s.draft.Guest = g
	s.draft.UpdatedAt = s.now().UTC()
}

// SelectUpsell adds an upsell to the draft. Only currently eligible upsells
// are accepted; duplicates are ignored.
func (s *Session) SelectUpsell(id upsell.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := upsell.Find(s.upsells, id)
	if !ok || u.MinNights > s.draft.Range.Nights() {
		return ErrUpsellNotEligible
	}
	for _, existing := range s.draft.Upsells {
		if existing == id {
			return nil
		}
	}
	s.resumeIfFailed()
	s.draft.Upsells = append(s.draft.Upsells, id)
	s.draft.UpdatedAt = s.now().UTC()
	return nil
}

// DeselectUpsell removes an upsell from the draft.
func (s *Session) DeselectUpsell(id upsell.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumeIfFailed()
	kept := s.draft.Upsells[:0]
	for _, existing := range s.draft.Upsells {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	s.draft.Upsells = kept
	s.draft.UpdatedAt = s.now().UTC()
}

// SetCouponCode updates the typed coupon code. Any change resets the
// validation status to unknown and clears the stored discount.
func (s *Session) SetCouponCode(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code = strings.TrimSpace(code)
	if code == s.draft.CouponCode {
		return
	}
	s.resumeIfFailed()
	s.draft.CouponCode = code
	s.couponStatus = coupon.StatusUnknown
	s.discount = nil
	s.draft.UpdatedAt = s.now().UTC()
}

// ValidateCoupon issues one remote lookup for the current code. Any failure
// marks the code invalid; the error never propagates. A result for a code
// that was edited while the request was in flight is discarded.
func (s *Session) ValidateCoupon(ctx context.Context) coupon.Status {
	s.mu.Lock()
	code := s.draft.CouponCode
	nights := s.draft.Range.Nights()
	s.mu.Unlock()
	if code == "" {
		return coupon.StatusUnknown
	}

	d, err := s.api.ValidateCoupon(ctx, code, nights)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft.CouponCode != code {
		// Stale response: the user kept typing.
		return s.couponStatus
	}
	if err != nil || d == nil {
		if err != nil && !errors.Is(err, policies.ErrCouponRejected) {
			s.logWarn("coupon validation failed", "code", code, "error", err)
		}
		s.couponStatus = coupon.StatusInvalid
		s.discount = nil
		return s.couponStatus
	}
	s.couponStatus = coupon.StatusValid
	s.discount = d
	return s.couponStatus
}

// Quote recomputes the price breakdown from the current draft. The discount
// contributes only while the coupon status is valid.
func (s *Session) Quote() pricing.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quoteLocked()
}

func (s *Session) quoteLocked() pricing.Quote {
	base := rmBase(s.rooms, s.draft.RoomID)
	var d *coupon.Discount
	if s.couponStatus == coupon.StatusValid {
		d = s.discount
	}
	return pricing.Compute(base, s.draft.Range, s.cal, s.draft.Upsells, s.upsells, d)
}

// Submit validates the draft and issues the one-shot creation request.
// A validation failure returns before any network call. A remote failure
// moves the draft to the failed state but keeps every field for retry.
func (s *Session) Submit(ctx context.Context, originURL string) (policies.CheckoutSession, error) {
	s.mu.Lock()
	if s.draft.State == booking.StateRedirected {
		s.mu.Unlock()
		return policies.CheckoutSession{}, ErrAlreadySubmitted
	}
	s.resumeIfFailed()
	rm, today := s.roomLocked(), calendar.DateOf(s.now())
	if verr := s.draft.Validate(rm, s.cal, today); verr != nil {
		s.mu.Unlock()
		return policies.CheckoutSession{}, verr
	}
	if err := s.draft.BeginSubmit(s.now()); err != nil {
		s.mu.Unlock()
		return policies.CheckoutSession{}, err
	}
	sub := policies.Submission{
		RoomID:     s.draft.RoomID,
		CheckIn:    s.draft.Range.From,
		CheckOut:   s.draft.Range.To,
		GuestName:  s.draft.Guest.Name,
		GuestEmail: s.draft.Guest.Email,
		GuestPhone: s.draft.Guest.Phone,
		NumGuests:  s.draft.Guest.Count,
		Notes:      s.draft.Guest.Notes,
		StayReason: s.draft.Guest.StayReason,
		UpsellIDs:  append([]upsell.ID(nil), s.draft.Upsells...),
		OriginURL:  originURL,
	}
	if s.couponStatus == coupon.StatusValid {
		sub.CouponCode = s.draft.CouponCode
	}
	s.mu.Unlock()

	cs, err := s.api.CreateBooking(ctx, sub)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		_ = s.draft.MarkFailed(s.now())
		s.logWarn("booking submission failed", "room_id", sub.RoomID, "error", err)
		return policies.CheckoutSession{}, errors.Join(ErrSubmissionRejected, err)
	}
	_ = s.draft.MarkRedirected(s.now())
	s.checkout = &cs
	return cs, nil
}

// Snapshot is an immutable view of the session for the HTTP layer.
type Snapshot struct {
	ID           string
	Draft        booking.Draft
	Rooms        []room.Room
	Eligible     []upsell.Upsell
	CouponStatus coupon.Status
	Quote        pricing.Quote
	Calendar     *calendar.Calendar
	Checkout     *policies.CheckoutSession
}

// Snapshot copies the current state under the lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := *s.draft
	d.Upsells = append([]upsell.ID(nil), s.draft.Upsells...)
	return Snapshot{
		ID:           s.id,
		Draft:        d,
		Rooms:        s.rooms,
		Eligible:     upsell.Eligible(s.upsells, s.draft.Range.Nights()),
		CouponStatus: s.couponStatus,
		Quote:        s.quoteLocked(),
		Calendar:     s.cal,
		Checkout:     s.checkout,
	}
}

func (s *Session) roomLocked() *room.Room {
	if rm, ok := room.Find(s.rooms, s.draft.RoomID); ok {
		return &rm
	}
	return nil
}

// resumeIfFailed lets any edit after a failed submission return the draft to
// the editing state, so the user can retry without losing input.
func (s *Session) resumeIfFailed() {
	if s.draft.State == booking.StateFailed {
		_ = s.draft.ResumeEditing(s.now())
	}
}

func (s *Session) logWarn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, append([]any{"session_id", s.id}, args...)...)
	}
}

func rmBase(rooms []room.Room, id room.ID) money.Money {
	if rm, ok := room.Find(rooms, id); ok {
		return rm.NightlyRate
	}
	return 0
}
