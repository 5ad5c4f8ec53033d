package booking

import (
	"errors"
	"strings"
	"time"

	"masseria/internal/domain/calendar"
	"masseria/internal/domain/room"
	"masseria/internal/domain/upsell"
)

var ErrInvalidState = errors.New("booking: invalid state transition")

type DraftID string

// State is the lifecycle of an in-progress booking draft.
type State string

const (
	StateEditing    State = "EDITING"
	StateSubmitting State = "SUBMITTING"
	StateRedirected State = "REDIRECTED"
	StateFailed     State = "FAILED"
)

// Guest holds the contact fields collected by the booking form.
type Guest struct {
	Name       string
	Email      string
	Phone      string
	Count      int
	Notes      string
	StayReason string
}

// Draft aggregates the user's in-progress selections. It has exactly one
// writer (the owning session) and is consumed once by submission.
type Draft struct {
	ID         DraftID
	RoomID     room.ID
	Range      calendar.DateRange
	Guest      Guest
	Upsells    []upsell.ID
	CouponCode string
	State      State
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewDraft starts an empty draft in the editing state.
func NewDraft(id DraftID, now time.Time) *Draft {
	now = now.UTC()
	return &Draft{
		ID:        id,
		Guest:     Guest{Count: 1},
		State:     StateEditing,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BeginSubmit moves the draft into the submitting state. Field validation is
// the caller's responsibility and must happen first.
func (d *Draft) BeginSubmit(now time.Time) error {
	if d.State != StateEditing {
		return ErrInvalidState
	}
	d.State = StateSubmitting
	d.UpdatedAt = now.UTC()
	return nil
}

// MarkRedirected records a successful submission: the user is being sent to
// the payment session and the draft is done.
func (d *Draft) MarkRedirected(now time.Time) error {
	if d.State != StateSubmitting {
		return ErrInvalidState
	}
	d.State = StateRedirected
	d.UpdatedAt = now.UTC()
	return nil
}

// MarkFailed records a rejected or failed submission. All fields are kept so
// the user can retry without re-entering data.
func (d *Draft) MarkFailed(now time.Time) error {
	if d.State != StateSubmitting {
		return ErrInvalidState
	}
	d.State = StateFailed
	d.UpdatedAt = now.UTC()
	return nil
}

// ResumeEditing returns a failed draft to the editing state for a retry.
func (d *Draft) ResumeEditing(now time.Time) error {
	if d.State != StateFailed {
		return ErrInvalidState
	}
	d.State = StateEditing
	d.UpdatedAt = now.UTC()
	return nil
}

// Validate checks the draft against the selected room and its calendar,
// reporting the first missing or invalid field. A nil return means the draft
// is submittable.
func (d *Draft) Validate(rm *room.Room, cal *calendar.Calendar, today calendar.Date) *ValidationError {
	if d.RoomID == "" || rm == nil {
		return &ValidationError{Field: "room_id", Reason: "room must be selected"}
	}
	if d.Range.From.IsZero() {
		return &ValidationError{Field: "check_in", Reason: "check-in date must be selected"}
	}
	if d.Range.To.IsZero() {
		return &ValidationError{Field: "check_out", Reason: "check-out date must be selected"}
	}
	if !d.Range.Valid() {
		return &ValidationError{Field: "check_out", Reason: "check-out must be after check-in"}
	}
	if !cal.RangeFree(d.Range, today) {
		return &ValidationError{Field: "check_in", Reason: "selected dates are not available"}
	}
	if strings.TrimSpace(d.Guest.Name) == "" {
		return &ValidationError{Field: "guest_name", Reason: "guest name is required"}
	}
	if strings.TrimSpace(d.Guest.Email) == "" {
		return &ValidationError{Field: "guest_email", Reason: "guest email is required"}
	}
	if d.Guest.Count < 1 {
		return &ValidationError{Field: "num_guests", Reason: "at least one guest is required"}
	}
	if d.Guest.Count > rm.MaxGuests {
		return &ValidationError{Field: "num_guests", Reason: "guest count exceeds room capacity"}
	}
	return nil
}
