package booking

import (
	"testing"
	"time"

	"masseria/internal/domain/calendar"
	"masseria/internal/domain/money"
	"masseria/internal/domain/room"
)

func date(s string) calendar.Date {
	d, err := calendar.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

var testRoom = &room.Room{
	ID:          "nonna",
	NightlyRate: money.FromCents(8000),
	MaxGuests:   3,
}

func validDraft() *Draft {
	d := NewDraft("d-1", time.Now())
	d.RoomID = "nonna"
	d.Range = calendar.DateRange{From: date("2025-06-09"), To: date("2025-06-11")}
	d.Guest = Guest{Name: "Anna Rossi", Email: "anna@example.com", Count: 2}
	return d
}

func TestValidateReportsFirstInvalidField(t *testing.T) {
	today := date("2025-06-01")
	cases := []struct {
		name   string
		mutate func(*Draft)
		field  string
	}{
		{"no room", func(d *Draft) { d.RoomID = "" }, "room_id"},
		{"no check-in", func(d *Draft) { d.Range.From = calendar.Date{} }, "check_in"},
		{"no check-out", func(d *Draft) { d.Range.To = calendar.Date{} }, "check_out"},
		{"inverted range", func(d *Draft) {
			d.Range = calendar.DateRange{From: date("2025-06-11"), To: date("2025-06-09")}
		}, "check_out"},
		{"equal dates", func(d *Draft) {
			d.Range = calendar.DateRange{From: date("2025-06-09"), To: date("2025-06-09")}
		}, "check_out"},
		{"missing name", func(d *Draft) { d.Guest.Name = "  " }, "guest_name"},
		{"missing email", func(d *Draft) { d.Guest.Email = "" }, "guest_email"},
		{"zero guests", func(d *Draft) { d.Guest.Count = 0 }, "num_guests"},
		{"too many guests", func(d *Draft) { d.Guest.Count = 4 }, "num_guests"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(d)
			verr := d.Validate(testRoom, calendar.Empty(), today)
			if verr == nil {
				t.Fatal("expected validation error")
			}
			if verr.Field != tc.field {
				t.Fatalf("field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
}

func TestValidateAcceptsCompleteDraft(t *testing.T) {
	if verr := validDraft().Validate(testRoom, calendar.Empty(), date("2025-06-01")); verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
}

func TestValidateRejectsBlockedDates(t *testing.T) {
	cal := calendar.New([]calendar.Date{date("2025-06-10")}, nil)
	verr := validDraft().Validate(testRoom, cal, date("2025-06-01"))
	if verr == nil || verr.Field != "check_in" {
		t.Fatalf("verr = %v, want blocked-dates error on check_in", verr)
	}
}

func TestValidateRejectsPastCheckIn(t *testing.T) {
	verr := validDraft().Validate(testRoom, calendar.Empty(), date("2025-06-20"))
	if verr == nil || verr.Field != "check_in" {
		t.Fatalf("verr = %v, want past-date error on check_in", verr)
	}
}

func TestStateTransitions(t *testing.T) {
	now := time.Now()
	d := validDraft()

	if err := d.MarkRedirected(now); err != ErrInvalidState {
		t.Fatalf("MarkRedirected from editing = %v, want ErrInvalidState", err)
	}
	if err := d.BeginSubmit(now); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	if err := d.BeginSubmit(now); err != ErrInvalidState {
		t.Fatalf("double BeginSubmit = %v, want ErrInvalidState", err)
	}
	if err := d.MarkFailed(now); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	if d.Guest.Name != "Anna Rossi" || d.RoomID != "nonna" {
		t.Fatal("failed draft must keep its fields for retry")
	}
	if err := d.ResumeEditing(now); err != nil {
		t.Fatalf("ResumeEditing: %v", err)
	}
	if err := d.BeginSubmit(now); err != nil {
		t.Fatalf("BeginSubmit after retry: %v", err)
	}
	if err := d.MarkRedirected(now); err != nil {
		t.Fatalf("MarkRedirected: %v", err)
	}
	if d.State != StateRedirected {
		t.Fatalf("state = %s, want %s", d.State, StateRedirected)
	}
}
