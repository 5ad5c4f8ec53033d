package confirm

import (
	"context"
	"errors"
	"testing"
	"time"

	"masseria/internal/app/policies"
)

type scriptedChecker struct {
	results []policies.BookingStatus
	errs    []error
	calls   int
}

func (c *scriptedChecker) BookingStatus(ctx context.Context, sessionID string) (policies.BookingStatus, error) {
	i := c.calls
	c.calls++
	var status policies.BookingStatus
	var err error
	if i < len(c.results) {
		status = c.results[i]
	}
	if i < len(c.errs) {
		err = c.errs[i]
	}
	return status, err
}

func instantWait(ctx context.Context, d time.Duration) error { return nil }

func newPoller(c policies.StatusChecker) *Poller {
	return &Poller{Checker: c, Wait: instantWait}
}

func TestMissingSessionIDIsImmediateError(t *testing.T) {
	checker := &scriptedChecker{}
	res := newPoller(checker).Run(context.Background(), "")
	if res.State != StateError {
		t.Fatalf("state = %s, want error", res.State)
	}
	if !errors.Is(res.Err, ErrMissingSession) {
		t.Fatalf("err = %v, want ErrMissingSession", res.Err)
	}
	if checker.calls != 0 {
		t.Fatalf("calls = %d, want 0", checker.calls)
	}
}

func TestPaidTerminates(t *testing.T) {
	checker := &scriptedChecker{results: []policies.BookingStatus{
		{PaymentStatus: "pending", Status: "open"},
		{PaymentStatus: "paid", Status: "complete", Booking: &policies.BookingRecord{ID: "b-1"}},
	}}
	res := newPoller(checker).Run(context.Background(), "cs_1")
	if res.State != StatePaid {
		t.Fatalf("state = %s, want paid", res.State)
	}
	if res.Attempts != 2 {
		t.Fatalf("attempts = %d, want 2", res.Attempts)
	}
	if res.Booking == nil || res.Booking.ID != "b-1" {
		t.Fatalf("booking record missing: %+v", res.Booking)
	}
}

func TestExpiredTerminates(t *testing.T) {
	checker := &scriptedChecker{results: []policies.BookingStatus{
		{PaymentStatus: "unpaid", Status: "expired"},
	}}
	res := newPoller(checker).Run(context.Background(), "cs_1")
	if res.State != StateExpired {
		t.Fatalf("state = %s, want expired", res.State)
	}
	if checker.calls != 1 {
		t.Fatalf("calls = %d, want 1", checker.calls)
	}
}

func TestBudgetExhaustedAfterFiveAttempts(t *testing.T) {
	// Always pending: the poller must stop after exactly 5 checks.
	checker := &scriptedChecker{results: []policies.BookingStatus{
		{PaymentStatus: "pending"}, {PaymentStatus: "pending"}, {PaymentStatus: "pending"},
		{PaymentStatus: "pending"}, {PaymentStatus: "pending"}, {PaymentStatus: "paid"},
	}}
	res := newPoller(checker).Run(context.Background(), "cs_1")
	if res.State != StateError {
		t.Fatalf("state = %s, want error", res.State)
	}
	if res.Attempts != 5 {
		t.Fatalf("attempts = %d, want 5", res.Attempts)
	}
	if checker.calls != 5 {
		t.Fatalf("calls = %d, want exactly 5 (no 6th request)", checker.calls)
	}
}

func TestFailuresAndPendingShareTheBudget(t *testing.T) {
	remoteErr := errors.New("boom")
	checker := &scriptedChecker{
		results: []policies.BookingStatus{{}, {PaymentStatus: "pending"}, {}, {PaymentStatus: "pending"}, {}},
		errs:    []error{remoteErr, nil, remoteErr, nil, remoteErr},
	}
	res := newPoller(checker).Run(context.Background(), "cs_1")
	if res.State != StateError {
		t.Fatalf("state = %s, want error", res.State)
	}
	if checker.calls != 5 {
		t.Fatalf("calls = %d, want 5", checker.calls)
	}
	if !errors.Is(res.Err, remoteErr) {
		t.Fatalf("err = %v, want last remote error", res.Err)
	}
}

func TestRecoveryAfterTransientFailure(t *testing.T) {
	checker := &scriptedChecker{
		results: []policies.BookingStatus{{}, {PaymentStatus: "paid"}},
		errs:    []error{errors.New("timeout"), nil},
	}
	res := newPoller(checker).Run(context.Background(), "cs_1")
	if res.State != StatePaid {
		t.Fatalf("state = %s, want paid", res.State)
	}
	if res.Attempts != 2 {
		t.Fatalf("attempts = %d, want 2", res.Attempts)
	}
}

func TestCancellationStopsPolling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	checker := &scriptedChecker{results: []policies.BookingStatus{{PaymentStatus: "pending"}}}
	p := &Poller{Checker: checker, Wait: func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}}
	res := p.Run(ctx, "cs_1")
	if res.State != StateError {
		t.Fatalf("state = %s, want error", res.State)
	}
	if checker.calls != 1 {
		t.Fatalf("calls = %d, want 1 (no poll after cancellation)", checker.calls)
	}
	if !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", res.Err)
	}
}
