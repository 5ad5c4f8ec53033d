package confirm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"masseria/internal/app/policies"
)

// State is the confirmation outcome shown after the payment redirect.
type State string

const (
	StatePolling State = "POLLING"
	StatePaid    State = "PAID"
	StateExpired State = "EXPIRED"
	StateError   State = "ERROR"
)

var ErrMissingSession = errors.New("confirm: session id missing from return url")

const (
	defaultInterval    = 2 * time.Second
	defaultMaxAttempts = 5
)

// Result is the terminal outcome of one poller run. Attempts counts the
// status checks actually issued.
type Result struct {
	State    State
	Attempts int
	Booking  *policies.BookingRecord
	Err      error
}

// Poller resolves a payment session by repeatedly checking the remote
// booking status until it settles or the retry budget runs out. Polling
// performs no mutation, so re-running the whole poller after a page reload
// is safe.
type Poller struct {
	Checker     policies.StatusChecker
	Interval    time.Duration
	MaxAttempts int
	Logger      *slog.Logger
	// Wait is the injected delay between attempts; nil uses a real timer.
	Wait func(ctx context.Context, d time.Duration) error
}

// Run polls until a terminal state. A pending result and a transport failure
// both consume one attempt; exhausting the budget yields StateError so the
// UI can direct the guest to support instead of spinning forever.
func (p *Poller) Run(ctx context.Context, sessionID string) Result {
	if sessionID == "" {
		return Result{State: StateError, Err: ErrMissingSession}
	}
	maxAttempts := p.maxAttempts()
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		status, err := p.Checker.BookingStatus(ctx, sessionID)
		switch {
		case err != nil:
			lastErr = err
			p.logWarn("status check failed", "session_id", sessionID, "attempt", attempt, "error", err)
		case status.PaymentStatus == "paid":
			return Result{State: StatePaid, Attempts: attempt, Booking: status.Booking}
		case status.Status == "expired":
			return Result{State: StateExpired, Attempts: attempt}
		default:
			// Still pending.
		}
		if attempt == maxAttempts {
			break
		}
		if err := p.wait(ctx); err != nil {
			return Result{State: StateError, Attempts: attempt, Err: err}
		}
	}
	return Result{State: StateError, Attempts: maxAttempts, Err: lastErr}
}

func (p *Poller) wait(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	if p.Wait != nil {
		return p.Wait(ctx, interval)
	}
	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *Poller) maxAttempts() int {
	if p.MaxAttempts <= 0 {
		return defaultMaxAttempts
	}
	return p.MaxAttempts
}

func (p *Poller) logWarn(msg string, args ...any) {
	if p.Logger != nil {
		p.Logger.Warn(msg, args...)
	}
}
