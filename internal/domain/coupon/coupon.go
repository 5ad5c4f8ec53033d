package coupon

// Kind distinguishes how a discount value is interpreted.
type Kind string

const (
	// KindPercentage discounts a percentage of the room subtotal.
	KindPercentage Kind = "percentage"
	// KindFixed discounts a fixed euro amount, capped at the room subtotal.
	KindFixed Kind = "fixed"
)

// Discount is the descriptor returned by a successful remote validation.
// Value is a percent for KindPercentage and a decimal euro amount for
// KindFixed, matching the booking API's representation.
type Discount struct {
	Code  string
	Kind  Kind
	Value float64
}

// Status tracks the validation state of the coupon code currently typed into
// the form. Editing the code always returns the status to StatusUnknown: a
// stale discount must never be applied to a changed code.
type Status string

const (
	StatusUnknown Status = "unknown"
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
)
