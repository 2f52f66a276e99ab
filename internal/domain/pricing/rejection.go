package pricing

import "errors"

// RejectionCode classifies why a booking request cannot be quoted. A
// rejection is scoped to one request; it never invalidates the stored
// configuration itself.
type RejectionCode string

const (
	RejectInvalidConfig RejectionCode = "CONFIG_INVALID"
	RejectUnavailable   RejectionCode = "UNAVAILABLE"
	RejectBelowMinimum  RejectionCode = "BELOW_MINIMUM_DURATION"
	RejectPeriodNotSold RejectionCode = "PERIOD_NOT_OFFERED"
	RejectOutOfRange    RejectionCode = "DELIVERY_OUT_OF_RANGE"
	RejectMisconfigured RejectionCode = "DELIVERY_MISCONFIGURED"
)

// Rejection is the typed refusal returned to the booking caller.
type Rejection struct {
	Code   RejectionCode
	Detail string
}

func (r *Rejection) Error() string {
	if r.Detail == "" {
		return "pricing: rejected: " + string(r.Code)
	}
	return "pricing: rejected: " + string(r.Code) + ": " + r.Detail
}

func reject(code RejectionCode, detail string) *Rejection {
	return &Rejection{Code: code, Detail: detail}
}

// AsRejection unwraps a Rejection from an error chain.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
