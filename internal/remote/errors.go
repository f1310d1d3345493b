// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package remote

import (
	"errors"
	"net"
	"strings"
)

// Kind classifies a failed generation call for the retry policy.
type Kind int

const (
	// KindOther covers permanent failures: bad input, auth, unknown models.
	KindOther Kind = iota
	// KindRateLimited is the only retryable kind.
	KindRateLimited
	// KindTransport covers network failures reaching the endpoint.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindTransport:
		return "transport"
	default:
		return "other"
	}
}

// Error is returned by Generator implementations so the client can classify
// failures without parsing error text.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// rateLimitMarkers are matched against the upper-cased error text of errors
// that carry no structured kind.
var rateLimitMarkers = []string{"429", "RESOURCE_EXHAUSTED", "RATE LIMIT"}

// Classify returns the kind of err. A wrapped *Error wins; otherwise net.Error
// values are transport failures and the error text is searched for the usual
// rate-limit markers.
func Classify(err error) Kind {
	if err == nil {
		return KindOther
	}

	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}

	if hasRateLimitMarker(err) {
		return KindRateLimited
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindTransport
	}

	return KindOther
}

// hasRateLimitMarker reports whether the text of err mentions a rate limit,
// ignoring case.
func hasRateLimitMarker(err error) bool {
	msg := strings.ToUpper(err.Error())
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
