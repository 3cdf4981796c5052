package routing

import (
	"errors"
	"fmt"
)

var (
	ErrMissingParameter     = errors.New("missing required parameters")
	ErrInvalidProviderModel = errors.New("invalid provider/model combination")
	ErrUnsupportedProvider  = errors.New("unsupported provider/model combination")
	ErrNotFound             = errors.New("not found")
	ErrUnavailable          = errors.New("store unavailable")
	ErrDataIntegrity        = errors.New("malformed registry entry")
	ErrInvalidPattern       = errors.New("invalid regex pattern")
	ErrUnknownRedirect      = errors.New("redirect model does not exist in models table")
)

// Reason returns the stable machine-readable name of err's kind, or "" if err is not a routing error.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrMissingParameter):
		return "MissingParameter"
	case errors.Is(err, ErrInvalidProviderModel):
		return "InvalidProviderModel"
	case errors.Is(err, ErrUnsupportedProvider):
		return "UnsupportedProvider"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrUnavailable):
		return "UnavailableError"
	case errors.Is(err, ErrDataIntegrity):
		return "DataIntegrity"
	case errors.Is(err, ErrInvalidPattern):
		return "InvalidPattern"
	case errors.Is(err, ErrUnknownRedirect):
		return "UnknownRedirectModel"
	}
	return ""
}

// Unavailable wraps a store failure so callers see ErrUnavailable while keeping the cause.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}
