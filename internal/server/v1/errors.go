package v1

import (
	"errors"

	"github.com/nulzo/prompt-router/internal/routing"
	"github.com/nulzo/prompt-router/pkg/api"
)

const reasonInternal = "InternalError"

// problemFor maps a gateway error onto its HTTP problem. Caller mistakes are 400,
// missing resources 404, and everything else 500 with the cause kept for the log.
func problemFor(err error) *api.Problem {
	reason := routing.Reason(err)

	switch {
	case errors.Is(err, routing.ErrNotFound):
		return api.NotFoundError(err.Error(), api.WithReason(reason))

	case errors.Is(err, routing.ErrMissingParameter),
		errors.Is(err, routing.ErrInvalidProviderModel),
		errors.Is(err, routing.ErrUnsupportedProvider),
		errors.Is(err, routing.ErrInvalidPattern),
		errors.Is(err, routing.ErrUnknownRedirect):
		return api.BadRequestError(err.Error(), api.WithReason(reason))
	}

	if reason == "" {
		reason = reasonInternal
	}
	return api.InternalError("Internal server error", err, api.WithReason(reason))
}
