// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates internal server error.
var ErrInternal = errors.New("internal")

// ErrUpstreamUnavailable indicates that an upstream service could not be
// reached or answered with an unexpected status.
var ErrUpstreamUnavailable = errors.New("upstream service unavailable")
