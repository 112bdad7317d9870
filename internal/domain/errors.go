package domain

import "errors"

var (
	// ErrDuplicateIdentity signals the same fid appearing more than once in a
	// truncated leaderboard. This is an upstream aggregation bug and must
	// abort the commit rather than corrupt ranks.
	ErrDuplicateIdentity = errors.New("duplicate identity in leaderboard")

	// ErrUnrecognizedEvent is returned when a webhook payload does not decode
	// into any known lockup lifecycle event shape.
	ErrUnrecognizedEvent = errors.New("unrecognized event payload")

	// ErrSignatureMismatch is returned when no configured secret validates a
	// webhook signature.
	ErrSignatureMismatch = errors.New("signature mismatch")

	// ErrSignatureExpired is returned when a webhook timestamp falls outside
	// the replay window.
	ErrSignatureExpired = errors.New("signature timestamp outside replay window")

	// ErrMalformedSignature is returned when the signature header cannot be
	// parsed.
	ErrMalformedSignature = errors.New("malformed signature header")
)
