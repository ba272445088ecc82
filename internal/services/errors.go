package services

import "errors"

// Sentinel errors surfaced by the engagement and notification services.
// Handlers translate these to HTTP statuses with errors.Is.
var (
	// ErrNotFound means the referenced entity or user does not exist
	ErrNotFound = errors.New("entity not found")

	// ErrSelfFollow rejects following yourself
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrAlreadyFollowing rejects a duplicate follow edge
	ErrAlreadyFollowing = errors.New("already following this user")

	// ErrNotFollowing rejects unfollowing an edge that does not exist
	ErrNotFollowing = errors.New("not following this user")

	// ErrDuplicateLike marks a lost like race; ToggleLike absorbs it as a
	// benign no-op and callers never observe it
	ErrDuplicateLike = errors.New("already liked")

	// ErrValidation rejects malformed input (comment content, preference patch)
	ErrValidation = errors.New("validation failed")

	// ErrDelivery marks a failed external channel send; recoverable, the
	// delivery worker retries with backoff
	ErrDelivery = errors.New("delivery failed")
)
