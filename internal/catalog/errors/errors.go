package errors

import "errors"

var (
	ErrUnknownCategory = errors.New("unknown category")

	ErrNotLive = errors.New("category is not backed by a live source")

	ErrInvalidOrigin = errors.New("origin coordinate out of range")

	ErrInvalidTransition = errors.New("invalid page state transition")

	ErrFeedStopped = errors.New("live feed is not running")
)
