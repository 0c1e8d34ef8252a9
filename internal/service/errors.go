package service

import "errors"

var (
	// ErrNotFound covers missing users, recipes, comments and follow requests.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the actor lacks mutation rights, e.g.
	// editing another user's recipe. Notification deletion is deliberately
	// NOT forbidden for non-owners; it no-ops to avoid existence leakage.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidRating is returned for rating values outside [1,5].
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrEmptyBody is returned for blank comment bodies.
	ErrEmptyBody = errors.New("comment body must not be blank")
)
