// Package services defines the business logic of the research assistant:
// credentials, sessions, research orchestration, and report generation.
// This file centralizes common service-level error values so that they can
// be consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is performed
// at the handler layer.
package services

import "errors"

var (
	// ErrEmptyUsername is returned when registration or login is attempted
	// with a blank username.
	ErrEmptyUsername = errors.New("username is empty")

	// ErrPasswordTooShort is returned when a registration password is
	// shorter than the minimum length. The check lives here, in the
	// orchestrating layer, not in the credential store.
	ErrPasswordTooShort = errors.New("password must be at least 4 characters")

	// ErrUsernameTaken indicates a registration attempt for a username
	// that already has a credential record.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrEmptyQuery is returned when a research operation receives a blank
	// query.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrSearchNotFound indicates that the requested search event does not
	// exist.
	ErrSearchNotFound = errors.New("search not found")

	// ErrUnknownFormat is returned when report generation is asked for a
	// format other than pdf, txt, or json.
	ErrUnknownFormat = errors.New("unknown report format")
)
