// Package handlers defines the HTTP-layer error codes used across all API
// endpoints.
//
// These symbolic constants are passed to `fail()` alongside an HTTP status
// and give clients a stable, machine-readable error taxonomy on top of the
// human-readable message.
//
// Conventions:
//   - Codes are lowercase snake_case.
//   - Generic codes (bad_request, unauthorized, conflict, …) mirror common
//     HTTP status semantics.
//   - Domain-specific codes (research_failed, report_failed, …) are
//     reserved for business failures a status alone cannot convey.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "conflict",
//	  "message": "username already exists"
//	}
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeRegisterFailed   = "register_failed"
	ErrCodeResearchFailed   = "research_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeReportFailed     = "report_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
