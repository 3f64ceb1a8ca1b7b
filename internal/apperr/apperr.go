// Package apperr defines the error kinds the service surfaces at its HTTP
// boundary. Domain code returns these as plain error values; handlers match
// them with errors.As and map each kind to a status code.
package apperr

import "net/http"

type Kind int

const (
	// KindNotFound marks a referenced entity that does not exist.
	KindNotFound Kind = iota
	// KindForbidden marks a caller that is neither owner nor collaborator.
	KindForbidden
	// KindUnauthorized marks missing or failed authentication.
	KindUnauthorized
	// KindInvariant marks a mutation that should have affected rows but
	// affected none.
	KindInvariant
	// KindValidation marks malformed input rejected before reaching the core.
	KindValidation
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Msg: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Msg: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Msg: msg} }
func Invariant(msg string) *Error    { return &Error{Kind: KindInvariant, Msg: msg} }
func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Msg: msg} }

// Status maps an error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindInvariant, KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
