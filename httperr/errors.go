package httperr

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// maxCauses bounds StackWithCause so cyclic chains terminate.
const maxCauses = 4

// ResponseError is an error with an HTTP status and optional detail,
// application code and cause.
type ResponseError struct {
	Status  int
	Message string
	Detail  any
	Code    any
	Cause   error
}

// Error returns the message.
func (e *ResponseError) Error() string {
	return e.Message
}

// Unwrap returns the cause.
func (e *ResponseError) Unwrap() error {
	return e.Cause
}

// Option customizes a ResponseError.
type Option func(*ResponseError)

// WithMessage replaces the message.
func WithMessage(message string) Option {
	return func(e *ResponseError) { e.Message = message }
}

// WithDetail sets the detail.
func WithDetail(detail any) Option {
	return func(e *ResponseError) { e.Detail = detail }
}

// WithCode sets the application error code.
func WithCode(code any) Option {
	return func(e *ResponseError) { e.Code = code }
}

// WithCause sets the underlying cause.
func WithCause(cause error) Option {
	return func(e *ResponseError) { e.Cause = cause }
}

// New creates a ResponseError with the given status and message.
func New(status int, message string, opts ...Option) *ResponseError {
	e := &ResponseError{Status: status, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BadRequest returns a 400 error.
func BadRequest(opts ...Option) *ResponseError {
	return New(http.StatusBadRequest, "Bad request", opts...)
}

// Unauthorized returns a 401 error.
func Unauthorized(opts ...Option) *ResponseError {
	return New(http.StatusUnauthorized, "Unauthorized", opts...)
}

// Forbidden returns a 403 error.
func Forbidden(opts ...Option) *ResponseError {
	return New(http.StatusForbidden, "Forbidden", opts...)
}

// NotFound returns a 404 error.
func NotFound(opts ...Option) *ResponseError {
	return New(http.StatusNotFound, "Not found", opts...)
}

// MethodNotAllowed returns a 405 error.
func MethodNotAllowed(opts ...Option) *ResponseError {
	return New(http.StatusMethodNotAllowed, "Method not allowed", opts...)
}

// NotAcceptable returns a 406 error.
func NotAcceptable(opts ...Option) *ResponseError {
	return New(http.StatusNotAcceptable, "Not acceptable", opts...)
}

// Conflict returns a 409 error.
func Conflict(opts ...Option) *ResponseError {
	return New(http.StatusConflict, "Conflict", opts...)
}

// InternalServerError returns a 500 error.
func InternalServerError(opts ...Option) *ResponseError {
	return New(http.StatusInternalServerError, "Internal server error", opts...)
}

// NotImplemented returns a 501 error.
func NotImplemented(opts ...Option) *ResponseError {
	return New(http.StatusNotImplemented, "Not implemented", opts...)
}

// StackWithCause describes err followed by up to four causes, one per line,
// each prefixed with "Caused by ". Errors joining several causes, such as
// those built with more than one %w verb, contribute each of them in order,
// depth first.
func StackWithCause(err error) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(describe(err))

	pending := causes(err)
	for i := 0; len(pending) > 0 && i < maxCauses; i++ {
		cause := pending[0]
		b.WriteString("\nCaused by ")
		b.WriteString(describe(cause))
		pending = append(causes(cause), pending[1:]...)
	}
	return b.String()
}

// causes returns the errors err wraps directly.
func causes(err error) []error {
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		return slices.DeleteFunc(slices.Clone(u.Unwrap()), func(e error) bool { return e == nil })
	case interface{ Unwrap() error }:
		if cause := u.Unwrap(); cause != nil {
			return []error{cause}
		}
	}
	return nil
}

func describe(err error) string {
	if re, ok := err.(*ResponseError); ok {
		s := fmt.Sprintf("ResponseError: %s (status %d)", re.Message, re.Status)
		if re.Code != nil {
			s += fmt.Sprintf(" [code %v]", re.Code)
		}
		if re.Detail != nil {
			s += fmt.Sprintf(": %v", re.Detail)
		}
		return s
	}
	return "Error: " + err.Error()
}
