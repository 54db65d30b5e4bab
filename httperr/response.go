package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Options controls how foreign errors are converted and reported.
type Options struct {
	// Logger receives errors that are not already response errors.
	Logger *slog.Logger
	// LogMessage is logged with the error. Defaults to the response message.
	LogMessage string
	// LogLevel defaults to slog.LevelError.
	LogLevel slog.Leveler
	// Stack includes StackWithCause in response bodies.
	Stack bool
}

// Body is the JSON shape of an error response.
type Body struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Detail  any    `json:"detail,omitempty"`
	Code    any    `json:"code,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// ToResponseError returns the *ResponseError in err's chain, or wraps err in
// an internal server error and logs it when opts.Logger is set.
func ToResponseError(err error, opts Options) *ResponseError {
	var re *ResponseError
	if errors.As(err, &re) {
		return re
	}

	re = InternalServerError(WithCause(err))
	if opts.Logger != nil {
		level := slog.LevelError
		if opts.LogLevel != nil {
			level = opts.LogLevel.Level()
		}
		msg := opts.LogMessage
		if msg == "" {
			msg = re.Message
		}
		opts.Logger.Log(context.Background(), level, msg, "error", re)
	}
	return re
}

// ToResponseBody converts err into a response body.
func ToResponseBody(err error, opts Options) Body {
	re := ToResponseError(err, opts)
	body := Body{
		Status:  re.Status,
		Message: re.Message,
		Detail:  re.Detail,
		Code:    re.Code,
	}
	if opts.Stack {
		body.Stack = StackWithCause(re)
	}
	return body
}

// WriteJSON writes err as a JSON response with the matching status code.
func WriteJSON(w http.ResponseWriter, err error, opts Options) {
	body := ToResponseBody(err, opts)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(body.Status)
	_ = json.NewEncoder(w).Encode(body)
}
