package httperr

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToResponseError(t *testing.T) {
	t.Run("response error unchanged", func(t *testing.T) {
		orig := Forbidden()
		assert.Same(t, orig, ToResponseError(orig, Options{}))
	})

	t.Run("wrapped response error found", func(t *testing.T) {
		orig := NotFound()
		got := ToResponseError(fmt.Errorf("lookup: %w", orig), Options{})
		assert.Same(t, orig, got)
	})

	t.Run("foreign error becomes internal", func(t *testing.T) {
		cause := errors.New("nil pointer")
		got := ToResponseError(cause, Options{})
		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, "Internal server error", got.Message)
		assert.Same(t, cause, got.Cause)
	})

	t.Run("foreign error logged", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		ToResponseError(errors.New("nil pointer"), Options{
			Logger:     logger,
			LogMessage: "request failed",
			LogLevel:   slog.LevelWarn,
		})

		out := buf.String()
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, "request failed")
	})

	t.Run("default log level is error", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		ToResponseError(errors.New("nil pointer"), Options{Logger: logger})
		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "Internal server error")
	})

	t.Run("response errors not logged", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		ToResponseError(BadRequest(), Options{Logger: logger})
		assert.Empty(t, buf.String())
	})
}

func TestToResponseBody(t *testing.T) {
	err := BadRequest(WithDetail("name is required"), WithCode("E_NAME"))

	body := ToResponseBody(err, Options{})
	assert.Equal(t, Body{
		Status:  http.StatusBadRequest,
		Message: "Bad request",
		Detail:  "name is required",
		Code:    "E_NAME",
	}, body)

	withStack := ToResponseBody(err, Options{Stack: true})
	assert.Equal(t, StackWithCause(err), withStack.Stack)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, NotFound(WithDetail("user 42")), Options{})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(404), got["status"])
	assert.Equal(t, "Not found", got["message"])
	assert.Equal(t, "user 42", got["detail"])
	assert.NotContains(t, got, "code")
	assert.NotContains(t, got, "stack")
}
