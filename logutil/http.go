package logutil

import (
	"log/slog"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// DefaultRequestFormat is the line RequestLogger writes per request.
const DefaultRequestFormat = ":remote-addr :method :url HTTP/:http-version :status - :response-time ms"

// RequestLoggerOptions configures RequestLogger.
//
// Format tokens: :remote-addr :method :url :http-version :status
// :response-time :content-length :referrer :user-agent.
type RequestLoggerOptions struct {
	// Level is used for every request unless AutoLevel is set.
	Level slog.Level
	// AutoLevel logs 5xx as error and 4xx as warn.
	AutoLevel bool
	// Format defaults to DefaultRequestFormat.
	Format string
	// NoLog skips requests whose URL matches.
	NoLog *regexp.Regexp
	// Logger defaults to the global logger at request time.
	Logger *slog.Logger
}

// RequestLogger returns middleware that logs one line per request.
func RequestLogger(opts RequestLoggerOptions) func(http.Handler) http.Handler {
	format := opts.Format
	if format == "" {
		format = DefaultRequestFormat
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.NoLog != nil && opts.NoLog.MatchString(r.URL.RequestURI()) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			level := opts.Level
			if opts.AutoLevel {
				level = autoLevel(status)
			}

			logger := opts.Logger
			if logger == nil {
				logger = Logger()
			}
			logger.Log(r.Context(), level, formatRequest(format, r, status, ww.BytesWritten(), time.Since(start)))
		})
	}
}

func formatRequest(format string, r *http.Request, status, written int, elapsed time.Duration) string {
	return strings.NewReplacer(
		":remote-addr", remoteAddr(r),
		":method", r.Method,
		":url", r.URL.RequestURI(),
		":http-version", strconv.Itoa(r.ProtoMajor)+"."+strconv.Itoa(r.ProtoMinor),
		":status", strconv.Itoa(status),
		":response-time", strconv.FormatInt(elapsed.Milliseconds(), 10),
		":content-length", strconv.Itoa(written),
		":referrer", r.Referer(),
		":user-agent", r.UserAgent(),
	).Replace(format)
}

func remoteAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func autoLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
