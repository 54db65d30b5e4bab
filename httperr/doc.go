// Package httperr provides errors that carry an HTTP status code, along with
// helpers to turn arbitrary errors into consistent response bodies.
//
// Handlers return *ResponseError values built with the factories:
//
//	if user == nil {
//		return httperr.NotFound(httperr.WithDetail("no such user"))
//	}
//
// and a single place converts whatever came back into a response:
//
//	httperr.WriteJSON(w, err, httperr.Options{Logger: logutil.Logger()})
//
// Errors that are not response errors become 500 Internal server error,
// keeping the original error as the cause, and are logged when a logger is
// supplied.
package httperr
