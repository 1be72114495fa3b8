/*
Package req provides helper functions for HTTP request parsing and data binding.

It encapsulates the logic for parsing URL-encoded and multipart form data, and
integrates error handling to enforce size constraints before business logic runs.
*/
package req

import (
	"net/http"
	"strings"

	"userhub/internal/pkg/errs"
)

const (
	// MaxFormMemory defines the maximum amount of memory (8 MB) ParseMultipartForm
	// will use to store non-file fields. File fields exceeding this limit are stored
	// in temporary files.
	MaxFormMemory int64 = 8 << 20 // 8 MB

	// MaxRequestSize defines the maximum allowed size (10 MB) for the entire request
	// body, including uploaded files. Enforced via http.MaxBytesReader.
	MaxRequestSize int64 = 10 << 20 // 10 MB
)

// BindForm parses a URL-encoded form body with the request size limit applied.
func BindForm(w http.ResponseWriter, r *http.Request) *errs.CustomError {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestSize)

	if err := r.ParseForm(); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}

		return errs.NewError(errs.ErrFormParseFailed)
	}

	return nil
}

// BindMultipart sets up and parses multipart form data from the HTTP request,
// applying both the whole-body size limit and the in-memory form limit.
func BindMultipart(w http.ResponseWriter, r *http.Request) *errs.CustomError {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestSize)

	if err := r.ParseMultipartForm(MaxFormMemory); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}

		return errs.NewError(errs.ErrFormParseFailed)
	}

	return nil
}

// FormValue returns the trimmed value of the named form field.
func FormValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}
