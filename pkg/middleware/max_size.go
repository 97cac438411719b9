package middleware

import (
	"net/http"

	apperrors "campusconnect/pkg/errors"
	"campusconnect/pkg/logger"
)

// MaxRequestSize caps request bodies at maxBytes. Requests announcing a
// larger Content-Length are refused up front; others fail on read.
func MaxRequestSize(maxBytes int64, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				log.Warn("Request body too large",
					"request_id", RequestID(r.Context()),
					"content_length", r.ContentLength,
					"limit", maxBytes,
					"path", r.URL.Path,
				)
				writeError(w, apperrors.TooLarge("Request body too large"))
				return
			}

			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
