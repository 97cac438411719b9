package middleware

import (
	"net/http"
	"runtime/debug"

	apperrors "campusconnect/pkg/errors"
	httputil "campusconnect/pkg/http"
	"campusconnect/pkg/logger"
)

func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("Panic recovered",
						"request_id", RequestID(r.Context()),
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					writeError(w, apperrors.Internal("Internal server error", nil))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// writeError renders middleware rejections with the same body shape the
// handlers use.
func writeError(w http.ResponseWriter, appErr *apperrors.AppError) {
	_ = httputil.WriteError(w, appErr)
}
