package middleware

import (
	"errors"
	"net/http"
	"strings"

	"campusconnect/pkg/auth"
	apperrors "campusconnect/pkg/errors"
	"campusconnect/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type TokenVerifier interface {
	Verify(token string) (*auth.User, error)
}

// Authenticate resolves the bearer token, when present, into the current
// user. Requests without an Authorization header pass through anonymously;
// a header that is present but invalid is rejected with 401.
func Authenticate(verifier TokenVerifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(header)
			if !ok {
				rejectUnauthorized(w, log, r, "malformed Authorization header")
				return
			}

			user, err := verifier.Verify(token)
			if err != nil {
				reason := "invalid token"
				if errors.Is(err, auth.ErrMissingToken) {
					reason = "empty token"
				}
				log.Debug("Token verification failed", "error", err)
				rejectUnauthorized(w, log, r, reason)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

// RequireUser guards a route so that only authenticated callers reach it.
func RequireUser(log *logger.Logger, h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if _, ok := auth.CurrentUser(r.Context()); !ok {
			rejectUnauthorized(w, log, r, "authentication required")
			return
		}
		h(w, r, ps)
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func rejectUnauthorized(w http.ResponseWriter, log *logger.Logger, r *http.Request, reason string) {
	log.Warn("Unauthorized request",
		"request_id", RequestID(r.Context()),
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
	)
	w.Header().Set("WWW-Authenticate", `Bearer realm="campusconnect"`)
	writeError(w, apperrors.Unauthorized("Unauthorized"))
}
