package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/huydhb/greenfarm-backend/pkg/logger"
)

// SessionHeader carries the opaque storefront session id in both directions.
const SessionHeader = "X-Session-Id"

// Session resolves the caller's session id, issuing a fresh one when the
// header is missing or not a UUID. The id is echoed on every response.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
			if parsed, err := uuid.Parse(sessionID); err == nil {
				sessionID = parsed.String()
			} else {
				sessionID = uuid.NewString()
			}

			w.Header().Set(SessionHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
