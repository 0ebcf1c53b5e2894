package http

import (
	"net/http"
	"strings"

	"github.com/cristiarazvan/gogogo/internal/domain"
	"github.com/cristiarazvan/gogogo/pkg/middleware"
)

// maxBodySize limits JSON request bodies to 1MB.
const maxBodySize = 1 << 20

// actorFromRequest builds the acting identity from the auth middleware
// context. Anonymous requests yield a zero Actor.
func actorFromRequest(r *http.Request) domain.Actor {
	return domain.Actor{
		UserID: middleware.UserIDFromContext(r.Context()),
		Role:   domain.Role(middleware.RoleFromContext(r.Context())),
	}
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
