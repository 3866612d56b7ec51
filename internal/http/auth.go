package httpapi

import (
	"context"
	"net/http"
	"strings"

	"schoolportal-backend-go/internal/services"
)

type contextKey string

const ctxResolution contextKey = "resolution"

const sessionCookieName = "session"

// WithIdentity resolves the request's token through the authorization gate
// and stores the full resolution in the context. It never rejects by itself:
// the gone / banned / ok distinction matters downstream and guards decide
// per route.
func (s *Server) WithIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolution, err := services.ResolveIdentity(s.DB, s.Tokens, extractToken(r))
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), ctxResolution, resolution)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func CurrentResolution(r *http.Request) services.Resolution {
	if value, ok := r.Context().Value(ctxResolution).(services.Resolution); ok {
		return value
	}
	return services.Resolution{}
}

func CurrentUserID(r *http.Request) string {
	resolution := CurrentResolution(r)
	if resolution.Session == nil {
		return ""
	}
	return resolution.Session.UserID
}

func CurrentRole(r *http.Request) string {
	resolution := CurrentResolution(r)
	if resolution.Session == nil {
		return ""
	}
	return resolution.Session.Role
}

// RequireWriter admits authenticated, existing, non-banned identities.
// A valid token whose referent is gone gets the forced-logout signal; a
// banned identity keeps read access but is rejected here.
func RequireWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolution := CurrentResolution(r)
		if resolution.Anonymous() {
			WriteError(w, http.StatusUnauthorized, "Authentication failed")
			return
		}
		if !resolution.Exists {
			WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "Account no longer exists", "action": "logout"})
			return
		}
		if resolution.Banned() {
			WriteError(w, http.StatusForbidden, "Account is banned")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireModerator(next http.Handler) http.Handler {
	return requireCapability(next, services.CanModerate)
}

func RequireAdmin(next http.Handler) http.Handler {
	return requireCapability(next, services.CanAdministrate)
}

func requireCapability(next http.Handler, allowed func(string) bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowed(CurrentRole(r)) {
			WriteError(w, http.StatusForbidden, "Not allowed")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// resolveClientIP returns the first hop of X-Forwarded-For, the original
// client in a proxied chain.
func resolveClientIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return host
}
