package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"agegate/internal/platform/log"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const adminContextKey contextKey = "admin"

// AdminCredential is the single admin account allowed to change settings.
type AdminCredential struct {
	User         string
	PasswordHash []byte // bcrypt
}

// RequireAdmin returns middleware that blocks requests without valid HTTP
// Basic credentials for cred. The admin user name is put in the context.
func RequireAdmin(cred AdminCredential) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, password, ok := r.BasicAuth()
			if !ok || !cred.matches(user, password) {
				if ok {
					logger := log.WithComponent("http")
					logger.Warn().Str("path", r.URL.Path).Msg("admin_auth_failed")
				}
				w.Header().Set("WWW-Authenticate", `Basic realm="agegate admin", charset="UTF-8"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithAdmin(r.Context(), user)))
		})
	}
}

// matches compares the user in constant time and always runs bcrypt.
func (c AdminCredential) matches(user, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(c.User)) == 1
	passOK := bcrypt.CompareHashAndPassword(c.PasswordHash, []byte(password)) == nil
	return userOK && passOK
}

// AdminFromContext extracts the authenticated admin user name.
func AdminFromContext(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(adminContextKey).(string)
	return user, ok
}

// ContextWithAdmin returns a context carrying the admin user name.
// Intended for use in tests.
func ContextWithAdmin(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, adminContextKey, user)
}
