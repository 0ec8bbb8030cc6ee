package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-MeetingBooking/internal/api/handlers"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderAdminKey      = "X-Admin-Key"

	bearerPrefix = "Bearer "
)

// AdminAuth пропускает запрос только с верным секретом администратора
// в заголовке Authorization: Bearer <secret> или X-Admin-Key.
// Пустой секрет в конфигурации запрещает доступ всем.
func AdminAuth(secret string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				logger.Warn("AdminAuth - Admin secret is not configured, denying %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w)
				return
			}

			credential := extractCredential(r)
			if credential == "" || subtle.ConstantTimeCompare([]byte(credential), []byte(secret)) != 1 {
				logger.Warn("AdminAuth - Unauthorized request: method=%s, path=%s, remote=%s", r.Method, r.URL.Path, r.RemoteAddr)
				handlers.RespondUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractCredential Bearer токен имеет приоритет над X-Admin-Key
func extractCredential(r *http.Request) string {
	if auth := r.Header.Get(HeaderAuthorization); auth != "" {
		if len(auth) > len(bearerPrefix) && strings.EqualFold(auth[:len(bearerPrefix)], bearerPrefix) {
			return strings.TrimSpace(auth[len(bearerPrefix):])
		}
	}
	return strings.TrimSpace(r.Header.Get(HeaderAdminKey))
}
