package middleware

import (
	"net/http"

	"github.com/m04kA/SMC-MeetingBooking/internal/api/handlers"
)

// RateLimit ограничивает число запросов с одного IP.
// Ошибка хранилища лимитера не блокирует запрос: он пропускается с записью в лог.
func RateLimit(limiter RateLimiter, trustProxy bool, metrics RateLimitMetrics, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r.RemoteAddr, r.Header.Get(HeaderForwardedFor), trustProxy)

			decision, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				logger.Error("RateLimit - Limiter failed, allowing request: ip=%s, path=%s, error=%v", ip, r.URL.Path, err)
				next.ServeHTTP(w, r)
				return
			}

			if !decision.Allowed {
				route := routeTemplate(r)
				logger.Warn("RateLimit - Too many requests: ip=%s, route=%s, retry_after=%s", ip, route, decision.RetryAfter)
				if metrics != nil {
					metrics.IncRateLimited(route)
				}
				handlers.RespondTooManyRequests(w, decision.RetryAfter)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
