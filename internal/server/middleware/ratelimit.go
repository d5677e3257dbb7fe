package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/IvanChernomyrdin/ergotype/internal/server/ratelimit"
	serr "github.com/IvanChernomyrdin/ergotype/internal/shared/errors"
)

// RateLimitMiddleware ограничивает частоту запросов по client address.
//
// Проверка выполняется ДО верификации токена: залимиченный клиент
// получает 429 независимо от того, валиден ли его токен.
// trustProxy разрешает брать адрес из X-Real-IP / X-Forwarded-For
// (включать только за доверенным прокси).
func RateLimitMiddleware(limiter *ratelimit.Limiter, trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ClientAddr(r, trustProxy)

			ok, _ := limiter.Allow(r.Context(), key)
			if !ok {
				WriteJSONError(w, http.StatusTooManyRequests, serr.ErrTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientAddr возвращает адрес клиента для ключа rate limit.
//
// Без прокси — host-часть RemoteAddr. За прокси (trustProxy=true)
// сначала X-Real-IP, затем первый адрес из X-Forwarded-For.
func ClientAddr(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
			return ip
		}
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			parts := strings.Split(fwd, ",")
			if ip := strings.TrimSpace(parts[0]); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
