// Package http реализует маршрутизацию HTTP-слоя сервера ErgoType.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - порядок защит на /api/auth/me: сначала rate limit, потом проверка токена.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/ergotype/internal/server/api"
	"github.com/IvanChernomyrdin/ergotype/internal/server/middleware"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - публичные эндпоинты аутентификации под префиксом /api/auth;
//   - /api/auth/me за rate limit + проверкой сессионного cookie;
//   - CRUD каталога клавиатур под /api/keyboards;
//   - health-check и swagger.
func NewRouter(h *api.Handler) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	// health-check
	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)
			// rate limit стоит ПЕРЕД проверкой токена:
			// залимиченный клиент получает 429 даже с валидным токеном
			r.With(h.RateLimit, h.Verifier.AuthMiddleware()).Get("/me", h.Me)
		})

		r.Route("/keyboards", func(r chi.Router) {
			r.Get("/", h.ListKeyboards)
			r.Get("/{id}", h.GetKeyboard)
			r.Post("/", h.CreateKeyboard)
			r.Put("/{id}", h.UpdateKeyboard)
			r.Delete("/{id}", h.DeleteKeyboard)
		})
	})

	return r
}
