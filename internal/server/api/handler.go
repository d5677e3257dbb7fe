// Package api реализует HTTP-слой сервера ErgoType.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения;
//   - установку сессионного cookie при логине.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/IvanChernomyrdin/ergotype/internal/server/middleware"
	"github.com/IvanChernomyrdin/ergotype/internal/server/service"
	serr "github.com/IvanChernomyrdin/ergotype/internal/shared/errors"
	"github.com/IvanChernomyrdin/ergotype/internal/shared/logger"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// CookieSettings — параметры сессионного cookie.
//
// Secure включается при env=prod; SameSite всегда Lax, HttpOnly всегда true.
type CookieSettings struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Verifier: проверка сессионного cookie и middleware авторизации;
//   - RateLimit: middleware лимита запросов для /api/auth/me;
//   - Cookie: параметры выдаваемого сессионного cookie.
type Handler struct {
	Svc       *service.Services
	Log       *logger.HTTPLogger
	Verifier  *middleware.SessionVerifier
	RateLimit func(http.Handler) http.Handler
	Cookie    CookieSettings
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(
	svc *service.Services,
	log *logger.HTTPLogger,
	verifier *middleware.SessionVerifier,
	rateLimit func(http.Handler) http.Handler,
	cookie CookieSettings,
) *Handler {
	if rateLimit == nil {
		// лимитер может быть выключен конфигом
		rateLimit = func(next http.Handler) http.Handler { return next }
	}
	return &Handler{
		Svc:       svc,
		Log:       log,
		Verifier:  verifier,
		RateLimit: rateLimit,
		Cookie:    cookie,
	}
}

// ErrorResponse — тело ошибки {"error": "...", "fields": {...}}.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteError пишет JSON-ошибку с заданным статусом.
func WriteError(w http.ResponseWriter, status int, err error) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: err.Error(),
	})
}

// WriteFieldErrors пишет 400 с сообщениями по полям.
func WriteFieldErrors(w http.ResponseWriter, fe serr.FieldErrors) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:  fe.Error(),
		Fields: fe,
	})
}

// WriteJSON пишет успешный ответ с заданным статусом.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
