// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/IvanChernomyrdin/ergotype/internal/server/crypto"
	"github.com/IvanChernomyrdin/ergotype/internal/server/models"
	"github.com/IvanChernomyrdin/ergotype/internal/server/service"
	serr "github.com/IvanChernomyrdin/ergotype/internal/shared/errors"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// userKey — ключ контекста, под которым хранится аутентифицированный пользователь.
const userKey ctxKey = "user"

// SessionVerifier инкапсулирует проверку сессионного cookie.
//
// Используется в HTTP middleware для:
//   - извлечения токена из cookie
//   - проверки подписи и срока жизни токена
//   - загрузки пользователя из БД по id из клеймов
type SessionVerifier struct {
	SigningKey string // симметричный ключ для подписи (HS256)
	CookieName string // имя cookie с токеном (token)
	Users      service.UsersRepo
}

// NewSessionVerifier создаёт новый SessionVerifier с заданными параметрами.
func NewSessionVerifier(signingKey, cookieName string, users service.UsersRepo) *SessionVerifier {
	return &SessionVerifier{SigningKey: signingKey, CookieName: cookieName, Users: users}
}

// UserFromContext извлекает аутентифицированного пользователя из контекста.
//
// Возвращает:
//   - пользователя
//   - false, если пользователь не аутентифицирован
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok
}

// AuthMiddleware возвращает HTTP middleware для проверки сессионного cookie.
//
// Состояния на каждый запрос:
//  1. cookie отсутствует/пустой        -> 401 Access token required
//  2. подпись битая или формат кривой  -> 401 Invalid token
//  3. токен просрочен                  -> 401 Token expired
//  4. токен валиден, но юзера нет в БД -> 401 User not found (например аккаунт удалён)
//  5. всё в порядке -> пользователь кладётся в context, запрос идёт дальше
func (v *SessionVerifier) AuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(v.CookieName)
			if err != nil || cookie.Value == "" {
				WriteJSONError(w, http.StatusUnauthorized, serr.ErrAccessTokenRequired)
				return
			}

			claims, err := crypto.VerifySessionToken(cookie.Value, v.SigningKey)
			if err != nil {
				if errors.Is(err, serr.ErrTokenExpired) {
					WriteJSONError(w, http.StatusUnauthorized, serr.ErrTokenExpired)
					return
				}
				WriteJSONError(w, http.StatusUnauthorized, serr.ErrInvalidToken)
				return
			}

			user, err := v.Users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, serr.ErrNotFound) {
					WriteJSONError(w, http.StatusUnauthorized, serr.ErrUserNotFound)
					return
				}
				WriteJSONError(w, http.StatusInternalServerError, serr.ErrInternal)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WriteJSONError пишет ошибку в формате {"error": "..."}.
// Дублирует хелпер api-слоя, т.к. api импортирует middleware (не наоборот).
func WriteJSONError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: err.Error()})
}
