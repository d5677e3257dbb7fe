// HTTP-хендлеры регистрации, логина и текущего пользователя
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/IvanChernomyrdin/ergotype/internal/server/middleware"
	"github.com/IvanChernomyrdin/ergotype/internal/server/models"
	"github.com/IvanChernomyrdin/ergotype/internal/server/service"
	serr "github.com/IvanChernomyrdin/ergotype/internal/shared/errors"
)

// SignupRequest описывает тело запроса регистрации пользователя.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest описывает тело запроса входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse описывает ответ с публичной проекцией пользователя.
type UserResponse struct {
	User models.UserPublic `json:"user"`
}

// Signup обрабатывает регистрацию пользователя.
//
// Ответы:
//   - 201 Created: всегда при валидном вводе — и для нового email,
//     и для занятого (анти-enumeration, ответы неотличимы);
//   - 400 Bad Request: неверный JSON или ошибки валидации по полям;
//   - 500 Internal Server Error: прочие ошибки.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	user, err := h.Svc.Auth.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		var fe serr.FieldErrors
		switch {
		case errors.As(err, &fe):
			WriteFieldErrors(w, fe)
		default:
			h.Log.Logger.Sugar().Error("signup failed")
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, service.ShapeSignupResult(user))
}

// Login обрабатывает вход пользователя и выдачу сессионного cookie.
//
// Ответы:
//   - 200 OK: успешный вход, Set-Cookie: token=...; HttpOnly; SameSite=Lax[; Secure];
//   - 400 Bad Request: неверный JSON или ошибки валидации по полям;
//   - 401 Unauthorized: неверные учётные данные (единый текст);
//   - 500 Internal Server Error: прочие ошибки.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	user, token, err := h.Svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var fe serr.FieldErrors
		switch {
		case errors.As(err, &fe):
			WriteFieldErrors(w, fe)
		case errors.Is(err, serr.ErrInvalidCredentials):
			WriteError(w, http.StatusUnauthorized, serr.ErrInvalidCredentials)
		default:
			h.Log.Logger.Sugar().Error("login failed")
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	h.setAuthCookie(w, token)
	WriteJSON(w, http.StatusOK, UserResponse{User: user.Public()})
}

// Me возвращает текущего пользователя.
//
// Запрос проходит через rate limit и AuthMiddleware (см. router),
// поэтому здесь пользователь уже лежит в контексте.
//
// Ответы:
//   - 200 OK: публичная проекция пользователя;
//   - 401 Unauthorized: middleware не прикрепил пользователя.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrNotAuthenticated)
		return
	}

	WriteJSON(w, http.StatusOK, UserResponse{User: user.Public()})
}

// setAuthCookie выставляет сессионный cookie с токеном.
func (h *Handler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
