// Package errors содержит общие доменные ошибки приложения
// и тип валидационных ошибок по полям.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое. Тексты ошибок,
// которые уходят клиенту, зафиксированы контрактом API —
// поэтому некоторые начинаются с заглавной буквы.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные (не раскрываем, email или пароль)
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("Internal Server Error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// ожидаемая ошибка
	ErrExpectedError = errors.New("expected error")
	// неожидаемая ошибка
	ErrUnexpectedError = errors.New("unexpected error")
)

// Ошибки сессионной аутентификации (cookie + JWT).
// Тексты — контракт эндпоинта /api/auth/me.
var (
	// Cookie с токеном отсутствует или пустой
	ErrAccessTokenRequired = errors.New("Access token required")
	// Токен просрочен
	ErrTokenExpired = errors.New("Token expired")
	// Подпись не сошлась или токен битый
	ErrInvalidToken = errors.New("Invalid token")
	// Токен валиден, но пользователя уже нет в базе
	ErrUserNotFound = errors.New("User not found")
	// Пользователь не прикреплён к контексту запроса
	ErrNotAuthenticated = errors.New("User not authenticated")
	// Превышен лимит запросов с одного адреса
	ErrTooManyRequests = errors.New("Too many requests from this IP, please try again later.")
)

// только для каталога клавиатур
var (
	ErrKeyboardNotFound = errors.New("Keyboard not found")
)

// FieldErrors — валидационные ошибки по полям запроса.
//
// Ключ — имя поля ("email", "password", "price"...),
// значение — человекочитаемое сообщение. Сериализуется в api слое
// как {"error":"Validation error","fields":{...}}.
type FieldErrors map[string]string

// Error возвращает общий текст валидационной ошибки.
// Конкретные сообщения по полям достаются через саму мапу.
func (fe FieldErrors) Error() string {
	return "Validation error"
}
