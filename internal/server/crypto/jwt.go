// Package crypto содержит криптографические примитивы,
// используемые сервером ErgoType.
//
// В частности, пакет отвечает за:
//   - хэширование и проверку паролей (bcrypt);
//   - выпуск и проверку JWT сессионных токенов;
//   - соблюдение требований безопасности (HS256, срок жизни).
package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	serr "github.com/IvanChernomyrdin/ergotype/internal/shared/errors"
)

// JWTConfig описывает параметры генерации сессионного JWT.
type JWTConfig struct {
	// SigningKey — секретный ключ для подписи токена (HS256).
	// Должен быть достаточно длинным и случайным.
	SigningKey string
	// TokenTTL — срок жизни сессионного токена (по умолчанию 7 дней).
	TokenTTL time.Duration
}

// SessionClaims — клеймы сессионного токена.
//
// Payload совместим с исходным контрактом: {id, email, iat, exp}.
// id и email дублируют данные пользователя, чтобы middleware
// мог проверить токен без обращения к БД.
type SessionClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// NewSessionToken создаёт и подписывает сессионный JWT для пользователя.
//
// Токен содержит id и email пользователя, iat и exp.
// Используется алгоритм подписи HS256.
// В случае ошибки подписи возвращается непустая ошибка.
func NewSessionToken(userID int64, email string, cfg JWTConfig) (string, error) {
	now := time.Now()

	claims := SessionClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}

// VerifySessionToken проверяет подпись и срок жизни токена.
//
// Возвращает клеймы токена либо одну из доменных ошибок:
//   - ErrTokenExpired — токен просрочен;
//   - ErrInvalidToken — битый формат, неверная подпись или алгоритм.
func VerifySessionToken(tokenStr, signingKey string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	_, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(signingKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, serr.ErrTokenExpired
		}
		return nil, serr.ErrInvalidToken
	}

	if claims.UserID == 0 {
		return nil, serr.ErrInvalidToken
	}

	return claims, nil
}
