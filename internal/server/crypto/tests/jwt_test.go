package tests

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	crypt "github.com/IvanChernomyrdin/ergotype/internal/server/crypto"
	serr "github.com/IvanChernomyrdin/ergotype/internal/shared/errors"
)

func testJWTConfig() crypt.JWTConfig {
	return crypt.JWTConfig{
		SigningKey: "supersecretkeysupersecretkey123456",
		TokenTTL:   7 * 24 * time.Hour,
	}
}

func TestNewSessionToken_Success(t *testing.T) {
	t.Parallel()
	cfg := testJWTConfig()

	tokenStr, err := crypt.NewSessionToken(42, "test@mail.com", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokenStr == "" {
		t.Fatal("expected non-empty token string")
	}

	// Парсим и валидируем токен
	parsed, err := jwt.ParseWithClaims(
		tokenStr,
		&crypt.SessionClaims{},
		func(token *jwt.Token) (any, error) {
			// Проверяем алгоритм
			if token.Method != jwt.SigningMethodHS256 {
				t.Fatalf("unexpected signing method: %v", token.Method)
			}
			return []byte(cfg.SigningKey), nil
		},
	)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}

	if !parsed.Valid {
		t.Fatal("token is not valid")
	}

	claims, ok := parsed.Claims.(*crypt.SessionClaims)
	if !ok {
		t.Fatal("claims type assertion failed")
	}

	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Email != "test@mail.com" {
		t.Fatalf("expected email %q, got %q", "test@mail.com", claims.Email)
	}

	if claims.IssuedAt == nil {
		t.Fatal("IssuedAt is nil")
	}
	if claims.ExpiresAt == nil {
		t.Fatal("ExpiresAt is nil")
	}
	if time.Until(claims.ExpiresAt.Time) <= 0 {
		t.Fatal("token already expired")
	}
}

func TestVerifySessionToken_RoundTrip(t *testing.T) {
	t.Parallel()
	cfg := testJWTConfig()

	tokenStr, err := crypt.NewSessionToken(7, "user@mail.com", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := crypt.VerifySessionToken(tokenStr, cfg.SigningKey)
	if err != nil {
		t.Fatalf("VerifySessionToken error: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("expected user id 7, got %d", claims.UserID)
	}
	if claims.Email != "user@mail.com" {
		t.Fatalf("expected email %q, got %q", "user@mail.com", claims.Email)
	}
}

// Просроченный токен — отдельная доменная ошибка
func TestVerifySessionToken_Expired(t *testing.T) {
	t.Parallel()
	cfg := testJWTConfig()
	cfg.TokenTTL = -time.Hour

	tokenStr, err := crypt.NewSessionToken(7, "user@mail.com", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = crypt.VerifySessionToken(tokenStr, cfg.SigningKey)
	if !errors.Is(err, serr.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

// Подпись другим ключом
func TestVerifySessionToken_WrongKey(t *testing.T) {
	t.Parallel()
	cfg := testJWTConfig()

	tokenStr, err := crypt.NewSessionToken(7, "user@mail.com", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = crypt.VerifySessionToken(tokenStr, "another-key-another-key-another12")
	if !errors.Is(err, serr.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

// Мусор вместо токена
func TestVerifySessionToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := crypt.VerifySessionToken("definitely.not.a-jwt", testJWTConfig().SigningKey)
	if !errors.Is(err, serr.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
