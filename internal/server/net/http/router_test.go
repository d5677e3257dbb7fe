package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/ergotype/internal/server/api"
	"github.com/IvanChernomyrdin/ergotype/internal/server/config"
	"github.com/IvanChernomyrdin/ergotype/internal/server/crypto"
	"github.com/IvanChernomyrdin/ergotype/internal/server/middleware"
	"github.com/IvanChernomyrdin/ergotype/internal/server/models"
	"github.com/IvanChernomyrdin/ergotype/internal/server/ratelimit"
	"github.com/IvanChernomyrdin/ergotype/internal/server/service"
	svcmocks "github.com/IvanChernomyrdin/ergotype/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/ergotype/internal/shared/errors"
	"github.com/IvanChernomyrdin/ergotype/internal/shared/logger"
)

func testRouter(t *testing.T, rateLimitMax int) (http.Handler, *svcmocks.MockUsersRepo, *svcmocks.MockKeyboardsRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	usersRepo := svcmocks.NewMockUsersRepo(ctrl)
	keyboardsRepo := svcmocks.NewMockKeyboardsRepo(ctrl)

	// минимальная валидная cfg для AuthService
	cfg := &config.Config{
		Auth: config.AuthConfig{
			TokenTTL: 7 * 24 * time.Hour,
			JWT: config.JWTConfig{
				Algorithm:  "HS256",
				SigningKey: "supersecretkeysupersecretkey123456", // >= 32
			},
			Cookie: config.CookieConfig{Name: "token"},
		},
		Password: config.PasswordConfig{
			Hasher: "bcrypt",
			Bcrypt: config.BcryptConfig{Cost: 10},
		},
	}

	svc := service.NewServices(service.Repositories{Users: usersRepo, Keyboards: keyboardsRepo}, cfg)

	verifier := middleware.NewSessionVerifier(cfg.Auth.JWT.SigningKey, cfg.Auth.Cookie.Name, usersRepo)
	httpLogger := logger.NewHTTPLogger()

	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), time.Minute, rateLimitMax)
	rateLimitMw := middleware.RateLimitMiddleware(limiter, false)

	h := api.NewHandler(svc, httpLogger, verifier, rateLimitMw, api.CookieSettings{
		Name:   cfg.Auth.Cookie.Name,
		MaxAge: cfg.Auth.TokenTTL,
	})

	return NewRouter(h), usersRepo, keyboardsRepo
}

func TestRouter_AuthLogin_OK(t *testing.T) {
	router, usersRepo, _ := testRouter(t, 100)

	email := "test@example.com"
	password := "StrongPass123!"

	hash, err := crypto.HashPassword(password, crypto.MinBcryptCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	usersRepo.
		EXPECT().
		GetByEmail(gomock.Any(), email).
		Return(&models.User{ID: 3, Email: email, PasswordHash: hash}, nil)

	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d, body=%q", http.StatusOK, rec.Code, rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "token" {
		t.Fatalf("expected token cookie, got %+v", cookies)
	}

	// Мини-проверка, что токен похож на JWT (три части через точку)
	if parts := strings.Count(cookies[0].Value, "."); parts < 2 {
		t.Fatalf("token does not look like JWT: %q", cookies[0].Value)
	}
}

// /api/auth/me: лимит срабатывает ДО проверки токена
func TestRouter_Me_RateLimited(t *testing.T) {
	router, usersRepo, _ := testRouter(t, 2)

	token, err := crypto.NewSessionToken(3, "test@example.com", crypto.JWTConfig{
		SigningKey: "supersecretkeysupersecretkey123456",
		TokenTTL:   time.Minute,
	})
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}

	usersRepo.
		EXPECT().
		GetByID(gomock.Any(), int64(3)).
		Return(&models.User{ID: 3, Email: "test@example.com"}, nil).
		Times(2)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d, body=%q", i+1, rec.Code, rec.Body.String())
		}
	}

	// третий запрос: токен валиден, но клиент залимичен
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}

	var res api.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if res.Error != serr.ErrTooManyRequests.Error() {
		t.Fatalf("unexpected error: %q", res.Error)
	}
}

// Каталог не требует аутентификации
func TestRouter_Keyboards_NoAuth(t *testing.T) {
	router, _, keyboardsRepo := testRouter(t, 100)

	keyboardsRepo.
		EXPECT().
		List(gomock.Any()).
		Return([]models.Keyboard{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/keyboards", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRouter_Health(t *testing.T) {
	router, _, _ := testRouter(t, 100)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}

	var res api.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if res.Status != "OK" {
		t.Fatalf("unexpected status: %q", res.Status)
	}
	if _, err := time.Parse(time.RFC3339, res.Timestamp); err != nil {
		t.Fatalf("timestamp is not RFC3339: %q", res.Timestamp)
	}
}
