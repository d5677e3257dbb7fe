package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/ergotype/internal/server/config"
	crypt "github.com/IvanChernomyrdin/ergotype/internal/server/crypto"
	"github.com/IvanChernomyrdin/ergotype/internal/server/models"
	"github.com/IvanChernomyrdin/ergotype/internal/server/service"
	"github.com/IvanChernomyrdin/ergotype/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/ergotype/internal/shared/errors"
)

// создаём сервис
func newAuthService(t *testing.T) (*service.AuthService, *mocks.MockUsersRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)

	svc := service.NewAuthService(users, testConfig())
	return svc, users
}

// Успешная регистрация
func TestAuthService_Signup_OK(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)

	users.EXPECT().
		GetByEmail(ctx, "new@mail.com").
		Return(nil, serr.ErrNotFound)

	users.EXPECT().
		Create(ctx, "new@mail.com", gomock.Any()).
		DoAndReturn(func(_ context.Context, email, hash string) (*models.User, error) {
			// в БД уходит bcrypt-хэш, не сам пароль
			require.NotEqual(t, "Password1!", hash)
			require.True(t, crypt.VerifyPassword("Password1!", hash))
			return &models.User{ID: 1, Email: email}, nil
		})

	user, err := svc.Signup(ctx, "new@mail.com", "Password1!")

	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, int64(1), user.ID)
}

// Email уже занят: ни записи, ни хэширования, ответ неотличим от успеха
func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)

	users.EXPECT().
		GetByEmail(ctx, "taken@mail.com").
		Return(&models.User{ID: 5, Email: "taken@mail.com"}, nil)

	// Create не вызывается вовсе — gomock это проверит

	user, err := svc.Signup(ctx, "taken@mail.com", "Password1!")

	require.NoError(t, err)
	require.Nil(t, user)
}

// Проигрыш гонки за email — та же ветка, что и дубликат
func TestAuthService_Signup_LostRace(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)

	users.EXPECT().
		GetByEmail(ctx, "race@mail.com").
		Return(nil, serr.ErrNotFound)

	users.EXPECT().
		Create(ctx, "race@mail.com", gomock.Any()).
		Return(nil, serr.ErrAlreadyExists)

	user, err := svc.Signup(ctx, "race@mail.com", "Password1!")

	require.NoError(t, err)
	require.Nil(t, user)
}

// Валидация: слабые пароли и кривые email заворачиваются до похода в БД
func TestAuthService_Signup_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	cases := []struct {
		name     string
		email    string
		password string
		field    string
	}{
		{"no_digit_no_upper", "a@b.com", "password", "password"},
		{"no_symbol", "a@b.com", "Password1", "password"},
		{"too_short", "a@b.com", "Pas1!", "password"},
		// 7 символов, но 11 байт: длина должна считаться в символах
		{"too_short_multibyte", "a@b.com", "ЁЁЁЁ1A!", "password"},
		{"bad_email", "not-an-email", "Password1!", "email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := svc.Signup(ctx, tc.email, tc.password)

			require.Nil(t, user)

			var fe serr.FieldErrors
			require.ErrorAs(t, err, &fe)
			require.Contains(t, fe, tc.field)
		})
	}
}

// Пробелы вокруг email срезаются до проверки уникальности и записи
func TestAuthService_Signup_TrimsEmail(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)

	users.EXPECT().
		GetByEmail(ctx, "new@mail.com").
		Return(nil, serr.ErrNotFound)

	users.EXPECT().
		Create(ctx, "new@mail.com", gomock.Any()).
		Return(&models.User{ID: 1, Email: "new@mail.com"}, nil)

	user, err := svc.Signup(ctx, "  new@mail.com \n", "Password1!")

	require.NoError(t, err)
	require.Equal(t, "new@mail.com", user.Email)
}

// Успешный логин
func TestAuthService_Login_OK(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)

	password := "Password1!"
	hash, err := crypt.HashPassword(password, crypt.MinBcryptCost)
	require.NoError(t, err)

	users.EXPECT().
		GetByEmail(ctx, "test@mail.com").
		Return(&models.User{ID: 3, Email: "test@mail.com", PasswordHash: hash}, nil)

	user, token, err := svc.Login(ctx, "test@mail.com", password)

	require.NoError(t, err)
	require.Equal(t, int64(3), user.ID)
	require.NotEmpty(t, token)

	claims, err := crypt.VerifySessionToken(token, testConfig().Auth.JWT.SigningKey)
	require.NoError(t, err)
	require.Equal(t, int64(3), claims.UserID)
	require.Equal(t, "test@mail.com", claims.Email)
}

// Неверный пароль
func TestAuthService_Login_InvalidPassword(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)

	// хешируем ПРАВИЛЬНЫЙ пароль
	hash, err := crypt.HashPassword("Correct-pass1", crypt.MinBcryptCost)
	require.NoError(t, err)

	users.EXPECT().
		GetByEmail(ctx, "test@mail.com").
		Return(&models.User{ID: 3, Email: "test@mail.com", PasswordHash: hash}, nil)

	// пробуем войти с НЕПРАВИЛЬНЫМ паролем
	_, _, err = svc.Login(ctx, "test@mail.com", "Wrong-pass1")

	require.ErrorIs(t, err, serr.ErrInvalidCredentials)
}

// Email не существует — ошибка та же, что и при неверном пароле
func TestAuthService_Login_EmailNotFound(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)

	users.EXPECT().
		GetByEmail(ctx, "test@mail.com").
		Return(nil, serr.ErrNotFound)

	_, _, err := svc.Login(ctx, "test@mail.com", "Password1!")

	require.ErrorIs(t, err, serr.ErrInvalidCredentials)
}

// Форма ответа регистрации
func TestShapeSignupResult(t *testing.T) {
	created := &models.User{ID: 9, Email: "a@b.com"}

	withUser := service.ShapeSignupResult(created)
	require.Equal(t, service.SignupMessage, withUser.Message)
	require.NotNil(t, withUser.User)
	require.Equal(t, int64(9), withUser.User.ID)

	// дубликат: то же сообщение, user опущен
	withoutUser := service.ShapeSignupResult(nil)
	require.Equal(t, service.SignupMessage, withoutUser.Message)
	require.Nil(t, withoutUser.User)
}

// Тестовый конфиг
func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			TokenTTL: time.Hour,
			JWT: config.JWTConfig{
				Algorithm:  "HS256",
				SigningKey: "supersecretkeysupersecretkey123456",
			},
		},
		Password: config.PasswordConfig{
			Hasher: "bcrypt",
			Bcrypt: config.BcryptConfig{
				Cost: 10,
			},
		},
	}
}
