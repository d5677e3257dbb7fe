package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/IvanChernomyrdin/ergotype/internal/server/config"
	"github.com/IvanChernomyrdin/ergotype/internal/server/crypto"
	"github.com/IvanChernomyrdin/ergotype/internal/server/models"
	serr "github.com/IvanChernomyrdin/ergotype/internal/shared/errors"
)

// Тексты валидационных сообщений — контракт API, менять нельзя.
const (
	MsgInvalidEmail   = "Please enter a valid email address"
	MsgWeakPassword   = "Password must be at least 8 characters and contain uppercase, lowercase, number, and symbol"
	MsgPasswordNeeded = "Password is required"

	// SignupMessage — единый ответ регистрации: одинаковый и для нового
	// email, и для уже занятого, чтобы нельзя было прощупать базу.
	SignupMessage = "If an account with this email doesn't exist, it has been created successfully"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService реализует бизнес-логику аутентификации.
//
// Ответственность:
//   - регистрация пользователей (валидация, анти-enumeration)
//   - аутентификация (логин) и выпуск сессионного токена
//   - загрузка текущего пользователя по id из токена
type AuthService struct {
	users UsersRepo

	bcryptCost int
	jwt        crypto.JWTConfig
}

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, cfg *config.Config) *AuthService {
	return &AuthService{
		users:      users,
		bcryptCost: cfg.Password.Bcrypt.Cost,
		jwt: crypto.JWTConfig{
			SigningKey: cfg.Auth.JWT.SigningKey,
			TokenTTL:   cfg.Auth.TokenTTL,
		},
	}
}

// ValidateSignup проверяет входные данные регистрации.
//
// Требования к паролю: минимум 8 символов, хотя бы одна цифра,
// одна заглавная буква и один символ (не буква/цифра).
// Возвращает nil если всё в порядке.
func ValidateSignup(email, password string) serr.FieldErrors {
	fe := serr.FieldErrors{}

	if !emailRe.MatchString(email) {
		fe["email"] = MsgInvalidEmail
	}

	var hasDigit, hasUpper, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			// строчные буквы политика не требует отдельно
		default:
			hasSymbol = true
		}
	}
	// длина считается в символах, не в байтах
	if utf8.RuneCountInString(password) < 8 || !hasDigit || !hasUpper || !hasSymbol {
		fe["password"] = MsgWeakPassword
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

// ValidateLogin проверяет входные данные логина.
// Для пароля здесь проверяется только непустота: политика сложности
// применяется при регистрации, а не при входе.
func ValidateLogin(email, password string) serr.FieldErrors {
	fe := serr.FieldErrors{}

	if !emailRe.MatchString(email) {
		fe["email"] = MsgInvalidEmail
	}
	if password == "" {
		fe["password"] = MsgPasswordNeeded
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Signup регистрирует нового пользователя.
//
// Поведение (анти-enumeration):
//   - валидация выполняется до любых побочных эффектов;
//   - если email уже занят — НИКАКОЙ записи и повторного хэширования,
//     возвращается (nil, nil): хендлер отдаёт тот же успешный ответ;
//   - проигрыш гонки двух одновременных регистраций (unique index в БД)
//     складывается в ту же ветку — это штатная ситуация, не ошибка.
//
// Возвращает:
//   - (user, nil) — создан новый пользователь
//   - (nil, nil) — email уже существует, ответ неотличим от создания
//   - (nil, FieldErrors) — ошибки валидации по полям
func (s *AuthService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	// email нормализуется до проверки уникальности; регистр не меняем
	email = strings.TrimSpace(email)

	if fe := ValidateSignup(email, password); fe != nil {
		return nil, fe
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, serr.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, nil
	}

	hash, err := crypto.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, serr.ErrInternal
	}

	user, err := s.users.Create(ctx, email, hash)
	if err != nil {
		// проиграли гонку за email — для клиента это тот же успех
		if errors.Is(err, serr.ErrAlreadyExists) {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// SignupResult — тело успешного ответа регистрации (всегда 201).
type SignupResult struct {
	Message string             `json:"message"`
	User    *models.UserPublic `json:"user,omitempty"`
}

// ShapeSignupResult формирует ответ регистрации.
//
// Политика "всегда 201, одно сообщение" оформлена явной функцией:
//   - created != nil — включаем публичную проекцию пользователя;
//   - created == nil (email уже есть) — поле user опускается, чтобы
//     форма ответа не выдавала существование аккаунта.
func ShapeSignupResult(created *models.User) SignupResult {
	res := SignupResult{Message: SignupMessage}
	if created != nil {
		pub := created.Public()
		res.User = &pub
	}
	return res
}

// Login аутентифицирует пользователя и выдаёт сессионный токен.
//
// Поведение:
//   - не раскрывает, существует ли email: и неизвестный email,
//     и неверный пароль дают одну и ту же ошибку;
//   - повторные логины независимы и безопасны при конкурентных вызовах —
//     каждый выпускает свой токен, общее состояние не мутируется.
//
// Ошибки:
//   - FieldErrors при невалидном вводе
//   - ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(email)

	if fe := ValidateLogin(email, password); fe != nil {
		return nil, "", fe
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// не палим существование email
		if errors.Is(err, serr.ErrNotFound) {
			return nil, "", serr.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !crypto.VerifyPassword(password, user.PasswordHash) {
		return nil, "", serr.ErrInvalidCredentials
	}

	token, err := crypto.NewSessionToken(user.ID, user.Email, s.jwt)
	if err != nil {
		return nil, "", serr.ErrInternal
	}

	return user, token, nil
}
