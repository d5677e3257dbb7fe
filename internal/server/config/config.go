// Package config отвечает за:
// - чтение server.yaml
// - подстановку переменных окружения вида ${JWT_SECRET}
// - проставление дефолтов
// - валидацию (чтобы сервер не стартовал с дырявыми настройками)
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/stretchr/testify/assert/yaml"
)

// Config — корневая структура всего конфига сервера.
type Config struct {
	Env        string           `yaml:"env"` // dev|stage|prod
	Server     ServerConfig     `yaml:"server"`
	TLS        TLSConfig        `yaml:"tls"`
	DB         DBConfig         `yaml:"db"`
	Migrations MigrationsConfig `yaml:"migrations"`
	Auth       AuthConfig       `yaml:"auth"`
	Password   PasswordConfig   `yaml:"password"`
	Security   SecurityConfig   `yaml:"security"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig — настройки HTTP-сервера.
type ServerConfig struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	TrustProxy        bool          `yaml:"trust_proxy"` // доверять ли заголовкам X-Forwarded-*
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"` // время на graceful shutdown
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`   // лимит размера тела запроса
}

// TLSConfig — настройки HTTPS.
//
// В dev сервер обычно работает по HTTP за прокси,
// поэтому TLS опционален; Secure-атрибут cookie привязан к env.
type TLSConfig struct {
	Enabled    bool   `yaml:"enabled"`
	CertFile   string `yaml:"cert_file"`
	KeyFile    string `yaml:"key_file"`
	MinVersion string `yaml:"min_version"` // "1.2"|"1.3"
}

// DBConfig — настройки подключения к базе данных.
type DBConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	QueryTimeout    time.Duration `yaml:"query_timeout"`
}

// MigrationsConfig — настройки миграций БД.
type MigrationsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// AuthConfig — настройки аутентификации.
type AuthConfig struct {
	TokenTTL time.Duration `yaml:"token_ttl"` // срок жизни сессионного токена
	JWT      JWTConfig     `yaml:"jwt"`
	Cookie   CookieConfig  `yaml:"cookie"`
}

// JWTConfig — как подписываем JWT.
type JWTConfig struct {
	Algorithm  string `yaml:"algorithm"`   // сейчас поддерживаем только HS256
	SigningKey string `yaml:"signing_key"` // может содержать ${JWT_SECRET}
}

// CookieConfig — сессионный cookie с токеном.
//
// Secure-атрибут не настраивается напрямую: он включается
// автоматически при env=prod (см. Config.SecureCookies).
type CookieConfig struct {
	Name string `yaml:"name"` // имя cookie (token)
}

// PasswordConfig — настройки хэширования паролей пользователей.
type PasswordConfig struct {
	Hasher string       `yaml:"hasher"` // bcrypt
	Bcrypt BcryptConfig `yaml:"bcrypt"`
}

// BcryptConfig — параметры bcrypt.
type BcryptConfig struct {
	Cost int `yaml:"cost"`
}

// SecurityConfig — ограничения/защита.
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig — скользящее окно запросов по client address.
// Защищает /api/auth/me: Max запросов за Window с одного адреса.
type RateLimitConfig struct {
	Enabled bool          `yaml:"enabled"`
	Window  time.Duration `yaml:"window"`
	Max     int           `yaml:"max"`
	Store   string        `yaml:"store"` // memory|redis
	Redis   RedisConfig   `yaml:"redis"`
}

// RedisConfig — подключение к redis для распределённого счётчика.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"` // может содержать ${REDIS_PASSWORD}
	DB       int    `yaml:"db"`
}

// LogConfig — настройки логирования (zap).
type LogConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // json|console
}

// Load читает YAML, подставляет переменные окружения вида ${VAR},
// затем парсит в структуру, проставляет дефолты и валидирует.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать конфиг: %w", err)
	}

	// Подставляем переменные окружения в текст YAML:
	// signing_key: "${JWT_SECRET}" -> signing_key: "реальное_значение"
	expanded := ExpandEnvStrict(string(raw))
	raw = []byte(expanded)

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("не удалось распарсить yaml: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ExpandEnvStrict заменяет ${VAR} на значение из окружения.
// Если переменная не задана — оставляем ${VAR} как есть,
// а потом Validate() упадёт с понятной ошибкой.
func ExpandEnvStrict(s string) string {
	re := regexp.MustCompile(`\$\{([A-Z0-9_]+)\}`)
	return re.ReplaceAllStringFunc(s, func(m string) string {
		sub := re.FindStringSubmatch(m)
		if len(sub) != 2 {
			return m
		}
		if val, ok := os.LookupEnv(sub[1]); ok {
			return val
		}
		return m
	})
}

// ApplyDefaults — дефолтные значения, если в yaml поле не задано.
func ApplyDefaults(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = 7 * 24 * time.Hour
	}
	if cfg.Auth.JWT.Algorithm == "" {
		cfg.Auth.JWT.Algorithm = "HS256"
	}
	if cfg.Auth.Cookie.Name == "" {
		cfg.Auth.Cookie.Name = "token"
	}
	if cfg.Password.Hasher == "" {
		cfg.Password.Hasher = "bcrypt"
	}
	if cfg.Password.Bcrypt.Cost == 0 {
		cfg.Password.Bcrypt.Cost = 10
	}
	if cfg.Security.RateLimit.Window == 0 {
		cfg.Security.RateLimit.Window = 15 * time.Minute
	}
	if cfg.Security.RateLimit.Max == 0 {
		cfg.Security.RateLimit.Max = 100
	}
	if cfg.Security.RateLimit.Store == "" {
		cfg.Security.RateLimit.Store = "memory"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}

// Validate проверяет, что конфиг заполнен корректно и безопасно.
// Если что-то не так — возвращаем ошибку и сервер НЕ стартует.
func (c *Config) Validate() error {
	// Базовая проверка сервера
	if c.Server.Host == "" {
		return errors.New("server.host обязателен")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port некорректен: %d", c.Server.Port)
	}

	// TLS/HTTPS
	if c.TLS.Enabled {
		if c.TLS.CertFile == "" || c.TLS.KeyFile == "" {
			return errors.New("tls.cert_file и tls.key_file обязательны при tls.enabled=true")
		}
		if c.TLS.MinVersion == "" {
			c.TLS.MinVersion = "1.2"
		}
		// TLS 1.0/1.1 считаются небезопасными — запрещаем
		if c.TLS.MinVersion == "1.0" || c.TLS.MinVersion == "1.1" {
			return fmt.Errorf("tls.min_version=%s небезопасен; используй 1.2 или 1.3", c.TLS.MinVersion)
		}
	}

	// База данных
	if c.DB.DSN == "" {
		return errors.New("db.dsn обязателен")
	}
	// Если ${DATABASE_URL} не подставился — лучше упасть сейчас с понятной
	// ошибкой, чем позже с невнятной ошибкой коннекта
	if strings.Contains(c.DB.DSN, "${") && strings.Contains(c.DB.DSN, "}") {
		return fmt.Errorf("db.dsn содержит неподставленную переменную: %q (нужно задать DATABASE_URL)", c.DB.DSN)
	}

	// JWT — отсутствие секрета это фатальная ошибка старта,
	// а не ошибка на каждый запрос
	alg := strings.ToUpper(strings.TrimSpace(c.Auth.JWT.Algorithm))
	if alg != "HS256" {
		return fmt.Errorf("auth.jwt.algorithm должен быть HS256 (сейчас %q)", c.Auth.JWT.Algorithm)
	}

	key := strings.TrimSpace(c.Auth.JWT.SigningKey)
	if key == "" {
		return errors.New("auth.jwt.signing_key обязателен (через ${JWT_SECRET} или прямо строкой)")
	}
	// Если ${JWT_SECRET} не подставился — значит переменная окружения не задана
	if strings.Contains(key, "${") && strings.Contains(key, "}") {
		return fmt.Errorf("auth.jwt.signing_key содержит неподставленную переменную: %q (нужно задать JWT_SECRET)", key)
	}
	// Для HS256 ключ должен быть длинным и случайным
	if len(key) < 32 {
		return fmt.Errorf("auth.jwt.signing_key слишком короткий (%d символов); нужно >= 32", len(key))
	}

	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl должен быть > 0")
	}

	// Хэширование паролей
	if strings.ToLower(c.Password.Hasher) != "bcrypt" {
		return fmt.Errorf("password.hasher должен быть bcrypt (сейчас %q)", c.Password.Hasher)
	}
	if c.Password.Bcrypt.Cost < 10 {
		return fmt.Errorf("password.bcrypt.cost должен быть >= 10 (сейчас %d)", c.Password.Bcrypt.Cost)
	}

	// Rate limit
	if c.Security.RateLimit.Enabled {
		if c.Security.RateLimit.Window <= 0 {
			return errors.New("security.rate_limit.window должен быть > 0 при включённом rate_limit")
		}
		if c.Security.RateLimit.Max <= 0 {
			return errors.New("security.rate_limit.max должен быть > 0 при включённом rate_limit")
		}
		switch c.Security.RateLimit.Store {
		case "memory":
		case "redis":
			if c.Security.RateLimit.Redis.Addr == "" {
				return errors.New("security.rate_limit.redis.addr обязателен при store=redis")
			}
		default:
			return fmt.Errorf("security.rate_limit.store должен быть memory|redis (сейчас %q)", c.Security.RateLimit.Store)
		}
	}

	return nil
}

// IsProd сообщает, работает ли сервер в production-окружении.
// От этого зависят Secure-атрибут cookie и подробность логов/ошибок.
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// ApplyEnvOverrides — опциональная штука: даёт возможность переопределять
// некоторые настройки через переменные окружения без ${...} в yaml.
// Например SERVER_PORT=9090 переопределит server.port.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			c.Server.Port = p
		}
	}
}
