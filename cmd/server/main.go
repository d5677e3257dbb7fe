// @title           ErgoType API
// @version         1.0
// @description     Keyboard catalog backend (ErgoType).
// @description     Provides user authentication and the keyboards catalog.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
//
// Package main содержит точку входа серверного приложения ErgoType.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера из файла ./configs/server.yaml;
//   - инициализацию подключения к базе данных и управление его жизненным циклом;
//   - создание репозиториев, сервисов, middleware и HTTP-обработчиков;
//   - сборку rate limiter-а (memory или redis по конфигу);
//   - настройку и запуск сервера с заданными таймаутами;
//   - обработку системных сигналов завершения (SIGINT, SIGTERM, SIGQUIT);
//   - корректное (graceful) завершение работы сервера с таймаутом.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
// HTTP API сервера реализовано в пакете internal/server/api и документируется с помощью OpenAPI (Swagger).
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/ergotype/internal/server/api"
	"github.com/IvanChernomyrdin/ergotype/internal/server/config"
	"github.com/IvanChernomyrdin/ergotype/internal/server/middleware"
	h "github.com/IvanChernomyrdin/ergotype/internal/server/net/http"
	"github.com/IvanChernomyrdin/ergotype/internal/server/ratelimit"
	"github.com/IvanChernomyrdin/ergotype/internal/server/repository"
	"github.com/IvanChernomyrdin/ergotype/internal/server/service"
	"github.com/IvanChernomyrdin/ergotype/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/ergotype/swagger/docs"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.NewHTTPLogger().Sugar().Warnf("no .env file loaded, error: %v", err)
	}

	// отсутствие/короткий signing key валится здесь, до запуска сервера
	cfg, err := config.Load("./configs/server.yaml")
	if err != nil {
		logger.NewHTTPLogger().Sugar().Fatal(err)
	}
	cfg.ApplyEnvOverrides()

	httpLogger := logger.NewHTTPLogger()
	if !cfg.IsProd() {
		httpLogger = logger.NewDevLogger()
	}
	sugar := httpLogger.Sugar()

	// подключаем базу данных и накатываем миграции
	migrationsPath := cfg.Migrations.Path
	if !cfg.Migrations.Enabled {
		migrationsPath = ""
	}
	if err := config.Init(cfg.DB.DSN, migrationsPath); err != nil {
		sugar.Fatal(err)
	}

	db := config.GetDB()
	defer func() {
		if db != nil {
			db.Close()
		}
	}()

	// создаём репы
	usersRepo := repository.NewUsersRepository(db)
	keyboardsRepo := repository.NewKeyboardsRepository(db)
	repos := service.Repositories{
		Users:     usersRepo,
		Keyboards: keyboardsRepo,
	}
	// создаём сервис
	svc := service.NewServices(repos, cfg)

	// проверка сессионного cookie
	verifier := middleware.NewSessionVerifier(
		cfg.Auth.JWT.SigningKey,
		cfg.Auth.Cookie.Name,
		usersRepo,
	)

	// rate limiter для /api/auth/me
	var rateLimitMw func(http.Handler) http.Handler
	if cfg.Security.RateLimit.Enabled {
		var store ratelimit.Store
		switch cfg.Security.RateLimit.Store {
		case "redis":
			client := redis.NewClient(&redis.Options{
				Addr:     cfg.Security.RateLimit.Redis.Addr,
				Password: cfg.Security.RateLimit.Redis.Password,
				DB:       cfg.Security.RateLimit.Redis.DB,
			})
			store = ratelimit.NewRedisStore(client)
		default:
			store = ratelimit.NewMemoryStore()
		}
		limiter := ratelimit.NewLimiter(store, cfg.Security.RateLimit.Window, cfg.Security.RateLimit.Max)
		rateLimitMw = middleware.RateLimitMiddleware(limiter, cfg.Server.TrustProxy)
	}

	// создаём хандлер
	handler := api.NewHandler(svc, httpLogger, verifier, rateLimitMw, api.CookieSettings{
		Name:   cfg.Auth.Cookie.Name,
		MaxAge: cfg.Auth.TokenTTL,
		Secure: cfg.IsProd(),
	})
	// создаём роутер
	router := h.NewRouter(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infof("server started on %s (env=%s)", addr, cfg.Env)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единная обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}
