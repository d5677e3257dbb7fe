// Package cli реализует административный командный интерфейс (CLI) ErgoType.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - служебные операции, которые не должны торчать наружу через HTTP:
//     миграции схемы, заполнение каталога демо-данными, создание пользователей.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	_ "github.com/jackc/pgx/v4/stdlib"
)

// App содержит состояние CLI-приложения, разделяемое между командами.
//
// В структуре хранятся параметры подключения к базе данных.
// Экземпляр App создаётся при построении root-команды и передаётся в подкоманды.
type App struct {
	// DatabaseDSN — строка подключения к PostgreSQL.
	// По умолчанию берётся из переменной окружения DATABASE_URL.
	DatabaseDSN string

	// MigrationsPath — путь к каталогу миграций в формате golang-migrate
	// (например, "file://migrations/postgres").
	MigrationsPath string
}

// OpenDB открывает подключение к базе и проверяет его пингом.
// Закрытие подключения — обязанность вызывающей команды.
func (a *App) OpenDB() (*sql.DB, error) {
	if a.DatabaseDSN == "" {
		return nil, fmt.Errorf("database DSN is empty; set DATABASE_URL or pass --dsn")
	}
	db, err := sql.Open("pgx", a.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются для вывода информации о сборке (команда version).
// В PersistentPreRunE подхватывается .env и значения по умолчанию из окружения.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "ergotype-admin",
		Short: "ErgoType admin CLI — служебные операции каталога",
		Long: `ErgoType admin CLI.

Команды:
  migrate      Применить/откатить миграции схемы
  seed         Заполнить каталог демо-клавиатурами
  user-create  Создать пользователя (пароль запрашивается скрыто)
  version      Версия и дата сборки

Примеры:

Миграции:
  ergotype-admin migrate up
  ergotype-admin migrate down

Демо-данные:
  ergotype-admin seed

Создание пользователя:
  ergotype-admin user-create --email admin@ergotype.dev
`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env может отсутствовать — это не ошибка
			_ = godotenv.Load()

			if app.DatabaseDSN == "" {
				app.DatabaseDSN = os.Getenv("DATABASE_URL")
			}
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.DatabaseDSN, "dsn", "", "PostgreSQL DSN (default: $DATABASE_URL)")
	cmd.PersistentFlags().StringVar(&app.MigrationsPath, "migrations", "file://migrations/postgres", "migrations source URL")

	cmd.AddCommand(NewMigrateCmd(app))
	cmd.AddCommand(NewSeedCmd(app))
	cmd.AddCommand(NewUserCreateCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке выполнения команды сообщение выводится в stderr, после чего процесс
// завершается с кодом 1 (os.Exit(1)).
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
