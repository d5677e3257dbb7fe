package cli

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// NewMigrateCmd создаёт CLI-команду управления миграциями схемы.
//
// Подкоманды:
//
//	migrate up    — применить все непройденные миграции
//	migrate down  — откатить одну последнюю миграцию
//
// Сервер применяет миграции при старте сам (если это включено в конфиге),
// команда нужна для ручного управления схемой и откатов.
func NewMigrateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Управление миграциями схемы",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Применить все непройденные миграции",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator(app)
			if err != nil {
				return err
			}
			defer m.Close()

			if err := m.Up(); err != nil {
				if errors.Is(err, migrate.ErrNoChange) {
					fmt.Fprintln(cmd.OutOrStdout(), "no change")
					return nil
				}
				return fmt.Errorf("migrate up: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Откатить одну последнюю миграцию",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator(app)
			if err != nil {
				return err
			}
			defer m.Close()

			if err := m.Steps(-1); err != nil {
				if errors.Is(err, migrate.ErrNoChange) {
					fmt.Fprintln(cmd.OutOrStdout(), "no change")
					return nil
				}
				return fmt.Errorf("migrate down: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "one migration rolled back")
			return nil
		},
	})

	return cmd
}

func newMigrator(app *App) (*migrate.Migrate, error) {
	if app.DatabaseDSN == "" {
		return nil, fmt.Errorf("database DSN is empty; set DATABASE_URL or pass --dsn")
	}
	m, err := migrate.New(app.MigrationsPath, app.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("init migrator: %w", err)
	}
	return m, nil
}
