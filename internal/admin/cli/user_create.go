package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/IvanChernomyrdin/ergotype/internal/server/crypto"
	"github.com/IvanChernomyrdin/ergotype/internal/server/repository"
	"github.com/IvanChernomyrdin/ergotype/internal/server/service"
	serr "github.com/IvanChernomyrdin/ergotype/internal/shared/errors"
)

// NewUserCreateCmd создаёт CLI-команду регистрации пользователя напрямую в БД.
//
// Команда применяет ту же политику валидации email и пароля, что и HTTP-регистрация.
// Пароль запрашивается интерактивно со скрытым вводом; для скриптов/CI есть
// флаг --password-stdin.
//
// Пример использования:
//
//	ergotype-admin user-create --email admin@ergotype.dev
func NewUserCreateCmd(app *App) *cobra.Command {
	var email string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "user-create",
		Short: "Создать пользователя (пароль запрашивается скрыто)",
		RunE: func(cmd *cobra.Command, args []string) error {
			email = strings.TrimSpace(email)

			password, err := readPassword(cmd, passwordStdin)
			if err != nil {
				return err
			}

			if fe := service.ValidateSignup(email, password); fe != nil {
				for field, msg := range fe {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, msg)
				}
				return errors.New("validation failed")
			}

			hash, err := crypto.HashPassword(password, crypto.MinBcryptCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}

			db, err := app.OpenDB()
			if err != nil {
				return err
			}
			defer db.Close()

			users := repository.NewUsersRepository(db)
			user, err := users.Create(cmd.Context(), email, hash)
			if err != nil {
				if errors.Is(err, serr.ErrAlreadyExists) {
					return fmt.Errorf("user %q already exists", email)
				}
				return fmt.Errorf("create user: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "user created: id=%d email=%s\n", user.ID, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email of the new user")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin instead of the terminal")
	cmd.MarkFlagRequired("email")

	return cmd
}

// readPassword читает пароль нового пользователя.
//
// Режимы:
//   - fromStdin=true: читает пароль из STDIN полностью (удобно для скриптов/CI);
//   - fromStdin=false: читает пароль интерактивно из терминала со скрытым вводом.
//
// Важно:
//   - если fromStdin=false, но stdin не является терминалом, функция вернёт ошибку
//     "stdin is not a terminal; use --password-stdin";
//   - пустой пароль считается ошибкой.
func readPassword(cmd *cobra.Command, fromStdin bool) (string, error) {
	if fromStdin {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		pw := bytes.TrimRight(b, "\r\n")
		if len(pw) == 0 {
			return "", errors.New("empty password on stdin")
		}
		return string(pw), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; use --password-stdin")
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	pwBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	pw := strings.TrimSpace(string(pwBytes))
	if pw == "" {
		return "", errors.New("empty password")
	}
	return pw, nil
}
