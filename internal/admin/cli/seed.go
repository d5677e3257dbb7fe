package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Демо-каталог для локальной разработки.
var sampleKeyboards = []struct {
	name   string
	brand  string
	layout string
	price  string
}{
	{"ErgoDox EZ", "ZSA", "split", "354.00"},
	{"Kinesis Advantage360 Pro", "Kinesis", "contoured", "449.00"},
	{"Moonlander Mark I", "ZSA", "split", "365.00"},
}

// NewSeedCmd создаёт CLI-команду заполнения каталога демо-данными.
//
// Команда очищает таблицу keyboards и вставляет несколько демо-клавиатур.
// Работает только при ENV=dev (или пустом ENV); в остальных окружениях
// требуется явный флаг --force, чтобы случайно не стереть боевой каталог.
func NewSeedCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Заполнить каталог демо-клавиатурами",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := os.Getenv("ENV")
			if env != "" && env != "dev" && !force {
				return fmt.Errorf("refusing to seed in %q environment (use --force)", env)
			}

			db, err := app.OpenDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if _, err := db.Exec(`DELETE FROM keyboards`); err != nil {
				return fmt.Errorf("wipe keyboards: %w", err)
			}

			for _, k := range sampleKeyboards {
				_, err := db.Exec(
					`INSERT INTO keyboards (name, brand, layout, price) VALUES ($1, $2, $3, $4)`,
					k.name, k.brand, k.layout, k.price,
				)
				if err != nil {
					return fmt.Errorf("insert %q: %w", k.name, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d keyboards\n", len(sampleKeyboards))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "seed even outside the dev environment")

	return cmd
}
