// basket is a small demo of the basket package: it fills a basket with the
// prices given on the command line and prints what the manager charges.
//
//	basket total 5 3      # 10.00 with the default surcharge
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/toejough/basketimp/basket"
)

func main() {
	err := newRootCommand(os.Stdout, os.Stderr).Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "basket",
		Short:         "Add priced products to a basket and report the total",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file to load first")

	root.AddCommand(&cobra.Command{
		Use:   "total PRICE...",
		Short: "Print the basket total including the surcharge",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := loadEnvFile(envFile)
			if err != nil {
				return err
			}

			cfg, err := basket.LoadConfig()
			if err != nil {
				return err
			}

			logger := newLogger(stderr, cfg.Level())

			total, err := totalFor(args, cfg, logger)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), total.StringFixed(2))

			return nil
		},
	})

	return root
}

// loadEnvFile loads path if it exists.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	return nil
}

func newLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func totalFor(prices []string, cfg basket.Config, logger zerolog.Logger) (decimal.Decimal, error) {
	b := basket.New()

	mgr := basket.NewInterfaceManager(b, basket.WithConfig(cfg), basket.WithLogger(logger))
	defer mgr.Close()

	for _, raw := range prices {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid price %q: %w", raw, err)
		}

		err = mgr.AddProduct(basket.NewProduct(price))
		if err != nil {
			return decimal.Zero, err
		}
	}

	logger.Info().Int("products", b.Len()).Stringer("surcharge", mgr.Surcharge()).Msg("basket filled")

	return mgr.TotalPrice(), nil
}
