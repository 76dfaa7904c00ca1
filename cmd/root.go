package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardsmith/internal/config"
	"github.com/arcanaland/cardsmith/internal/logging"
)

var (
	logLevel string
	noColor  bool

	cfg    *config.Config
	logger *slog.Logger
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cardsmith",
	Short: "Tool for extracting game cards from design documents",
	Long: `Cardsmith reads a design document exported as JSON or YAML, finds the card
and token frames on a page, numbers placeholder cards, and exports card records,
artwork and deck pools.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}

		levelName := cfg.LogLevel
		if cmd.Flags().Changed("log-level") {
			levelName = logLevel
		}
		level, err := logging.ParseLevel(levelName)
		if err != nil {
			return err
		}

		logger = logging.New(os.Stderr, level, noColor)
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	RootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	RootCmd.AddCommand(validateCmd)
}
