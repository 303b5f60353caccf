package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnleydelgado/legacy-app-sub005/internal/config"
	logpkg "github.com/johnleydelgado/legacy-app-sub005/internal/logger"
)

const configFlag = "config"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "searchd <command> [flags]",
		Short:         "Free-text search over customers, quotes, orders, invoices and shipping orders",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringP(configFlag, "c", "", "Config file (default: config/$ENV.yaml)")

	root.AddCommand(
		serveCmd(),
		migrateCmd(),
		explainCmd(),
		versionCmd(),
	)
	return root
}

// loadConfig reads the --config file when given, otherwise config/$ENV.yaml.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString(configFlag)
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load(config.GetEnv())
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	l, err := logpkg.NewLogger(config.GetEnv(), cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return l, nil
}
