package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/emissions-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "emissions-cli",
	Short: "CO₂ emissions report pipeline",
	Long:  "Cleans the OWID CO₂ dataset, aggregates emissions by year, continent, country and sector, and writes a statistics report, charts, and an optional run snapshot.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
