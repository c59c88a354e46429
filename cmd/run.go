package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/emissions-cli/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full emissions report pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate(); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close() //nolint:errcheck
		}

		runCfg, err := pipeline.FromConfig(cfg, st)
		if err != nil {
			return err
		}

		result, err := pipeline.Run(ctx, runCfg)
		if err != nil {
			return err
		}

		zap.L().Info("report complete",
			zap.String("run_id", result.RunID),
			zap.Int("rows", result.Diagnostics.ShapeAfter.Rows),
			zap.Int("artifacts", len(result.Artifacts)),
		)

		return writeJSON(os.Stdout, result)
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Load, clean, and write the cleaned dataset only",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		runCfg, err := pipeline.FromConfig(cfg, nil)
		if err != nil {
			return err
		}

		result, err := pipeline.Clean(cmd.Context(), runCfg)
		if err != nil {
			return err
		}
		return writeJSON(os.Stdout, result.Diagnostics)
	},
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode json")
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(cleanCmd)
}
