package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/emissions-cli/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored run snapshots",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		if st == nil {
			return eris.New("runs: no store configured (set EMISSIONS_STORE_DRIVER)")
		}
		defer st.Close() //nolint:errcheck

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := st.ListRuns(ctx, limit)
		if err != nil {
			return eris.Wrap(err, "runs list")
		}

		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs found.")
			return nil
		}

		formatRunsList(os.Stdout, runs)
		return nil
	},
}

func formatRunsList(out io.Writer, runs []store.RunSummary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSOURCE\tROWS\tCREATED")
	_, _ = fmt.Fprintln(w, "--\t------\t----\t-------")

	for _, r := range runs {
		source := r.Source
		if len(source) > 40 {
			source = "..." + source[len(source)-37:]
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			truncateID(r.ID),
			source,
			r.RowCount,
			r.CreatedAt.Format(time.RFC3339),
		)
	}
	_ = w.Flush()
}

func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	runsCmd.Flags().Int("limit", 50, "max number of runs to display")
	rootCmd.AddCommand(runsCmd)
}
