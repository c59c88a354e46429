package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/emissions-cli/internal/geo"
	"github.com/sells-group/emissions-cli/internal/pipeline"
)

var classifyCmd = &cobra.Command{
	Use:   "classify NAME...",
	Short: "Print the continent each country or region name classifies to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := pipeline.NewClassifier(cfg.Classify.OverridesFile)
		if err != nil {
			return err
		}
		formatClassifications(os.Stdout, c, args)
		return nil
	},
}

func formatClassifications(out io.Writer, c *geo.Classifier, names []string) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tCONTINENT\tSOURCE")
	_, _ = fmt.Fprintln(w, "----\t---------\t------")
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", name, c.Classify(name), c.Source(name))
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
