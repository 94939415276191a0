package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phoenix-ai/apiprobe/internal/report"
)

var reportOut string

var reportCmd = &cobra.Command{
	Use:   "report <summary.md>",
	Short: "Render a markdown summary report to HTML",
	Long:  `Converts a markdown summary produced by a previous run into a standalone HTML page.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args[0]
		md, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("failed to read summary file: %w", err)
		}

		page, err := report.HTMLPage(md)
		if err != nil {
			return fmt.Errorf("failed to render HTML: %w", err)
		}

		out := reportOut
		if out == "" {
			out = strings.TrimSuffix(src, ".md") + ".html"
		}
		if err := os.WriteFile(out, []byte(page), 0644); err != nil {
			return fmt.Errorf("failed to write HTML report: %w", err)
		}
		log.Infof("Wrote: %s", out)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOut, "output", "o", "", "output file (default: input with .html extension)")
	rootCmd.AddCommand(reportCmd)
}
