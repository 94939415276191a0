package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	log     *logrus.Logger
)

// rootCmd is the base command for apiprobe.
var rootCmd = &cobra.Command{
	Use:   "apiprobe",
	Short: "Run Gherkin-described API tests",
	Long: `apiprobe reads Gherkin scenario files describing HTTP API tests,
executes the described requests and validates the responses.

Scenario text is matched loosely against a fixed set of line patterns
(endpoint, method, expected status, array shape, substring containment),
so scenarios written by hand or generated from natural language both work.

Everything is driven by a YAML configuration file (apiprobe.yaml).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "apiprobe.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	log = logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// configureLogging applies the config's logging section to the shared logger.
// The --verbose flag wins over the configured level.
func configureLogging(level, file string) {
	if !verbose && level != "" {
		if parsed, err := logrus.ParseLevel(level); err == nil {
			log.SetLevel(parsed)
		}
	}
	if file != "" {
		if f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			log.SetOutput(f)
		} else {
			log.Warnf("Failed to open log file %s: %v", file, err)
		}
	}
}
