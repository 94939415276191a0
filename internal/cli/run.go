package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phoenix-ai/apiprobe/internal/config"
	"github.com/phoenix-ai/apiprobe/internal/domain"
	"github.com/phoenix-ai/apiprobe/internal/report"
	"github.com/phoenix-ai/apiprobe/internal/runner"
	"github.com/phoenix-ai/apiprobe/internal/scanner"
	"github.com/phoenix-ai/apiprobe/internal/watcher"
)

var (
	watchMode   bool
	parallelism int
)

var runCmd = &cobra.Command{
	Use:   "run [scenario files...]",
	Short: "Execute API test scenarios",
	Long: `Executes Gherkin scenario files against their described endpoints.

Without arguments, scenario files are discovered by scanning the directories
configured under input. With file arguments, only those files run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
		configureLogging(cfg.Logging.Level, cfg.Logging.File)

		if parallelism > 0 {
			cfg.Execution.Parallel = parallelism
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if watchMode {
			return runWatch(ctx, cfg, args)
		}

		suite, err := runOnce(ctx, cfg, args)
		if err != nil {
			return err
		}
		if suite == nil {
			return nil
		}
		if n := suite.Failed() + suite.Errored(); n > 0 {
			return fmt.Errorf("%d of %d scenario(s) did not pass", n, suite.Total())
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "rerun scenarios when files change")
	runCmd.Flags().IntVarP(&parallelism, "parallel", "p", 0, "worker count (overrides execution.parallel)")
	rootCmd.AddCommand(runCmd)
}

// runOnce discovers, loads and executes scenarios, writes reports and prints
// the terminal summary. A nil suite means no scenario files were found.
func runOnce(ctx context.Context, cfg *config.Config, args []string) (*domain.SuiteReport, error) {
	files, err := discoverFiles(cfg, args)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		log.Warn("No scenario files found")
		return nil, nil
	}
	log.Infof("Found %d scenario file(s)", len(files))

	scenarios := make([]runner.Scenario, 0, len(files))
	for _, path := range files {
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
		}
		base := filepath.Base(path)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		scenarios = append(scenarios, runner.Scenario{
			Name:   name,
			Source: path,
			Text:   string(text),
		})
	}

	r := runner.New(nil, log)
	suiteRunner := runner.NewSuiteRunner(r, log)
	suite := suiteRunner.RunSuite(ctx, scenarios, runner.SuiteOptions{
		Options: runner.Options{
			Request:    cfg.RequestOptions(),
			Extractors: cfg.Extract,
		},
		Parallel: cfg.Execution.Parallel,
		MaxRPS:   cfg.Execution.MaxRPS,
	})

	writer := report.NewWriter(cfg.Output.Directory, cfg.Output.FilePrefix, log)
	if _, err := writer.WriteSuite(suite, cfg.Output.Formats); err != nil {
		return nil, err
	}

	printSummary(suite)
	return suite, nil
}

// printSummary writes the per-scenario outcomes and totals to stdout.
func printSummary(suite *domain.SuiteReport) {
	pass := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)
	errc := color.New(color.FgYellow, color.Bold)

	fmt.Println()
	for _, r := range suite.Reports {
		switch r.Status {
		case domain.StatusPassed:
			pass.Print("  PASS  ")
		case domain.StatusError:
			errc.Print("  ERROR ")
		default:
			fail.Print("  FAIL  ")
		}
		fmt.Printf("%s", r.Spec.Scenario)
		if r.Outcome.StatusCode > 0 {
			fmt.Printf("  (%d, %.1fms)", r.Outcome.StatusCode, r.Outcome.ResponseTimeMillis)
		}
		fmt.Println()
		if r.Status != domain.StatusPassed {
			fmt.Printf("          %s\n", r.Message)
		}
	}
	fmt.Printf("\n  %d passed, %d failed, %d errored (%.1f%%) in %s\n\n",
		suite.Passed(), suite.Failed(), suite.Errored(), suite.PassRate(),
		suite.Duration.Round(time.Millisecond))
}

// runWatch runs once, then reruns on scenario file changes until interrupted.
func runWatch(ctx context.Context, cfg *config.Config, args []string) error {
	if _, err := runOnce(ctx, cfg, args); err != nil {
		log.Warnf("Initial run failed: %v", err)
	}

	w, err := watcher.New(cfg.Input.Directories, cfg.Input.Include, cfg.Input.Exclude, 500*time.Millisecond, log, func() {
		if _, err := runOnce(ctx, cfg, args); err != nil {
			log.Warnf("Rerun failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	w.Start()
	defer w.Stop()

	log.Info("Watching for scenario changes (ctrl-c to stop)")
	<-ctx.Done()
	return nil
}

func discoverFiles(cfg *config.Config, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	recursive := true
	if cfg.Input.Recursive != nil {
		recursive = *cfg.Input.Recursive
	}
	s := scanner.NewScanner(recursive)

	var files []string
	for _, dir := range cfg.Input.Directories {
		found, err := s.Scan(dir, cfg.Input.Include, cfg.Input.Exclude)
		if err != nil {
			log.Warnf("Failed to scan directory %s: %v", dir, err)
			continue
		}
		files = append(files, found...)
	}
	return files, nil
}
