package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"loggingtalk/internal/config"
	"loggingtalk/internal/logging"
	"loggingtalk/internal/preflight"
	"loggingtalk/internal/subprocess"
	"loggingtalk/internal/workload"
)

// errUsage is returned after the usage text has already been printed.
var errUsage = errors.New("usage")

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:   "loggingtalk SLIDE",
		Short: "Demonstrate some useful logging stuff",
		Long: `Demonstrate some useful logging stuff.

Pipe the output into less to page through it with colors intact:

  loggingtalk 3 |& LESS='-SR -#.1 --redraw-on-quit' less`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseSlideArgs(args)
			if err != nil {
				printUsage(cmd.ErrOrStderr(), cmd)
				return err
			}
			s, ok := lookupSlide(number)
			if !ok {
				return fmt.Errorf("unknown slide number: %d", number)
			}
			return runSlide(cmd, configFlag, s)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (default $"+config.EnvConfigPath+" or ./loggingtalk.toml)")
	rootCmd.AddCommand(newConfigCommand(&configFlag))
	rootCmd.AddCommand(newShowCommand(&configFlag))
	return rootCmd
}

func parseSlideArgs(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	number, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid slide number %q: %w", args[0], err)
	}
	return number, nil
}

func printUsage(w io.Writer, cmd *cobra.Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintf(w, "\nUsage: %s\n\n", cmd.UseLine())
	fmt.Fprintln(w, slideTable())
}

func runSlide(cmd *cobra.Command, configPath string, s slide) error {
	ctx := cmd.Context()
	stderr := cmd.ErrOrStderr()

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	results := preflight.RunAll(cfg)
	if failures := preflight.Failures(results); len(failures) > 0 {
		fmt.Fprintln(stderr, preflightTable(results))
		return fmt.Errorf("preflight failed: %s", failures[0].Name)
	}
	for _, result := range results {
		if !result.Passed {
			fmt.Fprintf(stderr, "warning: %s: %s\n", result.Name, result.Detail)
		}
	}

	terminalFile, _ := stderr.(*os.File)
	terminalColors := cfg.TerminalColors(terminalFile)
	session, err := logging.Configure(s.loggingOptions(logging.Options{
		Level:          cfg.TerminalLevel(),
		Dir:            cfg.Logging.Dir,
		ColorFile:      cfg.Logging.ColorFile,
		PlainFile:      cfg.Logging.PlainFile,
		Terminal:       stderr,
		TerminalColors: &terminalColors,
	}))
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer session.Close()

	logger := session.Logger()
	runner := subprocess.New(logger, subprocess.WithShell(cfg.Subprocess.Shell))
	work := workload.New(logger, runner, workload.Options{
		BetterSubprocess: s.BetterSubprocess,
		SleepScale:       cfg.Workload.SleepScale,
		Limit:            cfg.Workload.JobLimit,
		SearchDir:        cfg.Workload.SearchDir,
		ShellCommand:     cfg.Workload.ShellCommand,
	})
	outcomes, err := work.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(stderr, outcomeTable(outcomes))
	logger.Logf(ctx, levelNextSlide, "%s", nextSlideMessage(s.Number))
	return session.Close()
}

func preflightTable(results []preflight.Result) string {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		status := "ok"
		switch {
		case !result.Passed && result.Optional:
			status = "warning"
		case !result.Passed:
			status = "failed"
		}
		rows = append(rows, []string{result.Name, status, result.Detail})
	}
	return renderTable([]string{"Check", "Status", "Detail"}, rows, nil)
}
