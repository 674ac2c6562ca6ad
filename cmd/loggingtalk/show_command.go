package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"loggingtalk/internal/config"
	"loggingtalk/internal/logs"
)

func newShowCommand(configFlag *string) *cobra.Command {
	var lines int
	var follow bool
	var plain bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the last records of the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(*configFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			name := cfg.Logging.ColorFile
			if plain {
				name = cfg.Logging.PlainFile
			}
			path := filepath.Join(cfg.Logging.Dir, name)

			out := cmd.OutOrStdout()
			emit := func(line string) { fmt.Fprintln(out, line) }
			last, offset, err := logs.Last(path, lines)
			if err != nil {
				return err
			}
			for _, line := range last {
				emit(line)
			}
			if !follow {
				return nil
			}
			return logs.Follow(cmd.Context(), path, offset, logs.DefaultInterval, emit)
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of records to print")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing records as they are written")
	cmd.Flags().BoolVar(&plain, "plain", false, "Read the file without escape sequences")
	return cmd
}
