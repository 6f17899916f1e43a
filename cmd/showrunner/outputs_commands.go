package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"showrunner/internal/fileutil"
	"showrunner/internal/production"
)

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

func newOutputsCommand(ctx *commandContext) *cobra.Command {
	outputsCmd := &cobra.Command{
		Use:   "outputs",
		Short: "Inspect and export finished productions",
	}

	outputsCmd.AddCommand(newOutputsListCommand(ctx))
	outputsCmd.AddCommand(newOutputsExportCommand(ctx))

	return outputsCmd
}

func newOutputsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded productions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ledger, err := production.OpenLedger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = ledger.Close() }()

			records, err := ledger.List(context.Background())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				done := production.Layout{Root: rec.Directory}.Completion()
				rows = append(rows, []string{
					rec.ID,
					rec.ShowID,
					strconv.Itoa(rec.EpisodeIndex),
					statusLabel(rec.Status, colorize),
					yesNo(done.Script),
					yesNo(done.Combined),
					rec.CreatedAt.Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"PRODUCTION", "SHOW", "EP", "STATUS", "SCRIPT", "AUDIO", "CREATED"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newOutputsExportCommand(ctx *commandContext) *cobra.Command {
	var destDir string

	cmd := &cobra.Command{
		Use:   "export <production-id>",
		Short: "Copy a production's final artifacts to another directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if destDir == "" {
				return fmt.Errorf("--to is required")
			}
			layout := production.Layout{Root: filepath.Join(cfg.Paths.OutputsDir, args[0])}
			if _, err := os.Stat(layout.Root); err != nil {
				return fmt.Errorf("production %s not found under %s", args[0], cfg.Paths.OutputsDir)
			}
			if err := os.MkdirAll(destDir, 0o755); err != nil {
				return fmt.Errorf("create destination: %w", err)
			}

			out := cmd.OutOrStdout()
			exported := 0
			for _, src := range []string{layout.ScriptPath(), layout.CombinedPath(), layout.FinalVideoPath()} {
				if !production.Exists(src) {
					continue
				}
				dst := filepath.Join(destDir, args[0]+"_"+filepath.Base(src))
				if err := fileutil.CopyFileVerified(src, dst); err != nil {
					return fmt.Errorf("export %s: %w", filepath.Base(src), err)
				}
				fmt.Fprintf(out, "Exported %s\n", dst)
				exported++
			}
			if exported == 0 {
				fmt.Fprintln(out, "No artifacts to export")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&destDir, "to", "", "Destination directory")
	return cmd
}

func statusLabel(status string, colorize bool) string {
	if !colorize {
		return status
	}
	switch status {
	case production.StatusCompleted:
		return ansiGreen + status + ansiReset
	case production.StatusFailed:
		return ansiRed + status + ansiReset
	default:
		return status
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
