package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"showrunner/internal/notifications"
	"showrunner/internal/production"
	"showrunner/internal/workflow"
)

// productionConfig mirrors the JSON file accepted by --production-config.
type productionConfig struct {
	ShowID       string `json:"show_id"`
	EpisodeIndex int    `json:"episode_idx"`
}

func newProduceCommand(ctx *commandContext) *cobra.Command {
	var (
		showID       string
		episodeIndex int
		configPath   string
		listShows    bool
	)

	cmd := &cobra.Command{
		Use:   "produce",
		Short: "Run the production pipeline for one episode",
		RunE: func(cmd *cobra.Command, args []string) error {
			if listShows {
				return runListShows(ctx, cmd)
			}

			if configPath != "" {
				fileCfg, err := loadProductionConfig(configPath)
				if err != nil {
					return err
				}
				if showID == "" {
					showID = fileCfg.ShowID
				}
				if !cmd.Flags().Changed("episode") {
					episodeIndex = fileCfg.EpisodeIndex
				}
			}
			if showID == "" {
				_ = cmd.Usage()
				return errors.New("--show or --production-config required")
			}
			return runProduce(ctx, cmd, showID, episodeIndex)
		},
	}

	cmd.Flags().StringVar(&showID, "show", "", "Show identifier")
	cmd.Flags().IntVar(&episodeIndex, "episode", 0, "Episode index")
	cmd.Flags().StringVar(&configPath, "production-config", "", "JSON file with show_id and episode_idx")
	cmd.Flags().BoolVar(&listShows, "list", false, "List available shows and exit")
	return cmd
}

func loadProductionConfig(path string) (productionConfig, error) {
	var fileCfg productionConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fileCfg, fmt.Errorf("read production config: %w", err)
	}
	if err := json.Unmarshal(data, &fileCfg); err != nil {
		return fileCfg, fmt.Errorf("parse production config: %w", err)
	}
	return fileCfg, nil
}

func runListShows(ctx *commandContext, cmd *cobra.Command) error {
	store, err := ctx.rosterStore()
	if err != nil {
		return err
	}
	shows, err := store.Shows()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(shows))
	for _, id := range shows.IDs() {
		show := shows[id]
		rows = append(rows, []string{id, show.Title, strconv.Itoa(len(show.Episodes))})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"SHOW ID", "TITLE", "EPISODES"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight},
	))
	return nil
}

func runProduce(cmdCtx *commandContext, cmd *cobra.Command, showID string, episodeIndex int) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := cmdCtx.ensureLogger()
	if err != nil {
		return err
	}
	store, err := cmdCtx.rosterStore()
	if err != nil {
		return err
	}
	resolver, err := cmdCtx.secretsResolver()
	if err != nil {
		return err
	}

	prod, err := production.Resolve(store, cfg.Paths.OutputsDir, showID, episodeIndex, time.Now())
	if err != nil {
		return err
	}

	ledger, err := production.OpenLedger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = ledger.Close() }()

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Production: %s\n", prod.ID)
	fmt.Fprintf(out, "  Show:    %s\n", prod.Show.Title)
	fmt.Fprintf(out, "  Episode: %s\n", prod.Episode.Title)
	fmt.Fprintf(out, "  Output:  %s\n", prod.Layout.Root)

	runner := workflow.NewRunner(cfg, ledger, notifications.NewService(cfg), logger, workflow.DefaultSteps(cfg, resolver, logger))
	if err := runner.Run(runCtx, prod); err != nil {
		return err
	}

	printCompletion(out, prod)
	return nil
}

func printCompletion(out io.Writer, prod *production.Production) {
	done := prod.Layout.Completion()
	fmt.Fprintln(out, "Production complete")
	fmt.Fprintf(out, "  Script:   %s\n", yesNo(done.Script))
	fmt.Fprintf(out, "  Cues:     %s\n", yesNo(done.Cues))
	fmt.Fprintf(out, "  Combined: %s\n", yesNo(done.Combined))
	fmt.Fprintf(out, "  Video:    %s\n", yesNo(done.Video))
}
