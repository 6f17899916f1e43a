package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"showrunner/internal/deps"
	"showrunner/internal/workflow"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check pipeline stage readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			resolver, err := ctx.secretsResolver()
			if err != nil {
				return err
			}

			steps := workflow.DefaultSteps(cfg, resolver, logger)
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			unhealthy := 0
			rows := make([][]string, 0, len(steps))
			for _, step := range steps {
				health := step.Handler.HealthCheck(context.Background())
				ready := "ok"
				if !health.Ready {
					ready = "unavailable"
					unhealthy++
				}
				if colorize {
					if health.Ready {
						ready = ansiGreen + ready + ansiReset
					} else {
						ready = ansiRed + ready + ansiReset
					}
				}
				rows = append(rows, []string{health.Name, ready, health.Detail})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"STAGE", "STATUS", "DETAIL"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			depRows := make([][]string, 0, 2)
			for _, dep := range deps.CheckBinaries(deps.Requirements(cfg)) {
				status := "ok"
				if !dep.Available {
					status = "missing"
					if !dep.Optional {
						unhealthy++
					}
				}
				if colorize {
					if dep.Available {
						status = ansiGreen + status + ansiReset
					} else {
						status = ansiRed + status + ansiReset
					}
				}
				detail := dep.Detail
				if detail == "" {
					detail = dep.Description
				}
				depRows = append(depRows, []string{dep.Name, status, detail})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"DEPENDENCY", "STATUS", "DETAIL"},
				depRows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			if unhealthy > 0 {
				return fmt.Errorf("%d check(s) not ready", unhealthy)
			}
			return nil
		},
	}
}
