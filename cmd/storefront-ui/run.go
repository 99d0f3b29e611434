package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/danielholmes839/storefront-ui/internal/config"
	"github.com/danielholmes839/storefront-ui/internal/scenario"
	"github.com/danielholmes839/storefront-ui/internal/session"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func newRunCommand(fs afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:   "run [scenario...]",
		Short: "Run scenarios against BASE_URL, each in a fresh browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := selectScenarios(args)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			res := runScenarios(ctx, selected, logger, func(ctx context.Context, sc scenario.Scenario) error {
				return runOne(ctx, cfg, fs, logger.With("scenario", sc.Name), sc)
			})

			fmt.Fprintf(cmd.OutOrStdout(), "%d passed, %d failed, %d skipped\n", res.passed, res.failed, res.skipped)
			switch {
			case res.failed > 0:
				return fmt.Errorf("%d scenario(s) failed", res.failed)
			case ctx.Err() != nil:
				return ctx.Err()
			}
			return nil
		},
	}
}

type runResult struct {
	passed  int
	failed  int
	skipped int
}

// runScenarios runs the scenarios in order. Once ctx is done the rest are
// skipped without opening a browser.
func runScenarios(ctx context.Context, selected []scenario.Scenario, logger *slog.Logger, run func(context.Context, scenario.Scenario) error) runResult {
	res := runResult{}
	for i, sc := range selected {
		if ctx.Err() != nil {
			res.skipped = len(selected) - i
			logger.Warn("interrupted, skipping remaining scenarios", "skipped", res.skipped)
			break
		}
		if err := run(ctx, sc); err != nil {
			logger.Error("scenario error", "scenario", sc.Name, "err", err)
			res.failed++
			continue
		}
		res.passed++
	}
	return res
}

func runOne(ctx context.Context, cfg *config.Config, fs afero.Fs, logger *slog.Logger, sc scenario.Scenario) (err error) {
	s, err := session.Open(cfg, session.DialBrowser, fs, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, s.Close())
	}()

	return scenario.Run(ctx, s, sc)
}

func selectScenarios(names []string) ([]scenario.Scenario, error) {
	if len(names) == 0 {
		return scenario.All(), nil
	}

	selected := []scenario.Scenario{}
	for _, name := range names {
		sc, ok := scenario.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q", name)
		}
		selected = append(selected, sc)
	}
	return selected, nil
}

func newScenariosCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the available scenarios",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, sc := range scenario.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-15s %s\n", sc.Name, sc.Description)
			}
		},
	}
}
