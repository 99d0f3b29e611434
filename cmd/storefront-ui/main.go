package main

import (
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(fs afero.Fs) *cobra.Command {
	root := &cobra.Command{
		Use:          "storefront-ui",
		Short:        "Browser UI checks for the store manager login",
		SilenceUsage: true,
	}

	root.AddCommand(
		newRunCommand(fs),
		newScenariosCommand(),
		newSnapshotCommand(fs),
		newLocatorsCommand(fs),
	)

	return root
}

func newLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
