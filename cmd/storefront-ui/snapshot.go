package main

import (
	"path/filepath"

	"github.com/danielholmes839/storefront-ui/internal/config"
	"github.com/danielholmes839/storefront-ui/internal/session"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func newSnapshotCommand(fs afero.Fs) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save the HTML of BASE_URL for offline locator checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg.LogLevel)

			s, err := session.Open(cfg, session.DialBrowser, fs, logger)
			if err != nil {
				return err
			}
			defer func() {
				err = multierr.Append(err, s.Close())
			}()

			if err := s.LoginPage().Open(cmd.Context()); err != nil {
				return err
			}
			source, err := s.Driver.PageSource()
			if err != nil {
				return err
			}

			if err := fs.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return err
			}
			if err := afero.WriteFile(fs, out, []byte(source), 0o644); err != nil {
				return err
			}

			logger.Info("saved snapshot", "path", out, "bytes", len(source))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "./data/login.html", "where to write the page HTML")

	return cmd
}
