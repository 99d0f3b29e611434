package waiter

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// dump saves the current page so a timed out wait can be debugged after the
// browser is gone.
func (w *Waiter) dump(kind, target string) {
	if w.artifacts == nil {
		return
	}

	source, err := w.driver.PageSource()
	if err != nil {
		w.logger.Warn("failed to read page source", "err", err)
		return
	}
	url, err := w.driver.CurrentURL()
	if err != nil {
		url = "unknown"
	}

	if err := w.artifacts.MkdirAll(w.artifactsDir, 0o755); err != nil {
		w.logger.Warn("failed to create artifacts dir", "dir", w.artifactsDir, "err", err)
		return
	}

	w.dumps++
	path := filepath.Join(w.artifactsDir, fmt.Sprintf("%03d-%s.html", w.dumps, kind))
	content := fmt.Sprintf("<!-- url: %s -->\n<!-- waiting for: %s -->\n%s", url, target, source)

	if err := afero.WriteFile(w.artifacts, path, []byte(content), 0o644); err != nil {
		w.logger.Warn("failed to save page snapshot", "path", path, "err", err)
		return
	}

	w.logger.Info("saved page snapshot", "path", path, "target", target)
}
