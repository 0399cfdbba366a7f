// Package logging builds the shared logrus logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Minetz/theracompass/internal/config"
)

// New returns a logger configured from cfg.Logs. When a log directory is set
// the logger writes to <dir>/<timestamp>/app.log so each run keeps its own
// file; otherwise it writes to stderr. An unknown level falls back to info.
func New(cfg config.Logs) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Dir != "" {
		dir := filepath.Join(cfg.Dir, time.Now().Format("20060102-150405"))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.Create(filepath.Join(dir, "app.log"))
		if err != nil {
			return nil, fmt.Errorf("create log file: %w", err)
		}
		log.SetOutput(f)
	}

	return log, nil
}
