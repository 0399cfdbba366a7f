package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Minetz/theracompass/internal/app"
	"github.com/Minetz/theracompass/internal/store"
)

func newTUICmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive terminal client",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildEnv(*configPath)
			if err != nil {
				return err
			}
			env.log.WithField("backend", env.cfg.Backend.URL).Info("starting tui")

			docs, err := store.Open(env.cfg.Storage.Mode, env.cfg.Storage.Dir, env.cfg.Storage.SQLitePath)
			if err != nil {
				env.log.WithError(err).Warn("local store unavailable")
				docs = nil
			} else {
				defer docs.Close()
			}

			m := app.New(env.cfg, env.api, env.auth, docs, env.log)
			p := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run tui: %w", err)
			}
			return nil
		},
	}
}
