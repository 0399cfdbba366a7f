package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Minetz/theracompass/internal/align"
	"github.com/Minetz/theracompass/internal/report"
	"github.com/Minetz/theracompass/internal/store"
	"github.com/Minetz/theracompass/internal/transcript"
)

func newRenderCmd(configPath *string) *cobra.Command {
	var (
		transcriptPath string
		summaryPath    string
		sessionID      string
		token          string
		patientName    string
		outDir         string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a session report to JSON and markdown",
		Long: `Render assembles a session report either from local payload files
(--transcript, --summary) or by fetching a session from the backend
(--session with --token), then writes report.json and report.md.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildEnv(*configPath)
			if err != nil {
				return err
			}

			var (
				words   []transcript.WordToken
				entries []align.EpisodicEntry
			)

			switch {
			case sessionID != "":
				if token != "" {
					env.api.SetToken(token)
				}
				ctx := cmd.Context()
				words, err = env.api.GetTranscription(ctx, sessionID)
				if err != nil {
					return err
				}
				entries, err = env.api.GetEpisodicSummary(ctx, sessionID)
				if err != nil {
					return err
				}

			case transcriptPath != "":
				raw, err := os.ReadFile(transcriptPath)
				if err != nil {
					return fmt.Errorf("read transcript: %w", err)
				}
				words = transcript.Parse(raw)
				if summaryPath != "" {
					raw, err := os.ReadFile(summaryPath)
					if err != nil {
						return fmt.Errorf("read summary: %w", err)
					}
					entries = align.ParseSummary(raw)
				}

			default:
				return errors.New("either --session or --transcript is required")
			}

			rep, err := report.Build(words, entries, env.cfg.Activity.IntervalSeconds)
			if err != nil {
				return fmt.Errorf("build report: %w", err)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			if err := writeJSON(filepath.Join(outDir, "report.json"), rep); err != nil {
				return err
			}

			meta := report.Metadata{
				SessionID:   sessionID,
				PatientName: patientName,
				Generated:   time.Now().Format(time.RFC3339),
			}
			md := report.RenderMarkdown(meta, rep)
			if err := os.WriteFile(filepath.Join(outDir, "report.md"), []byte(md), 0o644); err != nil {
				return fmt.Errorf("write markdown: %w", err)
			}

			if sessionID != "" {
				if err := saveReport(env, sessionID, rep); err != nil {
					env.log.WithError(err).Warn("could not persist report")
				}
			}

			env.log.WithFields(logrus.Fields{
				"words":    rep.Totals.WordCount,
				"sections": len(rep.Sections),
				"out":      outDir,
			}).Info("report rendered")
			return nil
		},
	}

	cmd.Flags().StringVar(&transcriptPath, "transcript", "", "path to a transcription payload file")
	cmd.Flags().StringVar(&summaryPath, "summary", "", "path to an episodic summary payload file")
	cmd.Flags().StringVar(&sessionID, "session", "", "session id to fetch from the backend")
	cmd.Flags().StringVar(&token, "token", "", "bearer token for backend requests")
	cmd.Flags().StringVar(&patientName, "patient", "", "patient name for the report header")
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	return cmd
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// saveReport keeps a copy of the rendered report in the local document store
// so later runs can diff or re-export without refetching.
func saveReport(env *appEnv, sessionID string, rep *report.SessionReport) error {
	st, err := store.Open(env.cfg.Storage.Mode, env.cfg.Storage.Dir, env.cfg.Storage.SQLitePath)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Save("reports", sessionID, rep)
}
