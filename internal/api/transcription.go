package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/Minetz/theracompass/internal/align"
	"github.com/Minetz/theracompass/internal/transcript"
)

// GetTranscription fetches the word-level transcript for a session. Shape
// problems in the payload degrade to an empty word list; only transport and
// status failures are errors.
func (c *Client) GetTranscription(ctx context.Context, transcriptionID string) ([]transcript.WordToken, error) {
	q := url.Values{"transcription_id": {transcriptionID}}
	req, err := c.newRequest(ctx, http.MethodGet, "/get_transcription", q, nil)
	if err != nil {
		return nil, err
	}
	body, err := c.doRaw(req, "get transcription")
	if err != nil {
		return nil, err
	}
	return transcript.Parse(body), nil
}

// GetEpisodicSummary fetches the episodic summary list for a session, with
// the same degrade-to-empty policy as GetTranscription.
func (c *Client) GetEpisodicSummary(ctx context.Context, transcriptionID string) ([]align.EpisodicEntry, error) {
	q := url.Values{"transcription_id": {transcriptionID}}
	req, err := c.newRequest(ctx, http.MethodGet, "/get_summary", q, nil)
	if err != nil {
		return nil, err
	}
	body, err := c.doRaw(req, "get summary")
	if err != nil {
		return nil, err
	}
	return align.ParseSummary(body), nil
}

// ProcessAudio uploads a session recording for transcription and
// summarization. The backend responds with the updated session document.
func (c *Client) ProcessAudio(ctx context.Context, userID, patientID, sessionDatetime, audioPath string) (map[string]any, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("audio_file", filepath.Base(audioPath))
	if err != nil {
		return nil, err
	}
	fd, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer fd.Close()
	if _, err := io.Copy(fw, fd); err != nil {
		return nil, fmt.Errorf("copy audio: %w", err)
	}

	for field, value := range map[string]string{
		"user_id":          userID,
		"patient_id":       patientID,
		"session_datetime": sessionDatetime,
	} {
		if err := w.WriteField(field, value); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/process_audio", nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out map[string]any
	if err := c.doJSON(req, "process audio", &out); err != nil {
		return nil, err
	}
	return out, nil
}
