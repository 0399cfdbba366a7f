package app

import (
	"github.com/Minetz/theracompass/internal/api"
	"github.com/Minetz/theracompass/internal/auth"
	"github.com/Minetz/theracompass/internal/report"
)

// SignInResultMsg carries the outcome of a sign-in attempt.
type SignInResultMsg struct {
	Creds *auth.Credentials
	Err   error
}

// ResetSentMsg is sent after a password reset email request completes.
type ResetSentMsg struct {
	Err error
}

// UserLoadedMsg carries the user document fetched after sign-in or refresh.
type UserLoadedMsg struct {
	User *api.User
	Err  error
}

// SessionReportMsg carries the assembled report for one session. SessionID
// lets the model drop responses for sessions the user has already left.
type SessionReportMsg struct {
	SessionID string
	Report    *report.SessionReport
	Err       error
}

// SessionStatsMsg carries the word count and duration for one session row
// on the patient page.
type SessionStatsMsg struct {
	SessionID string
	WordCount int
	Duration  float64
}

// PatientCreatedMsg is sent after a create patient request completes.
type PatientCreatedMsg struct {
	Err error
}

// PatientDeletedMsg is sent after a delete patient request completes.
type PatientDeletedMsg struct {
	PatientID string
	Err       error
}

// SessionDeletedMsg is sent after a delete session request completes.
type SessionDeletedMsg struct {
	SessionID string
	Err       error
}

// AudioFilesMsg lists audio files found in the configured audio directory.
type AudioFilesMsg struct {
	Files []string
}

// AudioProcessedMsg is sent after an audio upload completes.
type AudioProcessedMsg struct {
	Err error
}

// ClearTransientErrorMsg clears a transient error after a timeout.
type ClearTransientErrorMsg struct{}
