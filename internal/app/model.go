package app

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/Minetz/theracompass/internal/api"
	"github.com/Minetz/theracompass/internal/auth"
	"github.com/Minetz/theracompass/internal/config"
	"github.com/Minetz/theracompass/internal/report"
	"github.com/Minetz/theracompass/internal/store"
)

// Page identifies which screen the TUI is showing.
type Page int

const (
	PageLogin Page = iota
	PageHome
	PagePatient
	PageSession
)

// PanelFocus tracks which session panel has keyboard focus.
type PanelFocus int

const (
	FocusSummaries PanelFocus = iota
	FocusTranscript
)

type loginField int

const (
	fieldEmail loginField = iota
	fieldPassword
)

// SessionStats is the per-session rollup shown on the patient page.
type SessionStats struct {
	WordCount int
	Duration  float64
}

// Model is the root bubbletea model for the theracompass TUI.
type Model struct {
	cfg  *config.Root
	api  *api.Client
	auth *auth.Client
	docs store.Store
	log  *logrus.Logger

	page Page

	// Login page
	email       string
	password    string
	activeField loginField
	signingIn   bool
	resetSent   bool

	// Identity
	userID string
	user   *api.User

	// Home page
	patientIDs      []string
	selectedPatient int
	creatingPatient bool
	newPatientName  string
	newFrameworkIdx int

	// Patient page
	patientID       string
	sessionIDs      []string
	selectedSession int
	stats           map[string]SessionStats
	pickingAudio    bool
	audioFiles      []string
	selectedAudio   int
	uploading       bool

	// Session page
	sessionID        string
	rep              *report.SessionReport
	loadingSession   bool
	selectedSection  int
	expanded         map[int]bool
	focusedPanel     PanelFocus
	transcriptScroll int

	// UI state
	width  int
	height int

	statusText     string
	errorMessage   string
	errorTransient bool
}

// New creates a Model showing the login page. docs may be nil, in which case
// loaded reports are not cached locally.
func New(cfg *config.Root, apiClient *api.Client, authClient *auth.Client, docs store.Store, log *logrus.Logger) Model {
	return Model{
		cfg:          cfg,
		api:          apiClient,
		auth:         authClient,
		docs:         docs,
		log:          log,
		page:         PageLogin,
		statusText:   "Sign in to continue",
		stats:        map[string]SessionStats{},
		expanded:     map[int]bool{},
		focusedPanel: FocusSummaries,
	}
}

// Init returns the initial command. The TUI waits for input.
func (m Model) Init() tea.Cmd {
	return nil
}

// signInCmd exchanges the email and password for credentials.
func signInCmd(ac *auth.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		creds, err := ac.SignIn(context.Background(), email, password)
		if err != nil {
			return SignInResultMsg{Err: err}
		}
		return SignInResultMsg{Creds: creds}
	}
}

// resetPasswordCmd requests a password reset email.
func resetPasswordCmd(ac *auth.Client, email string) tea.Cmd {
	return func() tea.Msg {
		return ResetSentMsg{Err: ac.SendPasswordReset(context.Background(), email)}
	}
}

// loadUserCmd fetches the user document with the patient directory.
func loadUserCmd(c *api.Client, userID string) tea.Cmd {
	return func() tea.Msg {
		user, err := c.GetUser(context.Background(), userID)
		return UserLoadedMsg{User: user, Err: err}
	}
}

// loadSessionCmd fetches the transcription and episodic summary for one
// session and assembles the report.
func loadSessionCmd(c *api.Client, sessionID string, interval int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		words, err := c.GetTranscription(ctx, sessionID)
		if err != nil {
			return SessionReportMsg{SessionID: sessionID, Err: err}
		}
		entries, err := c.GetEpisodicSummary(ctx, sessionID)
		if err != nil {
			return SessionReportMsg{SessionID: sessionID, Err: err}
		}
		rep, err := report.Build(words, entries, interval)
		return SessionReportMsg{SessionID: sessionID, Report: rep, Err: err}
	}
}

// sessionStatsCmd fetches just enough of a session to show its word count
// and duration on the patient page. Failures are silent; the row stays
// blank.
func sessionStatsCmd(c *api.Client, sessionID string, interval int) tea.Cmd {
	return func() tea.Msg {
		words, err := c.GetTranscription(context.Background(), sessionID)
		if err != nil {
			return SessionStatsMsg{SessionID: sessionID}
		}
		rep, err := report.Build(words, nil, interval)
		if err != nil {
			return SessionStatsMsg{SessionID: sessionID}
		}
		return SessionStatsMsg{
			SessionID: sessionID,
			WordCount: rep.Totals.WordCount,
			Duration:  rep.Totals.Duration,
		}
	}
}

func createPatientCmd(c *api.Client, userID, name string, framework api.TherapyFramework) tea.Cmd {
	return func() tea.Msg {
		return PatientCreatedMsg{Err: c.CreatePatient(context.Background(), userID, name, framework)}
	}
}

func deletePatientCmd(c *api.Client, userID, patientID string) tea.Cmd {
	return func() tea.Msg {
		return PatientDeletedMsg{
			PatientID: patientID,
			Err:       c.DeletePatient(context.Background(), userID, patientID),
		}
	}
}

func deleteSessionCmd(c *api.Client, userID, patientID, sessionID string) tea.Cmd {
	return func() tea.Msg {
		return SessionDeletedMsg{
			SessionID: sessionID,
			Err:       c.DeleteSession(context.Background(), userID, patientID, sessionID),
		}
	}
}

// listAudioCmd scans the audio directory for wav and mp3 files.
func listAudioCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return AudioFilesMsg{}
		}
		var files []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(e.Name())) {
			case ".wav", ".mp3", ".m4a":
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
		sort.Strings(files)
		return AudioFilesMsg{Files: files}
	}
}

// processAudioCmd uploads an audio file for transcription.
func processAudioCmd(c *api.Client, userID, patientID, path string) tea.Cmd {
	return func() tea.Msg {
		dt := time.Now().Format("2006-01-02 15:04:05")
		_, err := c.ProcessAudio(context.Background(), userID, patientID, dt, path)
		return AudioProcessedMsg{Err: err}
	}
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SignInResultMsg:
		m.signingIn = false
		if msg.Err != nil {
			m.log.WithError(msg.Err).Warn("sign in failed")
			return m.transientError("Sign in failed: " + msg.Err.Error())
		}
		m.userID = msg.Creds.UserID
		m.api.SetToken(msg.Creds.IDToken)
		m.statusText = "Loading profile..."
		m.log.WithField("user_id", m.userID).Info("signed in")
		return m, loadUserCmd(m.api, m.userID)

	case ResetSentMsg:
		if msg.Err != nil {
			return m.transientError("Reset failed: " + msg.Err.Error())
		}
		m.resetSent = true
		m.statusText = "Password reset email sent"
		return m, nil

	case UserLoadedMsg:
		if msg.Err != nil {
			m.log.WithError(msg.Err).Warn("load user failed")
			return m.transientError("Could not load profile: " + msg.Err.Error())
		}
		m.user = msg.User
		m.patientIDs = msg.User.PatientIDs()
		if m.selectedPatient >= len(m.patientIDs) {
			m.selectedPatient = max(0, len(m.patientIDs)-1)
		}
		if m.page == PageLogin {
			m.page = PageHome
			m.statusText = "Signed in as " + msg.User.Username
		}
		if m.page >= PagePatient && m.patientID != "" {
			if p, ok := m.user.Patients[m.patientID]; ok {
				m.sessionIDs = p.SessionIDs()
				if m.selectedSession >= len(m.sessionIDs) {
					m.selectedSession = max(0, len(m.sessionIDs)-1)
				}
			} else {
				m.page = PageHome
				m.patientID = ""
			}
		}
		return m, nil

	case SessionReportMsg:
		if msg.SessionID != m.sessionID {
			return m, nil
		}
		m.loadingSession = false
		if msg.Err != nil {
			m.log.WithError(msg.Err).WithField("session_id", msg.SessionID).Warn("load session failed")
			return m.transientError("Could not load session: " + msg.Err.Error())
		}
		m.rep = msg.Report
		m.selectedSection = 0
		m.expanded = map[int]bool{}
		m.transcriptScroll = 0
		m.stats[msg.SessionID] = SessionStats{
			WordCount: msg.Report.Totals.WordCount,
			Duration:  msg.Report.Totals.Duration,
		}
		if m.docs != nil {
			if err := m.docs.Save("reports", msg.SessionID, msg.Report); err != nil {
				m.log.WithError(err).Warn("cache report")
			}
		}
		return m, nil

	case SessionStatsMsg:
		if msg.WordCount > 0 || msg.Duration > 0 {
			m.stats[msg.SessionID] = SessionStats{WordCount: msg.WordCount, Duration: msg.Duration}
		}
		return m, nil

	case PatientCreatedMsg:
		if msg.Err != nil {
			return m.transientError("Create patient failed: " + msg.Err.Error())
		}
		m.creatingPatient = false
		m.newPatientName = ""
		m.statusText = "Patient created"
		return m, loadUserCmd(m.api, m.userID)

	case PatientDeletedMsg:
		if msg.Err != nil {
			return m.transientError("Delete patient failed: " + msg.Err.Error())
		}
		if m.patientID == msg.PatientID {
			m.page = PageHome
			m.patientID = ""
			m.sessionIDs = nil
		}
		m.statusText = "Patient deleted"
		return m, loadUserCmd(m.api, m.userID)

	case SessionDeletedMsg:
		if msg.Err != nil {
			return m.transientError("Delete session failed: " + msg.Err.Error())
		}
		if m.sessionID == msg.SessionID {
			m.page = PagePatient
			m.sessionID = ""
			m.rep = nil
		}
		delete(m.stats, msg.SessionID)
		if m.docs != nil {
			if _, err := m.docs.Delete("reports", msg.SessionID); err != nil {
				m.log.WithError(err).Warn("drop cached report")
			}
			if _, err := store.DeleteFrameworkSummary(m.docs, msg.SessionID); err != nil {
				m.log.WithError(err).Warn("drop framework summary")
			}
		}
		m.statusText = "Session deleted"
		return m, loadUserCmd(m.api, m.userID)

	case AudioFilesMsg:
		m.audioFiles = msg.Files
		m.selectedAudio = 0
		if len(m.audioFiles) == 0 {
			m.pickingAudio = false
			return m.transientError("No audio files in " + m.cfg.Audio.Dir)
		}
		return m, nil

	case AudioProcessedMsg:
		m.uploading = false
		if msg.Err != nil {
			return m.transientError("Upload failed: " + msg.Err.Error())
		}
		m.statusText = "Audio uploaded for processing"
		return m, loadUserCmd(m.api, m.userID)

	case ClearTransientErrorMsg:
		if m.errorTransient {
			m.errorMessage = ""
			m.errorTransient = false
		}
		return m, nil
	}

	return m, nil
}

// transientError records an error and schedules its clearing.
func (m Model) transientError(text string) (tea.Model, tea.Cmd) {
	m.errorMessage = text
	m.errorTransient = true
	return m, clearTransientErrorCmd()
}

// handleKey dispatches key presses to the active page.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == KeyCtrlC {
		return m, tea.Quit
	}
	switch m.page {
	case PageLogin:
		return m.handleLoginKey(msg)
	case PageHome:
		return m.handleHomeKey(msg)
	case PagePatient:
		return m.handlePatientKey(msg)
	case PageSession:
		return m.handleSessionKey(msg)
	}
	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyTab:
		if m.activeField == fieldEmail {
			m.activeField = fieldPassword
		} else {
			m.activeField = fieldEmail
		}
		return m, nil

	case KeyEnter:
		if m.activeField == fieldEmail {
			m.activeField = fieldPassword
			return m, nil
		}
		if m.signingIn || m.email == "" || m.password == "" {
			return m, nil
		}
		m.signingIn = true
		m.statusText = "Signing in..."
		return m, signInCmd(m.auth, m.email, m.password)

	case KeyBackspace:
		if m.activeField == fieldEmail && m.email != "" {
			m.email = m.email[:len(m.email)-1]
		} else if m.activeField == fieldPassword && m.password != "" {
			m.password = m.password[:len(m.password)-1]
		}
		return m, nil

	case KeyReset:
		if m.email == "" {
			return m.transientError("Enter an email first")
		}
		return m, resetPasswordCmd(m.auth, m.email)

	case KeyEsc:
		return m, tea.Quit
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		text := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			text = " "
		}
		if m.activeField == fieldEmail {
			m.email += text
		} else {
			m.password += text
		}
	}
	return m, nil
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.creatingPatient {
		return m.handleNewPatientKey(msg)
	}

	switch msg.String() {
	case KeyQuit, KeyQuitUpper:
		return m, tea.Quit

	case KeyJ, KeyDown:
		if m.selectedPatient < len(m.patientIDs)-1 {
			m.selectedPatient++
		}
		return m, nil

	case KeyK, KeyUp:
		if m.selectedPatient > 0 {
			m.selectedPatient--
		}
		return m, nil

	case KeyEnter:
		if m.selectedPatient >= len(m.patientIDs) {
			return m, nil
		}
		return m.openPatient(m.patientIDs[m.selectedPatient])

	case KeyNew:
		m.creatingPatient = true
		m.newPatientName = ""
		m.newFrameworkIdx = 0
		return m, nil

	case KeyDelete:
		if m.selectedPatient >= len(m.patientIDs) {
			return m, nil
		}
		return m, deletePatientCmd(m.api, m.userID, m.patientIDs[m.selectedPatient])

	case KeyRefresh:
		return m, loadUserCmd(m.api, m.userID)
	}
	return m, nil
}

func (m Model) handleNewPatientKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		m.creatingPatient = false
		return m, nil

	case KeyTab:
		m.newFrameworkIdx = (m.newFrameworkIdx + 1) % len(api.Frameworks)
		return m, nil

	case KeyEnter:
		name := strings.TrimSpace(m.newPatientName)
		if name == "" {
			return m, nil
		}
		return m, createPatientCmd(m.api, m.userID, name, api.Frameworks[m.newFrameworkIdx])

	case KeyBackspace:
		if m.newPatientName != "" {
			m.newPatientName = m.newPatientName[:len(m.newPatientName)-1]
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		m.newPatientName += string(msg.Runes)
	} else if msg.Type == tea.KeySpace {
		m.newPatientName += " "
	}
	return m, nil
}

// openPatient switches to the patient page and kicks off per-session stats.
func (m Model) openPatient(patientID string) (tea.Model, tea.Cmd) {
	p, ok := m.user.Patients[patientID]
	if !ok {
		return m, nil
	}
	m.page = PagePatient
	m.patientID = patientID
	m.sessionIDs = p.SessionIDs()
	m.selectedSession = 0
	m.pickingAudio = false

	var cmds []tea.Cmd
	for _, id := range m.sessionIDs {
		if _, ok := m.stats[id]; !ok {
			cmds = append(cmds, sessionStatsCmd(m.api, id, m.cfg.Activity.IntervalSeconds))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handlePatientKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pickingAudio {
		return m.handleAudioPickKey(msg)
	}

	switch msg.String() {
	case KeyQuit, KeyQuitUpper:
		return m, tea.Quit

	case KeyEsc:
		m.page = PageHome
		m.patientID = ""
		m.sessionIDs = nil
		return m, nil

	case KeyJ, KeyDown:
		if m.selectedSession < len(m.sessionIDs)-1 {
			m.selectedSession++
		}
		return m, nil

	case KeyK, KeyUp:
		if m.selectedSession > 0 {
			m.selectedSession--
		}
		return m, nil

	case KeyEnter:
		if m.selectedSession >= len(m.sessionIDs) {
			return m, nil
		}
		m.page = PageSession
		m.sessionID = m.sessionIDs[m.selectedSession]
		m.rep = nil
		m.loadingSession = true
		m.focusedPanel = FocusSummaries
		return m, loadSessionCmd(m.api, m.sessionID, m.cfg.Activity.IntervalSeconds)

	case KeyDelete:
		if m.selectedSession >= len(m.sessionIDs) {
			return m, nil
		}
		return m, deleteSessionCmd(m.api, m.userID, m.patientID, m.sessionIDs[m.selectedSession])

	case KeyUpload:
		m.pickingAudio = true
		return m, listAudioCmd(m.cfg.Audio.Dir)

	case KeyRefresh:
		return m, loadUserCmd(m.api, m.userID)
	}
	return m, nil
}

func (m Model) handleAudioPickKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		m.pickingAudio = false
		return m, nil

	case KeyJ, KeyDown:
		if m.selectedAudio < len(m.audioFiles)-1 {
			m.selectedAudio++
		}
		return m, nil

	case KeyK, KeyUp:
		if m.selectedAudio > 0 {
			m.selectedAudio--
		}
		return m, nil

	case KeyEnter:
		if m.uploading || m.selectedAudio >= len(m.audioFiles) {
			return m, nil
		}
		m.uploading = true
		m.pickingAudio = false
		m.statusText = "Uploading audio..."
		return m, processAudioCmd(m.api, m.userID, m.patientID, m.audioFiles[m.selectedAudio])
	}
	return m, nil
}

func (m Model) handleSessionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit, KeyQuitUpper:
		return m, tea.Quit

	case KeyEsc:
		m.page = PagePatient
		m.sessionID = ""
		m.rep = nil
		return m, nil

	case KeyTab:
		if m.focusedPanel == FocusSummaries {
			m.focusedPanel = FocusTranscript
		} else {
			m.focusedPanel = FocusSummaries
		}
		return m, nil

	case KeyJ:
		if m.focusedPanel == FocusSummaries && m.rep != nil {
			if m.selectedSection < len(m.rep.Sections)-1 {
				m.selectedSection++
			}
		}
		return m, nil

	case KeyK:
		if m.focusedPanel == FocusSummaries && m.selectedSection > 0 {
			m.selectedSection--
		}
		return m, nil

	case KeyEnter:
		if m.focusedPanel == FocusSummaries && m.rep != nil && m.selectedSection < len(m.rep.Sections) {
			m.expanded[m.selectedSection] = !m.expanded[m.selectedSection]
		}
		return m, nil

	case KeyUp:
		if m.focusedPanel == FocusTranscript && m.transcriptScroll > 0 {
			m.transcriptScroll--
		}
		return m, nil

	case KeyDown:
		if m.focusedPanel == FocusTranscript {
			if m.transcriptScroll < m.maxTranscriptScroll() {
				m.transcriptScroll++
			}
		}
		return m, nil

	case KeyRefresh:
		if m.sessionID != "" {
			m.loadingSession = true
			return m, loadSessionCmd(m.api, m.sessionID, m.cfg.Activity.IntervalSeconds)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) maxTranscriptScroll() int {
	if m.rep == nil {
		return 0
	}
	total := len(strings.Split(m.rep.FullTranscript, "\n"))
	visible := m.contentHeight() - 1
	if total <= visible {
		return 0
	}
	return total - visible
}
