package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Minetz/theracompass/internal/align"
	"github.com/Minetz/theracompass/internal/api"
	"github.com/Minetz/theracompass/internal/ui"
)

// View renders the active page.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	switch m.page {
	case PageLogin:
		sections = append(sections, m.renderLogin())
	case PageHome:
		sections = append(sections, m.renderHome())
	case PagePatient:
		sections = append(sections, m.renderPatient())
	case PageSession:
		sections = append(sections, m.renderSession())
	}

	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	if m.errorMessage != "" {
		sections = append(sections, ui.ErrorStyle.Render("Error: ")+ui.ErrorTextStyle.Render(m.errorMessage))
	}
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("THERACOMPASS")

	var crumb string
	switch m.page {
	case PageHome:
		crumb = " › Patients"
	case PagePatient:
		crumb = " › " + m.patientName()
	case PageSession:
		crumb = " › " + m.patientName() + " › " + m.sessionID
	}

	return title + ui.DimStyle.Render(crumb) + "  " + ui.StatusStyle.Render(m.statusText)
}

func (m Model) patientName() string {
	if m.user != nil {
		if p, ok := m.user.Patients[m.patientID]; ok && p.Name != "" {
			return p.Name
		}
	}
	return m.patientID
}

// contentHeight is the number of rows between the header and footer chrome.
func (m Model) contentHeight() int {
	if m.height == 0 {
		return 20
	}
	// header(1) + divider(1) + divider(1) + error(1) + footer(1)
	return max(5, m.height-5)
}

func (m Model) renderLogin() string {
	lines := []string{""}

	emailLabel := ui.InputLabelStyle.Render("  Email:    ")
	passLabel := ui.InputLabelStyle.Render("  Password: ")

	email := m.email
	masked := strings.Repeat("*", len(m.password))
	if m.activeField == fieldEmail {
		email = ui.InputActiveStyle.Render(email + "▌")
	} else {
		masked = ui.InputActiveStyle.Render(masked)
	}
	if m.activeField == fieldPassword {
		masked += ui.InputActiveStyle.Render("▌")
	}

	lines = append(lines, emailLabel+email)
	lines = append(lines, passLabel+masked)
	lines = append(lines, "")
	if m.signingIn {
		lines = append(lines, ui.DimStyle.Render("  Signing in..."))
	}
	if m.resetSent {
		lines = append(lines, ui.SuccessStyle.Render("  Password reset email sent."))
	}

	return m.padPage(lines)
}

func (m Model) renderHome() string {
	var lines []string

	if m.creatingPatient {
		fw := api.Frameworks[m.newFrameworkIdx]
		fwLabel := string(fw) + " " + ui.DimStyle.Render("("+fw.Short()+")")
		lines = append(lines, ui.PanelTitleStyle.Render("NEW PATIENT"))
		lines = append(lines, ui.InputLabelStyle.Render("  Name:      ")+ui.InputActiveStyle.Render(m.newPatientName+"▌"))
		lines = append(lines, ui.InputLabelStyle.Render("  Framework: ")+fwLabel)
		lines = append(lines, "")
		lines = append(lines, ui.DimStyle.Render("  Tab cycles framework, Enter creates, Esc cancels"))
		return m.padPage(lines)
	}

	lines = append(lines, ui.PanelTitleStyle.Render(fmt.Sprintf("PATIENTS (%d)", len(m.patientIDs))))

	if len(m.patientIDs) == 0 {
		lines = append(lines, ui.DimStyle.Render("  No patients yet. Press n to add one."))
	}
	for i, id := range m.patientIDs {
		p := m.user.Patients[id]
		detail := ""
		if p.Framework != "" {
			detail = "  " + ui.DimStyle.Render("["+api.TherapyFramework(p.Framework).Short()+"]")
		}
		detail += ui.DimStyle.Render(fmt.Sprintf("  %d sessions", len(p.Items)))
		if i == m.selectedPatient {
			lines = append(lines, ui.SelectedStyle.Render("> "+p.Name)+detail)
		} else {
			lines = append(lines, "  "+p.Name+detail)
		}
	}

	return m.padPage(lines)
}

func (m Model) renderPatient() string {
	var lines []string

	if m.pickingAudio {
		lines = append(lines, ui.PanelTitleStyle.Render("UPLOAD AUDIO"))
		if len(m.audioFiles) == 0 {
			lines = append(lines, ui.DimStyle.Render("  Scanning "+m.cfg.Audio.Dir+"..."))
		}
		for i, f := range m.audioFiles {
			if i == m.selectedAudio {
				lines = append(lines, ui.SelectedStyle.Render("> "+f))
			} else {
				lines = append(lines, "  "+f)
			}
		}
		return m.padPage(lines)
	}

	lines = append(lines, ui.PanelTitleStyle.Render(fmt.Sprintf("SESSIONS (%d)", len(m.sessionIDs))))

	if len(m.sessionIDs) == 0 {
		lines = append(lines, ui.DimStyle.Render("  No sessions yet. Press u to upload audio."))
	}
	for i, id := range m.sessionIDs {
		s := m.user.Patients[m.patientID].Items[id]
		label := id
		if s.Datetime != "" {
			label = s.Datetime + "  " + ui.DimStyle.Render(id)
		}
		if st, ok := m.stats[id]; ok {
			label += ui.DimStyle.Render(fmt.Sprintf("  %d words, %s", st.WordCount, formatDuration(st.Duration)))
		}
		if i == m.selectedSession {
			lines = append(lines, ui.SelectedStyle.Render("> ")+label)
		} else {
			lines = append(lines, "  "+label)
		}
	}
	var rollupWords int
	var rollupDur float64
	known := 0
	for _, id := range m.sessionIDs {
		if st, ok := m.stats[id]; ok {
			rollupWords += st.WordCount
			rollupDur += st.Duration
			known++
		}
	}
	if known > 0 {
		lines = append(lines, "")
		lines = append(lines, ui.InputLabelStyle.Render("  Total: ")+
			fmt.Sprintf("%d sessions, %d words, %s", len(m.sessionIDs), rollupWords, formatDuration(rollupDur)))
	}

	if m.uploading {
		lines = append(lines, "")
		lines = append(lines, ui.DimStyle.Render("  Uploading audio..."))
	}

	return m.padPage(lines)
}

func (m Model) renderSession() string {
	if m.loadingSession {
		return m.padPage([]string{ui.DimStyle.Render("  Loading session...")})
	}
	if m.rep == nil {
		return m.padPage([]string{ui.DimStyle.Render("  No session loaded.")})
	}

	height := m.contentHeight() - 2 // reserve activity row and totals row
	sumW := m.summaryPanelWidth()
	trW := max(20, m.width-sumW-3)

	left := m.renderSummaryPanel(sumW, height)
	right := m.renderTranscriptPanel(trW, height)
	divider := ui.DividerStyle.Render("│")

	leftLines := strings.Split(left, "\n")
	rightLines := strings.Split(right, "\n")
	var rows []string
	for i := 0; i < height; i++ {
		l, r := "", ""
		if i < len(leftLines) {
			l = leftLines[i]
		}
		if i < len(rightLines) {
			r = rightLines[i]
		}
		rows = append(rows, padRight(l, sumW)+divider+r)
	}

	rows = append(rows, m.renderActivityRow())
	rows = append(rows, m.renderTotalsRow())

	return strings.Join(rows, "\n")
}

func (m Model) renderActivityRow() string {
	if len(m.rep.Activity) == 0 {
		return ui.DimStyle.Render("No activity data available.")
	}
	counts := make([]int, len(m.rep.Activity))
	for i, b := range m.rep.Activity {
		counts[i] = b.Words
	}
	chart := ui.SparklineStyle.Render(ui.Sparkline(counts, max(10, m.width-12)))
	return ui.InputLabelStyle.Render("Activity: ") + chart
}

func (m Model) renderTotalsRow() string {
	t := m.rep.Totals
	return ui.InputLabelStyle.Render("Totals:   ") +
		fmt.Sprintf("%d words, %s", t.WordCount, formatDuration(t.Duration))
}

func (m Model) summaryPanelWidth() int {
	if m.width == 0 {
		return 40
	}
	return max(24, m.width*45/100)
}

func (m Model) renderSummaryPanel(width, height int) string {
	var header string
	title := fmt.Sprintf("SUMMARIES (%d)", len(m.rep.Sections))
	if m.focusedPanel == FocusSummaries {
		header = ui.PanelTitleActiveStyle.Render(title)
	} else {
		header = ui.PanelTitleStyle.Render(title)
	}

	lines := []string{header}

	if len(m.rep.Sections) == 0 {
		lines = append(lines, ui.DimStyle.Render("  No episodic summary available."))
	}
	for i, sec := range m.rep.Sections {
		marker := "▸"
		if m.expanded[i] {
			marker = "▾"
		}
		label := firstLine(sec.Summary)
		var line string
		if i == m.selectedSection && m.focusedPanel == FocusSummaries {
			line = ui.SelectedStyle.Render("> "+marker+" ") + ui.SelectedStyle.Render(label)
		} else {
			line = "  " + marker + " " + label
		}
		lines = append(lines, truncateToWidth(line, width))

		if m.expanded[i] {
			for _, wl := range wrapText(sec.Summary, max(10, width-6)) {
				lines = append(lines, ui.DimStyle.Render("    "+wl))
			}
			if len(sec.Turns) == 0 {
				lines = append(lines, ui.DimStyle.Render("    No related conversation."))
			}
			for _, turn := range sec.Turns {
				style := ui.SecondarySpeakerStyle
				if turn.Color == align.ClassPrimary {
					style = ui.PrimarySpeakerStyle
				}
				speaker := style.Render("["+turn.Speaker+"]") + " "
				for j, wl := range wrapText(turn.Text, max(10, width-8)) {
					if j == 0 {
						lines = append(lines, "    "+speaker+style.Render(wl))
					} else {
						lines = append(lines, "      "+style.Render(wl))
					}
				}
			}
		}
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTranscriptPanel(width, height int) string {
	var header string
	if m.focusedPanel == FocusTranscript {
		header = ui.PanelTitleActiveStyle.Render("TRANSCRIPT")
	} else {
		header = ui.PanelTitleStyle.Render("TRANSCRIPT")
	}

	lines := []string{header}

	if m.rep.FullTranscript == "" {
		lines = append(lines, ui.DimStyle.Render("  No transcript available."))
	} else {
		var display []string
		for _, sentence := range strings.Split(m.rep.FullTranscript, "\n") {
			for _, wl := range wrapText(sentence, max(10, width-4)) {
				display = append(display, "  "+wl)
			}
		}
		start := min(m.transcriptScroll, max(0, len(display)-1))
		end := min(len(display), start+height-1)
		lines = append(lines, display[start:end]...)
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	key := func(k, desc string) string {
		return ui.FooterKeyStyle.Render(k) + ui.FooterDescStyle.Render(" "+desc)
	}

	var parts []string
	switch m.page {
	case PageLogin:
		parts = append(parts, key("Tab", "Field"), key("Enter", "Sign in"), key("Ctrl+P", "Reset password"), key("Esc", "Quit"))
	case PageHome:
		if m.creatingPatient {
			parts = append(parts, key("Enter", "Create"), key("Tab", "Framework"), key("Esc", "Cancel"))
		} else {
			parts = append(parts, key("j/k", "Nav"), key("Enter", "Open"), key("n", "New"), key("d", "Delete"), key("Ctrl+R", "Refresh"), key("q", "Quit"))
		}
	case PagePatient:
		if m.pickingAudio {
			parts = append(parts, key("j/k", "Nav"), key("Enter", "Upload"), key("Esc", "Cancel"))
		} else {
			parts = append(parts, key("j/k", "Nav"), key("Enter", "Open"), key("u", "Upload"), key("d", "Delete"), key("Esc", "Back"), key("q", "Quit"))
		}
	case PageSession:
		parts = append(parts, key("Tab", "Focus"), key("j/k", "Nav"), key("Enter", "Expand"), key("↑↓", "Scroll"), key("Esc", "Back"), key("q", "Quit"))
	}

	return strings.Join(parts, "  ")
}

// padPage pads page body lines to the content height.
func (m Model) padPage(lines []string) string {
	h := m.contentHeight()
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func formatDuration(sec float64) string {
	total := int(sec)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Helpers

func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncateToWidth(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
