// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skyplan/internal/astro"
	"github.com/litescript/ls-skyplan/internal/plan"
	"github.com/litescript/ls-skyplan/internal/state"
	"github.com/litescript/ls-skyplan/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewSurvey ViewMode = iota
	ViewMoon
)

// Moon sweep shown in ViewMoon.
const (
	moonSweepSpan = 30 * 24 * time.Hour
	moonSweepStep = 6 * time.Hour
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// SurveyMsg carries a finished survey.
	SurveyMsg struct {
		Survey   *plan.Survey
		Duration time.Duration
		Err      error
	}

	// MoonSweepMsg carries a finished Moon sweep.
	MoonSweepMsg struct {
		Samples []plan.MoonSample
		Err     error
	}
)

// Options configures what the watch view surveys.
type Options struct {
	Site        astro.ObserverInfo
	Targets     []plan.Target
	MinAltitude float64
	Now         func() time.Time // defaults to time.Now
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	planner *plan.Planner
	state   *state.Manager
	opts    Options

	// UI state
	viewMode ViewMode
	width    int
	height   int
	ready    bool
	animTick int
	selected int

	// Data
	snapshot    state.Snapshot
	sweep       []plan.MoonSample
	sweepErr    error
	surveying   bool
	nextRefresh time.Time
}

// New creates a new root UI model.
func New(planner *plan.Planner, mgr *state.Manager, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return Model{
		planner:   planner,
		state:     mgr,
		opts:      opts,
		viewMode:  ViewSurvey,
		surveying: true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		animTickCmd(),
		m.surveyCmd(),
		m.moonSweepCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1", "s":
			m.viewMode = ViewSurvey
		case "2", "m":
			m.viewMode = ViewMoon
		case "tab":
			m.viewMode = (m.viewMode + 1) % 2
		case "j", "down":
			if m.selected < len(m.opts.Targets)-1 {
				m.selected++
			}
		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}
		case "r":
			if !m.surveying {
				m.surveying = true
				cmds = append(cmds, m.surveyCmd())
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case TickMsg:
		cmds = append(cmds, tickCmd())
		if !m.surveying && !time.Time(msg).Before(m.nextRefresh) {
			m.surveying = true
			cmds = append(cmds, m.surveyCmd())
		}

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case SurveyMsg:
		m.state.Update(msg.Survey, msg.Duration, msg.Err)
		m.snapshot = m.state.Snapshot()
		m.surveying = false
		m.nextRefresh = time.Now().Add(m.state.RefreshInterval())

	case MoonSweepMsg:
		m.sweep = msg.Samples
		m.sweepErr = msg.Err
	}

	return m, tea.Batch(cmds...)
}

// Selected returns the index of the selected target.
func (m Model) Selected() int {
	return m.selected
}

// Mode returns the active view.
func (m Model) Mode() ViewMode {
	return m.viewMode
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewMoon:
		content = m.renderMoonView()
	default:
		content = m.renderSurveyView()
	}

	return m.renderHeader() + "\n" + content + "\n\n" + m.renderFooter()
}

func (m Model) renderSurveyView() string {
	s := m.snapshot.Survey
	if s == nil {
		return "  " + m.renderShimmerText("Surveying...")
	}

	// Header, tabs, summary, table header, sparkline, events and footer.
	rows := m.height - 16
	if rows < 3 {
		rows = 3
	}

	var b strings.Builder
	b.WriteString("  " + RenderSurveySummary(s) + "\n\n")
	b.WriteString(indent(RenderSurveyTable(s, m.selected, rows)) + "\n\n")

	if m.selected < len(s.Reports) {
		name := s.Reports[m.selected].Name
		label := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render(fmt.Sprintf("%-14s", truncate(name, 14)))
		b.WriteString("  " + label + " " + RenderHistorySparkline(m.state.AltitudeHistory(name), SparklineWidth) + "\n\n")
	}

	b.WriteString(indent(RenderEvents(m.state.RecentEvents(3))))
	return b.String()
}

func (m Model) renderMoonView() string {
	var b strings.Builder
	if s := m.snapshot.Survey; s != nil {
		b.WriteString("  " + RenderMoonPanel(s.Moon) + "\n\n")
	}
	switch {
	case m.sweepErr != nil:
		b.WriteString("  " + lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27")).Render("Moon sweep: "+m.sweepErr.Error()))
	case m.sweep == nil:
		b.WriteString("  " + m.renderShimmerText("Sweeping Moon phases..."))
	default:
		b.WriteString("  " + RenderMoonSweep(m.sweep, SparklineWidth))
	}
	return b.String()
}

func (m Model) renderHeader() string {
	title := "  ls-skyplan"
	var b strings.Builder
	b.WriteString("\n")
	runes := []rune(title)
	for col, r := range runes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(col, 0, len(runes), 1))).Bold(true)
		b.WriteString(style.Render(string(r)))
	}
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  v%s · night sky visibility", version.Version)))
	b.WriteString("\n" + m.renderTabs() + "\n")
	return b.String()
}

// gradientColor returns a hex color for a position in the title gradient:
// blue -> purple -> magenta -> pink, darker toward the bottom.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	switch {
	case xRatio < 0.33:
		t := xRatio / 0.33
		r, g, b = 59+t*(139-59), 130+t*(92-130), 246
	case xRatio < 0.66:
		t := (xRatio - 0.33) / 0.33
		r, g, b = 139+t*(217-139), 92+t*(70-92), 246+t*(239-246)
	default:
		t := (xRatio - 0.66) / 0.34
		r, g, b = 217+t*(236-217), 70+t*(72-70), 239+t*(153-239)
	}

	f := 1.0 - (yRatio * 0.5)
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r*f), clampByte(g*f), clampByte(b*f))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return int(v)
	}
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Survey", "[2] Moon"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case m.surveying:
		status = accentStyle.Render(spinner) + dimStyle.Render(" surveying")
	default:
		countdown := time.Until(m.nextRefresh).Round(time.Second)
		if countdown < 0 {
			countdown = 0
		}
		status = accentStyle.Render(spinner) + dimStyle.Render(fmt.Sprintf(" refresh in %ds", int(countdown.Seconds())))
		if m.snapshot.UpdateDuration > 0 {
			status += dimStyle.Render(" (" + m.snapshot.UpdateDuration.Round(time.Millisecond).String() + ")")
		}
	}

	help := dimStyle.Render("j/k: select | r: refresh | tab: switch view | q: quit")
	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	pos := m.animTick % (len(runes) + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 180, 160, 220
		case dist <= 3:
			r8, g8, b8 = 140, 120, 180
		case dist <= 5:
			r8, g8, b8 = 110, 90, 150
		default:
			r8, g8, b8 = 80, 70, 120
		}

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)))
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}

func (m Model) surveyCmd() tea.Cmd {
	planner, opts := m.planner, m.opts
	return func() tea.Msg {
		start := time.Now()
		s, err := planner.Survey(context.Background(), opts.Site, opts.Targets, opts.Now(), opts.MinAltitude)
		return SurveyMsg{Survey: s, Duration: time.Since(start), Err: err}
	}
}

func (m Model) moonSweepCmd() tea.Cmd {
	planner, now := m.planner, m.opts.Now
	return func() tea.Msg {
		start := now()
		samples, err := planner.MoonSweep(context.Background(), start, start.Add(moonSweepSpan), moonSweepStep)
		return MoonSweepMsg{Samples: samples, Err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
