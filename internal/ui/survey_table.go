package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skyplan/internal/astro"
	"github.com/litescript/ls-skyplan/internal/plan"
)

// Visibility display colors
const (
	colorVisHigh   = "#7CFC00" // Lawn green - high altitude
	colorVisMedium = "#FFD700" // Gold - medium altitude
	colorVisLow    = "#FF6347" // Tomato - low altitude
	colorVisNone   = "#444444" // Dark gray - below horizon

	// Moon separation colors
	colorMoonSafe    = "#7CFC00" // Green - clear of the Moon (>=30°)
	colorMoonCaution = "#FFD700" // Gold - caution (15-30°)
	colorMoonWarning = "#FF4500" // Orange-red - washed out (<15°)
)

// RenderSurveySummary renders the one-line header of a survey.
func RenderSurveySummary(s *plan.Survey) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	line := labelStyle.Render(s.Site.Name) +
		dimStyle.Render(fmt.Sprintf("  %+.4f° %+.4f°  %s  min %.0f°  %d/%d above horizon",
			s.Site.LatDeg, s.Site.LonDeg, s.Time.UTC().Format("2006-01-02 15:04 UTC"),
			s.MinAltitude, s.VisibleCount(), len(s.Reports)))
	if s.AbovePolarCircle {
		line += dimStyle.Render("  (polar)")
	}
	return line
}

// RenderSurveyTable renders one row per target. The selected row is marked
// and kept within maxRows by scrolling; maxRows <= 0 shows every row.
//
//	  NAME            ALT      AZ  TIER   MOON  VISIBILITY
//	▶ Vega          62.4°  281.3°  ████  48.2°  rises
func RenderSurveyTable(s *plan.Survey, selected, maxRows int) string {
	if s == nil || len(s.Reports) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("No targets")
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Bold(true)
	selStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	lines := []string{headerStyle.Render(fmt.Sprintf("  %-14s %7s %7s  %-4s  %6s  %s",
		"NAME", "ALT", "AZ", "TIER", "MOON", "VISIBILITY"))}

	start, end := 0, len(s.Reports)
	if maxRows > 0 && end > maxRows {
		if selected >= maxRows {
			start = selected - maxRows + 1
		}
		end = start + maxRows
	}

	for i := start; i < end; i++ {
		r := s.Reports[i]
		marker := "  "
		name := fmt.Sprintf("%-14s", truncate(r.Name, 14))
		if i == selected {
			marker = selStyle.Render("▶ ")
			name = selStyle.Render(name)
		}

		line := marker + name +
			colorByTier(r.Tier, fmt.Sprintf(" %6.1f° %6.1f°", r.Position.AltDeg, r.Position.AzDeg)) +
			"  " + lipgloss.NewStyle().Foreground(lipgloss.Color(tierToColor(r.Tier))).Render(tierToBar(r.Tier)) +
			"  " + renderMoonSeparation(r.MoonSeparation) +
			"  " + visibilityLabel(r)
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// visibilityLabel summarizes the static visibility predicates of a target.
func visibilityLabel(r plan.TargetReport) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	switch {
	case r.CircumpolarMin:
		return dimStyle.Render("circumpolar (above min)")
	case r.Circumpolar:
		return dimStyle.Render("circumpolar")
	case r.Rises:
		return dimStyle.Render("rises")
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorVisNone)).Render("never rises")
	}
}

// renderMoonSeparation renders a Moon separation angle colored by how badly
// moonlight interferes.
func renderMoonSeparation(sep float64) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(moonSepColor(sep)))
	return style.Render(fmt.Sprintf("%5.1f°", sep))
}

func moonSepColor(sep float64) string {
	switch {
	case sep < 15:
		return colorMoonWarning
	case sep < 30:
		return colorMoonCaution
	default:
		return colorMoonSafe
	}
}

// tierToBar converts altitude tier to a 4-character bar representation.
func tierToBar(tier astro.AltitudeTier) string {
	switch tier {
	case astro.AltitudeHigh:
		return "████"
	case astro.AltitudeMedium:
		return "██░░"
	case astro.AltitudeLow:
		return "█░░░"
	default:
		return "░░░░"
	}
}

// tierToColor returns the color for an altitude tier.
func tierToColor(tier astro.AltitudeTier) string {
	switch tier {
	case astro.AltitudeHigh:
		return colorVisHigh
	case astro.AltitudeMedium:
		return colorVisMedium
	case astro.AltitudeLow:
		return colorVisLow
	default:
		return colorVisNone
	}
}

// colorByTier applies tier-based coloring to text.
func colorByTier(tier astro.AltitudeTier, text string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(tierToColor(tier)))
	return style.Render(text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
