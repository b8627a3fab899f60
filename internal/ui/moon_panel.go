package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skyplan/internal/astro"
	"github.com/litescript/ls-skyplan/internal/plan"
)

// moonBarWidth is the width of the illumination bar.
const moonBarWidth = 20

// RenderMoonPanel renders the Moon's phase.
//
//	Moon  Waxing Gibbous ↑   ██████████████████░░  87%   elongation 128.4°
func RenderMoonPanel(phase astro.MoonPhase) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	litStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F5F3CE"))

	arrow := "↓"
	if phase.Waxing {
		arrow = "↑"
	}

	filled := int(phase.Illumination*moonBarWidth + 0.5)
	if filled > moonBarWidth {
		filled = moonBarWidth
	}
	bar := litStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", moonBarWidth-filled))

	return labelStyle.Render("Moon  ") +
		fmt.Sprintf("%-16s %s   ", phase.Name, arrow) + bar +
		fmt.Sprintf("  %3.0f%%", phase.Illumination*100) +
		dimStyle.Render(fmt.Sprintf("   elongation %.1f°", phase.ElongationDeg))
}

// RenderMoonSweep renders an illumination series with its mean.
func RenderMoonSweep(samples []plan.MoonSample, width int) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	if len(samples) == 0 {
		return dimStyle.Render("No sweep available")
	}

	k := make([]float64, len(samples))
	for i, s := range samples {
		k[i] = s.Illumination
	}

	first, last := samples[0].Time, samples[len(samples)-1].Time
	return dimStyle.Render(first.UTC().Format("Jan 02")+" ") +
		RenderSparkline(k, 1, width) +
		dimStyle.Render(fmt.Sprintf(" %s   mean %.0f%%", last.UTC().Format("Jan 02"), plan.MeanIllumination(samples)*100))
}
