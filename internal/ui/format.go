package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skyplan/internal/plan"
	"github.com/litescript/ls-skyplan/internal/state"
)

// RenderWindows renders visibility windows, one per line, in loc.
//
//	NEXT    Rise 22:14   Peak 23:02 @ 58°   Set 23:49   (1h 35m)
func RenderWindows(ws []plan.Window, loc *time.Location) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	if len(ws) == 0 {
		return dimStyle.Render("Never above the minimum altitude in this window")
	}

	var lines []string
	for _, w := range ws {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(statusColor(w.Status))).Bold(true)

		rise := "Rise " + w.Start.In(loc).Format("15:04")
		if w.OpenStart {
			rise = "Up   " + w.Start.In(loc).Format("15:04")
		}
		set := "Set " + w.End.In(loc).Format("15:04")
		if w.OpenEnd {
			set = "Up  " + w.End.In(loc).Format("15:04")
		}

		lines = append(lines, statusStyle.Render(fmt.Sprintf("%-7s", w.Status))+" "+
			fmt.Sprintf("%s   Peak %s @ %2.0f°   %s", rise, w.Peak.In(loc).Format("15:04"), w.PeakAltDeg, set)+
			dimStyle.Render(fmt.Sprintf("   (%s)", formatDuration(w.Duration()))))
	}
	return strings.Join(lines, "\n")
}

func statusColor(s plan.Status) string {
	switch s {
	case plan.StatusNow:
		return colorVisHigh
	case plan.StatusNext:
		return colorVisMedium
	case plan.StatusPast:
		return colorVisNone
	default:
		return "250"
	}
}

// RenderNight renders the night boundaries in loc.
func RenderNight(n plan.Night, loc *time.Location) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true)
	date := n.Date.Format("2006-01-02")

	switch {
	case n.Continuous && n.Daylight:
		return labelStyle.Render("Night ") + date + "  midnight sun, no darkness"
	case n.Continuous:
		return labelStyle.Render("Night ") + date + "  polar night, dark all day"
	}
	return labelStyle.Render("Night ") + fmt.Sprintf("%s  sunset %s  sunrise %s  (%s)",
		date, n.Sunset.In(loc).Format("15:04"), n.Sunrise.In(loc).Format("15:04"), formatDuration(n.Duration()))
}

// RenderEvents renders visibility events, oldest first.
func RenderEvents(events []state.Event) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	if len(events) == 0 {
		return dimStyle.Render("No events yet")
	}

	var lines []string
	for _, e := range events {
		color := colorVisMedium
		switch e.Type {
		case state.EventRise:
			color = colorVisHigh
		case state.EventSet:
			color = colorVisLow
		}
		typeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		lines = append(lines, dimStyle.Render(e.Timestamp.Local().Format("15:04:05"))+" "+
			typeStyle.Render(fmt.Sprintf("%-9s", e.Type))+" "+
			fmt.Sprintf("%s @ %.1f°", e.Target, e.AltDeg))
	}
	return strings.Join(lines, "\n")
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < 0 {
		return "now"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
