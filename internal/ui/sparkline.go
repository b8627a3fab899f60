package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skyplan/internal/plan"
	"github.com/litescript/ls-skyplan/internal/state"
)

// SparklineWidth is the default width of altitude sparklines.
const SparklineWidth = 48

// sparklineBlocks are the Unicode block characters for sparkline (0 = lowest, 7 = highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline gradient: low (dark blue) → mid (blue) → high (cyan).
var (
	sparkColorLow  = [3]uint8{0x1b, 0x2b, 0x4b}
	sparkColorMid  = [3]uint8{0x34, 0x78, 0xc0}
	sparkColorHigh = [3]uint8{0x8b, 0xe9, 0xff}
)

// RenderSparkline renders values in [0, maxValue] as a colored sparkline,
// resampled to width cells. Values outside the range are clamped.
func RenderSparkline(values []float64, maxValue float64, width int) string {
	cells := resample(values, width)
	if len(cells) == 0 || maxValue <= 0 {
		return ""
	}

	var sb strings.Builder
	for _, v := range cells {
		t := v / maxValue
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}

		blockIdx := int(t * 7.0)
		if blockIdx > 7 {
			blockIdx = 7
		}

		r, g, b := interpolateColor(t)
		color := fmt.Sprintf("#%02x%02x%02x", r, g, b)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(sparklineBlocks[blockIdx])))
	}
	return sb.String()
}

// RenderTraceSparkline renders a trace's altitude (0° to 90°) with the
// current altitude appended.
func RenderTraceSparkline(tr *plan.Trace, now time.Time, width int) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	if tr == nil || len(tr.Samples) == 0 {
		return dimStyle.Render("No trace available")
	}

	line := RenderSparkline(tr.Altitudes(), 90, width)
	if s, ok := tr.AltitudeAt(now); ok && !now.Before(tr.Start) && !now.After(tr.End) {
		nowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
		line += nowStyle.Render(fmt.Sprintf(" now: %.0f°", s.AltDeg))
	}
	return line
}

// RenderHistorySparkline renders a target's recorded altitudes.
func RenderHistorySparkline(history []state.TimeSeries, width int) string {
	if len(history) == 0 {
		dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		return dimStyle.Render("No history yet")
	}
	values := make([]float64, len(history))
	for i, h := range history {
		values[i] = h.Value
	}
	return RenderSparkline(values, 90, width)
}

// interpolateColor returns RGB color for value t in [0, 1].
func interpolateColor(t float64) (uint8, uint8, uint8) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	lo, hi := sparkColorLow, sparkColorMid
	s := t * 2
	if t >= 0.5 {
		lo, hi = sparkColorMid, sparkColorHigh
		s = (t - 0.5) * 2
	}

	mix := func(i int) uint8 {
		return uint8(float64(lo[i])*(1-s) + float64(hi[i])*s)
	}
	return mix(0), mix(1), mix(2)
}

// resample averages values into a fixed number of buckets. Fewer values
// than buckets are repeated.
func resample(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}

	result := make([]float64, width)
	perBucket := float64(len(values)) / float64(width)

	for i := 0; i < width; i++ {
		startIdx := int(float64(i) * perBucket)
		endIdx := int(float64(i+1) * perBucket)
		if endIdx <= startIdx {
			endIdx = startIdx + 1
		}
		if endIdx > len(values) {
			endIdx = len(values)
		}
		if startIdx >= endIdx {
			startIdx = endIdx - 1
		}

		sum := 0.0
		for j := startIdx; j < endIdx; j++ {
			sum += values[j]
		}
		result[i] = sum / float64(endIdx-startIdx)
	}

	return result
}
