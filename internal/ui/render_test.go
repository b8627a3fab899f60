package ui

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/litescript/ls-skyplan/internal/astro"
	"github.com/litescript/ls-skyplan/internal/plan"
	"github.com/litescript/ls-skyplan/internal/state"
)

func TestTierToBar(t *testing.T) {
	tests := []struct {
		tier       astro.AltitudeTier
		wantFilled int
	}{
		{astro.AltitudeNone, 0},
		{astro.AltitudeLow, 1},
		{astro.AltitudeMedium, 2},
		{astro.AltitudeHigh, 4},
	}

	for _, tt := range tests {
		bar := tierToBar(tt.tier)
		if got := strings.Count(bar, "█"); got != tt.wantFilled {
			t.Errorf("tierToBar(%v) filled = %d, want %d", tt.tier, got, tt.wantFilled)
		}
		if utf8.RuneCountInString(bar) != 4 {
			t.Errorf("tierToBar(%v) = %q, want 4 cells", tt.tier, bar)
		}
	}
}

func TestInterpolateColor(t *testing.T) {
	r, g, b := interpolateColor(0)
	if [3]uint8{r, g, b} != sparkColorLow {
		t.Errorf("t=0 gives %v, want %v", [3]uint8{r, g, b}, sparkColorLow)
	}
	r, g, b = interpolateColor(0.5)
	if [3]uint8{r, g, b} != sparkColorMid {
		t.Errorf("t=0.5 gives %v, want %v", [3]uint8{r, g, b}, sparkColorMid)
	}
	r, g, b = interpolateColor(2)
	if [3]uint8{r, g, b} != sparkColorHigh {
		t.Errorf("t=2 gives %v, want clamped %v", [3]uint8{r, g, b}, sparkColorHigh)
	}
}

func TestResample(t *testing.T) {
	got := resample([]float64{1, 2, 3, 4}, 2)
	if len(got) != 2 || got[0] != 1.5 || got[1] != 3.5 {
		t.Errorf("resample = %v, want [1.5 3.5]", got)
	}

	got = resample([]float64{7, 9}, 4)
	if len(got) != 4 || got[0] != 7 || got[3] != 9 {
		t.Errorf("upsample = %v", got)
	}

	if resample(nil, 4) != nil || resample([]float64{1}, 0) != nil {
		t.Error("expected nil for empty input or width")
	}
}

func TestRenderSparkline(t *testing.T) {
	line := RenderSparkline([]float64{0, 0, 90, 90}, 90, 4)
	if !strings.Contains(line, "▁") || !strings.Contains(line, "█") {
		t.Errorf("sparkline %q should span lowest to highest block", line)
	}
	if n := strings.Count(line, "▁") + strings.Count(line, "█"); n != 4 {
		t.Errorf("sparkline has %d cells, want 4", n)
	}

	if RenderSparkline(nil, 90, 4) != "" {
		t.Error("empty input should render nothing")
	}
}

func TestRenderTraceSparkline(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := &plan.Trace{Start: base, End: base.Add(2 * time.Hour), Samples: []plan.Sample{
		{Time: base, AltDeg: 10},
		{Time: base.Add(time.Hour), AltDeg: 45},
		{Time: base.Add(2 * time.Hour), AltDeg: 20},
	}}

	if got := RenderTraceSparkline(tr, base.Add(time.Hour), 12); !strings.Contains(got, "now: 45°") {
		t.Errorf("trace sparkline %q missing current altitude", got)
	}
	if got := RenderTraceSparkline(tr, base.Add(5*time.Hour), 12); strings.Contains(got, "now:") {
		t.Errorf("no current altitude outside the trace, got %q", got)
	}
	if got := RenderTraceSparkline(nil, base, 12); !strings.Contains(got, "No trace") {
		t.Errorf("nil trace rendered %q", got)
	}
}

func TestRenderHistorySparkline(t *testing.T) {
	if got := RenderHistorySparkline(nil, 8); !strings.Contains(got, "No history") {
		t.Errorf("got %q", got)
	}
	h := []state.TimeSeries{{Value: 0}, {Value: 90}}
	if got := RenderHistorySparkline(h, 2); !strings.Contains(got, "█") {
		t.Errorf("got %q", got)
	}
}

func TestRenderSurveyTable_Scrolls(t *testing.T) {
	s := &plan.Survey{}
	for _, name := range []string{"A0", "A1", "A2", "A3", "A4", "A5", "A6"} {
		s.Reports = append(s.Reports, plan.TargetReport{Target: plan.Target{Name: name}})
	}

	table := RenderSurveyTable(s, 5, 3)
	for _, want := range []string{"A3", "A4", "▶ A5"} {
		if !strings.Contains(table, want) {
			t.Errorf("table missing %q:\n%s", want, table)
		}
	}
	if strings.Contains(table, "A0") || strings.Contains(table, "A6") {
		t.Errorf("table should scroll to the selection:\n%s", table)
	}

	if !strings.Contains(RenderSurveyTable(nil, 0, 0), "No targets") {
		t.Error("nil survey should render placeholder")
	}
}

func TestVisibilityLabel(t *testing.T) {
	tests := []struct {
		r    plan.TargetReport
		want string
	}{
		{plan.TargetReport{Rises: true, Circumpolar: true, CircumpolarMin: true}, "circumpolar (above min)"},
		{plan.TargetReport{Rises: true, Circumpolar: true}, "circumpolar"},
		{plan.TargetReport{Rises: true}, "rises"},
		{plan.TargetReport{}, "never rises"},
	}
	for _, tt := range tests {
		if got := visibilityLabel(tt.r); !strings.Contains(got, tt.want) {
			t.Errorf("visibilityLabel = %q, want %q", got, tt.want)
		}
	}
}

func TestMoonSepColor(t *testing.T) {
	if moonSepColor(5) != colorMoonWarning || moonSepColor(20) != colorMoonCaution || moonSepColor(90) != colorMoonSafe {
		t.Error("unexpected moon separation colors")
	}
}

func TestRenderMoonPanel(t *testing.T) {
	got := RenderMoonPanel(astro.MoonPhase{Illumination: 0.87, Waxing: true, Name: "Waxing Gibbous", ElongationDeg: 128.4})
	for _, want := range []string{"Waxing Gibbous", "↑", "87%", "128.4°"} {
		if !strings.Contains(got, want) {
			t.Errorf("moon panel %q missing %q", got, want)
		}
	}
	if n := strings.Count(got, "█"); n != 17 {
		t.Errorf("lit cells = %d, want 17", n)
	}
}

func TestRenderWindows(t *testing.T) {
	if got := RenderWindows(nil, time.UTC); !strings.Contains(got, "Never above") {
		t.Errorf("got %q", got)
	}

	base := time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)
	ws := []plan.Window{{
		Start: base, Peak: base.Add(time.Hour), End: base.Add(95 * time.Minute),
		PeakAltDeg: 58, Status: plan.StatusNext,
	}}
	got := RenderWindows(ws, time.UTC)
	for _, want := range []string{"NEXT", "Rise 22:00", "Peak 23:00 @ 58°", "Set 23:35", "(1h 35m)"} {
		if !strings.Contains(got, want) {
			t.Errorf("windows %q missing %q", got, want)
		}
	}
}

func TestRenderNight(t *testing.T) {
	date := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	if got := RenderNight(plan.Night{Date: date, Continuous: true, Daylight: true}, time.UTC); !strings.Contains(got, "midnight sun") {
		t.Errorf("got %q", got)
	}
	if got := RenderNight(plan.Night{Date: date, Continuous: true}, time.UTC); !strings.Contains(got, "polar night") {
		t.Errorf("got %q", got)
	}
	n := plan.Night{Date: date, Sunset: date.Add(20 * time.Hour), Sunrise: date.Add(29 * time.Hour)}
	if got := RenderNight(n, time.UTC); !strings.Contains(got, "sunset 20:00") || !strings.Contains(got, "(9h)") {
		t.Errorf("got %q", got)
	}
}

func TestRenderEvents(t *testing.T) {
	if got := RenderEvents(nil); !strings.Contains(got, "No events") {
		t.Errorf("got %q", got)
	}
	got := RenderEvents([]state.Event{{Type: state.EventRise, Target: "Vega", AltDeg: 10.2, Timestamp: time.Now()}})
	if !strings.Contains(got, "RISE") || !strings.Contains(got, "Vega @ 10.2°") {
		t.Errorf("got %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{-time.Second, "now"},
		{30 * time.Second, "30s"},
		{5 * time.Minute, "5m"},
		{2 * time.Hour, "2h"},
		{95 * time.Minute, "1h 35m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
