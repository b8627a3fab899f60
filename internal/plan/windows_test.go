package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var traceStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func hourlyTrace(alts ...float64) *Trace {
	tr := &Trace{Step: time.Hour}
	for i, a := range alts {
		tr.Samples = append(tr.Samples, Sample{Time: traceStart.Add(time.Duration(i) * time.Hour), AltDeg: a})
	}
	return tr
}

func hour(n float64) time.Time {
	return traceStart.Add(time.Duration(n * float64(time.Hour)))
}

func TestWindows(t *testing.T) {
	tr := hourlyTrace(-10, 0, 10, 20, 10, 0, -10, -10, 10, 20)

	ws := Windows(tr, 5, hour(3))
	require.Len(t, ws, 2)

	first := ws[0]
	assert.Equal(t, hour(1.5), first.Start)
	assert.Equal(t, hour(4.5), first.End)
	assert.Equal(t, hour(3), first.Peak)
	assert.Equal(t, 20.0, first.PeakAltDeg)
	assert.Equal(t, 3*time.Hour, first.Duration())
	assert.False(t, first.OpenStart)
	assert.False(t, first.OpenEnd)
	assert.Equal(t, StatusNow, first.Status)

	second := ws[1]
	assert.Equal(t, hour(7.75), second.Start)
	assert.Equal(t, hour(9), second.End)
	assert.True(t, second.OpenEnd)
	assert.Equal(t, StatusNext, second.Status)

	assert.Same(t, &ws[0], CurrentWindow(ws))
	assert.Same(t, &ws[1], NextWindow(ws))
}

func TestWindows_Classification(t *testing.T) {
	tr := hourlyTrace(-10, 10, -10, 10, -10, 10, -10)

	tests := []struct {
		name string
		now  time.Time
		want []Status
	}{
		{"before all", hour(0), []Status{StatusNext, StatusFuture, StatusFuture}},
		{"during second", hour(3), []Status{StatusPast, StatusNow, StatusNext}},
		{"between", hour(2), []Status{StatusPast, StatusNext, StatusFuture}},
		{"after all", hour(7), []Status{StatusPast, StatusPast, StatusPast}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := Windows(tr, 0, tt.now)
			require.Len(t, ws, len(tt.want))
			for i, w := range ws {
				assert.Equal(t, tt.want[i], w.Status, "window %d", i)
			}
		})
	}
}

func TestWindows_OpenStart(t *testing.T) {
	ws := Windows(hourlyTrace(30, 20, 10, -5), 0, hour(10))
	require.Len(t, ws, 1)
	assert.True(t, ws[0].OpenStart)
	assert.Equal(t, traceStart, ws[0].Start)
	assert.Equal(t, 30.0, ws[0].PeakAltDeg)
	assert.Nil(t, CurrentWindow(ws))
	assert.Nil(t, NextWindow(ws))
}

func TestWindows_NeverAbove(t *testing.T) {
	assert.Empty(t, Windows(hourlyTrace(-5, -1, -3), 0, traceStart))
	assert.Empty(t, Windows(&Trace{}, 0, traceStart))
}

func TestInterpolateCrossing(t *testing.T) {
	t1 := traceStart
	t2 := traceStart.Add(time.Hour)

	tests := []struct {
		name       string
		alt1, alt2 float64
		want       time.Time
	}{
		{"midpoint", 0, 10, t1.Add(30 * time.Minute)},
		{"descending", 10, 0, t1.Add(30 * time.Minute)},
		{"quarter", 4, 8, t1.Add(15 * time.Minute)},
		{"flat", 5, 5, t1},
		{"threshold outside clamps", 6, 8, t1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, interpolateCrossing(t1, t2, tt.alt1, tt.alt2, 5))
		})
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "PAST", StatusPast.String())
	assert.Equal(t, "NOW", StatusNow.String())
	assert.Equal(t, "NEXT", StatusNext.String())
	assert.Equal(t, "FUTURE", StatusFuture.String())
	assert.Equal(t, "?", Status(9).String())
}

func TestWindows_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		alts := rapid.SliceOfN(rapid.Float64Range(-90, 90), 1, 60).Draw(rt, "alts")
		minAlt := rapid.Float64Range(-10, 60).Draw(rt, "min_alt")
		now := hour(rapid.Float64Range(-5, 65).Draw(rt, "now"))

		ws := Windows(hourlyTrace(alts...), minAlt, now)

		next := 0
		for i, w := range ws {
			if w.Start.After(w.Peak) || w.Peak.After(w.End) {
				rt.Fatalf("window %d out of order: %v %v %v", i, w.Start, w.Peak, w.End)
			}
			if w.PeakAltDeg < minAlt {
				rt.Fatalf("window %d peak %v below %v", i, w.PeakAltDeg, minAlt)
			}
			if i > 0 && w.Start.Before(ws[i-1].End) {
				rt.Fatalf("window %d overlaps previous", i)
			}
			if w.Status == StatusNext {
				next++
			}
		}
		if next > 1 {
			rt.Fatalf("%d windows marked NEXT", next)
		}
	})
}
