package plan

import "time"

// Status classifies a window relative to the current time.
type Status int

const (
	StatusPast   Status = iota // Window has ended
	StatusNow                  // Currently in progress
	StatusNext                 // Next upcoming window
	StatusFuture               // Future window (not next)
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusPast:
		return "PAST"
	case StatusNow:
		return "NOW"
	case StatusNext:
		return "NEXT"
	case StatusFuture:
		return "FUTURE"
	default:
		return "?"
	}
}

// Window is a contiguous interval during which a target stays at or above
// a minimum altitude.
type Window struct {
	Start      time.Time
	Peak       time.Time
	End        time.Time
	PeakAltDeg float64
	OpenStart  bool // already above the threshold when the trace began
	OpenEnd    bool // still above the threshold when the trace ended
	Status     Status
}

// Duration returns the length of the window.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Windows finds the intervals of tr at or above minAlt degrees. Crossings
// are linearly interpolated between samples. Windows are in time order and
// classified against now.
func Windows(tr *Trace, minAlt float64, now time.Time) []Window {
	samples := tr.Samples
	var windows []Window
	inWindow := false
	var cur Window

	for i, s := range samples {
		above := s.AltDeg >= minAlt

		if !inWindow && above {
			inWindow = true
			cur = Window{
				Start:      s.Time,
				Peak:       s.Time,
				PeakAltDeg: s.AltDeg,
				OpenStart:  i == 0,
			}
			if i > 0 {
				prev := samples[i-1]
				cur.Start = interpolateCrossing(prev.Time, s.Time, prev.AltDeg, s.AltDeg, minAlt)
			}
		}

		if !inWindow {
			continue
		}

		if above {
			if s.AltDeg > cur.PeakAltDeg {
				cur.PeakAltDeg = s.AltDeg
				cur.Peak = s.Time
			}
			continue
		}

		prev := samples[i-1]
		cur.End = interpolateCrossing(prev.Time, s.Time, prev.AltDeg, s.AltDeg, minAlt)
		windows = append(windows, cur)
		inWindow = false
	}

	// Window that extends to the end of the trace
	if inWindow {
		cur.End = samples[len(samples)-1].Time
		cur.OpenEnd = true
		windows = append(windows, cur)
	}

	classifyWindows(windows, now)
	return windows
}

// interpolateCrossing finds the time when altitude crosses a threshold.
func interpolateCrossing(t1, t2 time.Time, alt1, alt2, threshold float64) time.Time {
	if alt2 == alt1 {
		return t1
	}
	fraction := (threshold - alt1) / (alt2 - alt1)
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}
	dt := t2.Sub(t1)
	return t1.Add(time.Duration(float64(dt) * fraction))
}

// classifyWindows assigns a status to each window based on current time.
func classifyWindows(windows []Window, now time.Time) {
	foundNext := false

	for i := range windows {
		w := &windows[i]

		switch {
		case now.After(w.End):
			w.Status = StatusPast
		case !now.Before(w.Start):
			w.Status = StatusNow
		case !foundNext:
			w.Status = StatusNext
			foundNext = true
		default:
			w.Status = StatusFuture
		}
	}
}

// CurrentWindow returns the window in progress, or nil.
func CurrentWindow(windows []Window) *Window {
	for i := range windows {
		if windows[i].Status == StatusNow {
			return &windows[i]
		}
	}
	return nil
}

// NextWindow returns the next upcoming window, or nil.
func NextWindow(windows []Window) *Window {
	for i := range windows {
		if windows[i].Status == StatusNext {
			return &windows[i]
		}
	}
	return nil
}
