// Package state provides thread-safe state management for the watch view.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-skyplan/internal/plan"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventRise      EventType = "RISE"      // climbed to the minimum altitude
	EventSet       EventType = "SET"       // dropped below the minimum altitude
	EventCulminate EventType = "CULMINATE" // stopped climbing while above the horizon
)

// Event represents a change in a target's visibility between surveys.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Target    string    `json:"target"`
	AltDeg    float64   `json:"alt_deg"`
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Current state
	current        *plan.Survey
	lastUpdate     time.Time
	lastError      error
	updateDuration time.Duration

	// Previous altitudes for event detection
	prevAlt map[string]float64
	rising  map[string]bool

	// Per-target altitude history
	history    map[string][]TimeSeries
	maxHistory int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistory      int
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistory:      120, // 1 hour at 30s refresh
		MaxEvents:       50,
		RefreshInterval: 30 * time.Second,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		maxHistory:      cfg.MaxHistory,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		prevAlt:         make(map[string]float64),
		rising:          make(map[string]bool),
		history:         make(map[string][]TimeSeries),
	}
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	return m.refreshInterval
}

// HasData reports whether a survey has been stored.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}

// Update atomically stores a new survey. A nil survey only records the
// error, keeping the previous survey.
func (m *Manager) Update(s *plan.Survey, d time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastUpdate = time.Now()
	m.lastError = err
	m.updateDuration = d

	if s == nil {
		return
	}

	m.detectEvents(s)
	m.current = s

	for _, r := range s.Reports {
		h := append(m.history[r.Name], TimeSeries{Timestamp: s.Time, Value: r.Position.AltDeg})
		if m.maxHistory > 0 && len(h) > m.maxHistory {
			h = h[len(h)-m.maxHistory:]
		}
		m.history[r.Name] = h
	}
}

// detectEvents compares the new survey with the previous altitudes.
func (m *Manager) detectEvents(s *plan.Survey) {
	minAlt := s.MinAltitude

	for _, r := range s.Reports {
		alt := r.Position.AltDeg
		prev, seen := m.prevAlt[r.Name]
		m.prevAlt[r.Name] = alt
		if !seen {
			continue
		}

		switch {
		case prev < minAlt && alt >= minAlt:
			m.addEvent(Event{Type: EventRise, Timestamp: s.Time, Target: r.Name, AltDeg: alt})
		case prev >= minAlt && alt < minAlt:
			m.addEvent(Event{Type: EventSet, Timestamp: s.Time, Target: r.Name, AltDeg: alt})
		}

		wasRising, known := m.rising[r.Name]
		if alt == prev {
			continue
		}
		nowRising := alt > prev
		m.rising[r.Name] = nowRising
		if known && wasRising && !nowRising && prev > 0 {
			m.addEvent(Event{Type: EventCulminate, Timestamp: s.Time, Target: r.Name, AltDeg: prev})
		}
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Survey         *plan.Survey
	LastUpdate     time.Time
	LastError      error
	UpdateDuration time.Duration
	Events         []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Survey:         m.current,
		LastUpdate:     m.lastUpdate,
		LastError:      m.lastError,
		UpdateDuration: m.updateDuration,
		Events:         m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		result[i] = m.events[(m.eventWriteAt+i)%m.maxEvents]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// AltitudeHistory returns a copy of the altitude history for a target.
func (m *Manager) AltitudeHistory(target string) []TimeSeries {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.history[target]
	if !ok {
		return nil
	}
	out := make([]TimeSeries, len(h))
	copy(out, h)
	return out
}
