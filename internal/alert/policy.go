// Package alert decides when a low-battery popup is shown and which tier it uses.
package alert

import "github.com/cptspacemanspiff/battery-alert/internal/collector"

// Charge thresholds in percent.
const (
	Low      = 20
	Critical = 10
)

// Decision is the outcome of evaluating one reading.
type Decision int

const (
	Suppress Decision = iota
	ShowLow
	ShowCritical
)

func (d Decision) String() string {
	switch d {
	case Suppress:
		return "suppress"
	case ShowLow:
		return "show-low"
	case ShowCritical:
		return "show-critical"
	default:
		return "unknown"
	}
}

// Tier summarizes which latches are set.
type Tier int

const (
	Idle Tier = iota
	LowShown
	CriticalShown
)

func (t Tier) String() string {
	switch t {
	case Idle:
		return "idle"
	case LowShown:
		return "low-shown"
	case CriticalShown:
		return "critical-shown"
	default:
		return "unknown"
	}
}

// State is owned by the poll loop and passed explicitly to each evaluation.
// The zero value is ready to use.
type State struct {
	HasShownLow      bool
	HasShownCritical bool

	// CriticalConfirmed is sticky for the lifetime of one popup session.
	CriticalConfirmed bool
}

// Decide evaluates r against the latches. A charging reading clears both
// latches. Decide never sets a latch; see Apply and BeginSession.
//
// An unknown level (-1) compares below Critical and is shown as critical.
func (s *State) Decide(r collector.Reading) Decision {
	if r.IsCharging {
		s.HasShownLow = false
		s.HasShownCritical = false
		return Suppress
	}
	if s.HasShownCritical {
		return Suppress
	}
	if s.HasShownLow && r.Level > Critical {
		return Suppress
	}
	if r.Level > Critical {
		if r.Level > Low {
			return Suppress
		}
		return ShowLow
	}
	return ShowCritical
}

// Apply records that a popup for d was shown.
func (s *State) Apply(d Decision) {
	switch d {
	case ShowLow:
		s.HasShownLow = true
	case ShowCritical:
		s.HasShownCritical = true
	}
}

// BeginSession resets the session flag and records the tier of the reading
// that opened the popup, before any frame is drawn. Any popup counts as the
// low alert having been shown.
func (s *State) BeginSession(r collector.Reading) {
	s.CriticalConfirmed = false
	s.Apply(ShowLow)
	if r.Level <= Critical {
		s.Apply(ShowCritical)
		s.CriticalConfirmed = true
	}
}

// Observe latches CriticalConfirmed once a reading in the current session is
// at or below Critical. It reports the latched value.
func (s *State) Observe(r collector.Reading) bool {
	if r.Level <= Critical {
		s.CriticalConfirmed = true
	}
	return s.CriticalConfirmed
}

// Tier reports the latch state as a single value.
func (s State) Tier() Tier {
	switch {
	case s.HasShownCritical:
		return CriticalShown
	case s.HasShownLow:
		return LowShown
	default:
		return Idle
	}
}
