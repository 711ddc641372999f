package alert

import (
	"testing"

	"github.com/cptspacemanspiff/battery-alert/internal/collector"
)

func discharging(level int) collector.Reading {
	return collector.Reading{Level: level}
}

func charging(level int) collector.Reading {
	return collector.Reading{Level: level, IsCharging: true}
}

// show runs Decide and, like the agent, applies anything that is not Suppress.
func show(s *State, r collector.Reading) Decision {
	d := s.Decide(r)
	if d != Suppress {
		s.BeginSession(r)
	}
	return d
}

func TestDecide_ChargingAlwaysSuppressesAndResets(t *testing.T) {
	for _, level := range []int{collector.UnknownLevel, 0, 5, Critical, 15, Low, 50, 100} {
		s := &State{HasShownLow: true, HasShownCritical: true}
		if got := s.Decide(charging(level)); got != Suppress {
			t.Fatalf("Decide(charging %d) = %v, want suppress", level, got)
		}
		if s.HasShownLow || s.HasShownCritical {
			t.Fatalf("latches after charging %d = low:%v critical:%v, want both cleared", level, s.HasShownLow, s.HasShownCritical)
		}
	}
}

func TestDecide_Rules(t *testing.T) {
	tests := []struct {
		name  string
		state State
		level int
		want  Decision
	}{
		{name: "above low", level: 21, want: Suppress},
		{name: "full", level: 100, want: Suppress},
		{name: "at low", level: Low, want: ShowLow},
		{name: "between thresholds", level: 15, want: ShowLow},
		{name: "just above critical", level: Critical + 1, want: ShowLow},
		{name: "at critical", level: Critical, want: ShowCritical},
		{name: "empty", level: 0, want: ShowCritical},
		{name: "unknown is critical", level: collector.UnknownLevel, want: ShowCritical},
		{name: "low latched between thresholds", state: State{HasShownLow: true}, level: 15, want: Suppress},
		{name: "low latched at critical", state: State{HasShownLow: true}, level: Critical, want: ShowCritical},
		{name: "critical latched below critical", state: State{HasShownCritical: true}, level: 3, want: Suppress},
		{name: "critical latched between thresholds", state: State{HasShownCritical: true}, level: 15, want: Suppress},
		{name: "critical latched unknown", state: State{HasShownCritical: true}, level: collector.UnknownLevel, want: Suppress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.state
			if got := s.Decide(discharging(tt.level)); got != tt.want {
				t.Fatalf("Decide(%d) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestDecide_LowLatchesAfterShow(t *testing.T) {
	var s State
	if got := show(&s, discharging(15)); got != ShowLow {
		t.Fatalf("first Decide = %v, want show-low", got)
	}
	if !s.HasShownLow {
		t.Fatal("HasShownLow = false after show-low, want true")
	}
	if s.HasShownCritical {
		t.Fatal("HasShownCritical = true after show-low, want false")
	}
}

func TestDecide_IdempotentAfterLatch(t *testing.T) {
	for _, level := range []int{collector.UnknownLevel, 4, Critical, 12, Low} {
		var s State
		if got := show(&s, discharging(level)); got == Suppress {
			t.Fatalf("first Decide(%d) = suppress, want a popup", level)
		}
		if got := s.Decide(discharging(level)); got != Suppress {
			t.Fatalf("second Decide(%d) = %v, want suppress", level, got)
		}
	}
}

func TestDecide_CriticalNotReshownWhenLevelRises(t *testing.T) {
	var s State
	if got := show(&s, discharging(8)); got != ShowCritical {
		t.Fatalf("Decide(8) = %v, want show-critical", got)
	}
	for _, level := range []int{11, 15, Low, 9} {
		if got := s.Decide(discharging(level)); got != Suppress {
			t.Fatalf("Decide(%d) after critical = %v, want suppress", level, got)
		}
	}
}

func TestDecide_ChargeCycleRetriggersCritical(t *testing.T) {
	var s State
	seq := []struct {
		r    collector.Reading
		want Decision
	}{
		{discharging(5), ShowCritical},
		{charging(5), Suppress},
		{discharging(5), ShowCritical},
	}
	for i, step := range seq {
		if got := show(&s, step.r); got != step.want {
			t.Fatalf("step %d: Decide(%+v) = %v, want %v", i, step.r, got, step.want)
		}
	}
}

func TestDecide_Scenario(t *testing.T) {
	var s State
	seq := []struct {
		r    collector.Reading
		want Decision
		tier Tier
	}{
		{discharging(15), ShowLow, LowShown},
		{discharging(15), Suppress, LowShown},
		{discharging(8), ShowCritical, CriticalShown},
		{charging(50), Suppress, Idle},
		{discharging(15), ShowLow, LowShown},
	}
	for i, step := range seq {
		if got := show(&s, step.r); got != step.want {
			t.Fatalf("step %d: Decide(%+v) = %v, want %v", i, step.r, got, step.want)
		}
		if got := s.Tier(); got != step.tier {
			t.Fatalf("step %d: Tier() = %v, want %v", i, got, step.tier)
		}
	}
}

func TestApply_TransitionTable(t *testing.T) {
	tests := []struct {
		name  string
		state State
		d     Decision
		want  Tier
	}{
		{"idle to low", State{}, ShowLow, LowShown},
		{"idle to critical", State{}, ShowCritical, CriticalShown},
		{"low to critical", State{HasShownLow: true}, ShowCritical, CriticalShown},
		{"critical stays on low", State{HasShownCritical: true}, ShowLow, CriticalShown},
		{"suppress keeps idle", State{}, Suppress, Idle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.state
			s.Apply(tt.d)
			if got := s.Tier(); got != tt.want {
				t.Fatalf("Tier() = %v, want %v", got, tt.want)
			}
		})
	}
}

func snapshot(s State) State { return s }

func TestTier_OnReturnedValue(t *testing.T) {
	live := State{HasShownLow: true}
	if got := snapshot(live).Tier(); got != LowShown {
		t.Fatalf("Tier() = %v, want %v", got, LowShown)
	}
	if got := (State{HasShownLow: true, HasShownCritical: true}).Tier(); got != CriticalShown {
		t.Fatalf("Tier() = %v, want %v", got, CriticalShown)
	}
	if got := (State{}).Tier(); got != Idle {
		t.Fatalf("Tier() = %v, want %v", got, Idle)
	}
}

func TestBeginSession(t *testing.T) {
	tests := []struct {
		name         string
		state        State
		level        int
		wantLow      bool
		wantCritical bool
		wantConfirm  bool
	}{
		{name: "low reading", level: 15, wantLow: true},
		{name: "critical reading", level: 7, wantLow: true, wantCritical: true, wantConfirm: true},
		{name: "unknown reading", level: collector.UnknownLevel, wantLow: true, wantCritical: true, wantConfirm: true},
		{name: "resets stale confirmation", state: State{CriticalConfirmed: true}, level: 18, wantLow: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.state
			s.BeginSession(discharging(tt.level))
			if s.HasShownLow != tt.wantLow || s.HasShownCritical != tt.wantCritical || s.CriticalConfirmed != tt.wantConfirm {
				t.Fatalf("BeginSession(%d) = %+v, want low:%v critical:%v confirmed:%v",
					tt.level, s, tt.wantLow, tt.wantCritical, tt.wantConfirm)
			}
		})
	}
}

func TestObserve_Sticky(t *testing.T) {
	var s State
	s.BeginSession(discharging(15))

	levels := []int{14, 12, 10, 11, 13, 19}
	want := []bool{false, false, true, true, true, true}
	for i, level := range levels {
		if got := s.Observe(discharging(level)); got != want[i] {
			t.Fatalf("Observe(%d) = %v, want %v", level, got, want[i])
		}
	}
}

func TestStrings(t *testing.T) {
	if got := ShowCritical.String(); got != "show-critical" {
		t.Fatalf("ShowCritical.String() = %q", got)
	}
	if got := Decision(42).String(); got != "unknown" {
		t.Fatalf("Decision(42).String() = %q", got)
	}
	if got := LowShown.String(); got != "low-shown" {
		t.Fatalf("LowShown.String() = %q", got)
	}
}
