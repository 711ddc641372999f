// Package agent runs the battery poll loop and dispatches popup outcomes.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cptspacemanspiff/battery-alert/internal/alert"
	"github.com/cptspacemanspiff/battery-alert/internal/collector"
	"github.com/cptspacemanspiff/battery-alert/internal/popup"
	"github.com/cptspacemanspiff/battery-alert/internal/power"
)

// Options wires the agent to its collaborators.
type Options struct {
	Reader     popup.BatteryReader
	Open       popup.Opener
	Hibernator power.Hibernator
	Layout     popup.Layout
	FontPath   string
	Interval   time.Duration
	Logger     *slog.Logger

	// Resumed, when set, triggers an immediate poll after the system wakes.
	Resumed <-chan struct{}
}

// Agent owns the alert latches for the lifetime of the process.
type Agent struct {
	opts  Options
	state alert.State

	batteryLog *slog.Logger
	alertLog   *slog.Logger
	popupLog   *slog.Logger
	powerLog   *slog.Logger
}

func New(opts Options) (*Agent, error) {
	if opts.Reader == nil || opts.Open == nil || opts.Hibernator == nil {
		return nil, errors.New("agent: Reader, Open and Hibernator are required")
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{
		opts:       opts,
		batteryLog: logger.With("topic", "battery"),
		alertLog:   logger.With("topic", "alert"),
		popupLog:   logger.With("topic", "popup"),
		powerLog:   logger.With("topic", "power"),
	}, nil
}

// State returns a copy of the current latches.
func (a *Agent) State() alert.State {
	return a.state
}

// Run waits one interval, reads the battery and evaluates it, forever. A
// wake-up from sleep cuts the wait short. Run returns nil when ctx is
// cancelled and the first error otherwise; every error is fatal.
func (a *Agent) Run(ctx context.Context) error {
	timer := time.NewTimer(a.opts.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			a.alertLog.Info("shutting down")
			return nil
		case <-timer.C:
		case <-a.opts.Resumed:
			a.batteryLog.Info("resumed from sleep, polling now")
			timer.Stop()
		}

		r, err := a.opts.Reader.ReadBattery()
		if err != nil {
			return fmt.Errorf("read battery: %w", err)
		}
		if err := a.Step(ctx, r); err != nil {
			return err
		}
		timer.Reset(a.opts.Interval)
	}
}

// Step evaluates one reading and, when an alert is due, runs the popup to
// completion and executes the chosen action.
func (a *Agent) Step(ctx context.Context, r collector.Reading) error {
	a.batteryLog.Debug("sample", "level", r.Level, "charging", r.IsCharging)

	before := a.state.Tier()
	d := a.state.Decide(r)
	if after := a.state.Tier(); after != before {
		a.alertLog.Info("latches reset", "from", before, "level", r.Level)
	}
	if d == alert.Suppress {
		return nil
	}

	if !r.Known() {
		a.alertLog.Warn("battery level unknown, alerting as critical")
	}
	a.alertLog.Info("alert due", "decision", d, "level", r.Level, "tier", before)

	action, err := popup.Run(ctx, popup.Options{
		Open:     a.opts.Open,
		Reader:   a.opts.Reader,
		State:    &a.state,
		Layout:   a.opts.Layout,
		FontPath: a.opts.FontPath,
		Logger:   a.popupLog,
		Reading:  r,
	})
	if err != nil {
		return fmt.Errorf("popup: %w", err)
	}
	return a.execute(ctx, action)
}

func (a *Agent) execute(ctx context.Context, action popup.Action) error {
	switch action {
	case popup.Hibernate:
		a.powerLog.Info("hibernating")
		if err := a.opts.Hibernator.Hibernate(ctx); err != nil {
			return fmt.Errorf("hibernate: %w", err)
		}
	case popup.Dismiss, popup.ExternalClose, popup.ChargingResumed:
		a.alertLog.Debug("popup finished", "action", action, "tier", a.state.Tier())
	}
	return nil
}
