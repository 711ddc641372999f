// Package popup runs the interactive low-battery alert window.
package popup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cptspacemanspiff/battery-alert/internal/alert"
	"github.com/cptspacemanspiff/battery-alert/internal/collector"
)

// BatteryReader is re-polled once per frame while the popup is open.
type BatteryReader interface {
	ReadBattery() (collector.Reading, error)
}

// Options configures a single popup session.
type Options struct {
	Open     Opener
	Reader   BatteryReader
	State    *alert.State
	Layout   Layout
	FontPath string
	Logger   *slog.Logger

	// Reading is the sample that triggered the popup.
	Reading collector.Reading
}

type session struct {
	win    Window
	layout Layout
	title  Font
	body   Font
	log    *slog.Logger
}

// Run opens the alert window and blocks, one iteration per displayed frame,
// until the user picks an action, the window is closed, charging resumes or
// ctx is cancelled. The fonts and the window are released on every return path.
func Run(ctx context.Context, opts Options) (action Action, err error) {
	if opts.Open == nil || opts.Reader == nil || opts.State == nil {
		return None, errors.New("popup: Open, Reader and State are required")
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	win, err := opts.Open(WindowOptions{
		Width:       opts.Layout.Width,
		Height:      opts.Layout.Height,
		Title:       opts.Layout.WindowTitle,
		Floating:    true,
		Undecorated: true,
		HighDPI:     true,
	})
	if err != nil {
		return None, fmt.Errorf("open window: %w", err)
	}
	defer func() {
		if cerr := win.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close window: %w", cerr)
		}
	}()

	s := &session{win: win, layout: opts.Layout, log: log}

	s.title, err = win.LoadFont(opts.FontPath, s.layout.TitleSize)
	if err != nil {
		return None, fmt.Errorf("load title font: %w", err)
	}
	defer win.UnloadFont(s.title)

	s.body, err = win.LoadFont(opts.FontPath, s.layout.BodySize)
	if err != nil {
		return None, fmt.Errorf("load body font: %w", err)
	}
	defer win.UnloadFont(s.body)

	s.layout.placeLabels(
		win.MeasureText(s.body, HibernateLabel).X,
		win.MeasureText(s.body, DismissLabel).X,
	)

	opts.State.BeginSession(opts.Reading)
	log.Info("popup opened", "level", opts.Reading.Level, "critical", opts.State.CriticalConfirmed)

	return s.loop(ctx, opts.Reader, opts.State, opts.Reading)
}

func (s *session) loop(ctx context.Context, reader BatteryReader, state *alert.State, reading collector.Reading) (Action, error) {
	for frames := 1; ; frames++ {
		closing := s.win.ShouldClose() || ctx.Err() != nil
		if action := Interrupt(closing, reading); action != None {
			s.log.Info("popup closed", "action", action, "frames", frames)
			return action, nil
		}

		wasCritical := state.CriticalConfirmed
		critical := state.Observe(reading)
		if critical && !wasCritical {
			s.log.Info("critical level confirmed", "level", reading.Level)
		}

		in := s.win.Input()
		s.win.BeginFrame()
		s.draw(Compose(s.layout, reading, critical, in.Cursor))
		action := Resolve(s.layout, in, critical)
		s.win.EndFrame()

		if action != None {
			s.log.Info("popup resolved", "action", action, "level", reading.Level, "frames", frames)
			return action, nil
		}

		next, err := reader.ReadBattery()
		if err != nil {
			return None, fmt.Errorf("refresh battery: %w", err)
		}
		if next != reading {
			s.log.Debug("reading changed", "level", next.Level, "charging", next.IsCharging)
		}
		reading = next
	}
}

func (s *session) draw(f Frame) {
	l := s.layout
	s.win.Clear(l.Background)
	s.win.DrawText(s.title, f.Title, l.TitleAt, l.Text)
	s.win.DrawText(s.body, f.Body, l.BodyAt, l.Text)
	for _, b := range f.Buttons {
		s.win.DrawRoundedRect(b.Rect, l.Radius, b.Fill)
		s.win.DrawText(s.body, b.Label, b.LabelAt, l.Text)
	}
}
