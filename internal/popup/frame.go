package popup

import (
	"fmt"
	"image/color"

	"github.com/cptspacemanspiff/battery-alert/internal/collector"
)

// Button labels and titles shown in the popup.
const (
	HibernateLabel = "Hibernate"
	DismissLabel   = "Got it"

	TitleLow      = "Battery low"
	TitleCritical = "Battery critically low"
)

// Action is how a session ended.
type Action int

const (
	None Action = iota
	Dismiss
	Hibernate
	ExternalClose
	ChargingResumed
)

func (a Action) String() string {
	switch a {
	case None:
		return "none"
	case Dismiss:
		return "dismiss"
	case Hibernate:
		return "hibernate"
	case ExternalClose:
		return "external-close"
	case ChargingResumed:
		return "charging-resumed"
	default:
		return "unknown"
	}
}

// Input is the pointer state sampled once per frame. PrimaryDown is the
// level of the primary button, not a click edge.
type Input struct {
	Cursor      Point
	PrimaryDown bool
}

// Interrupt returns the action that ends a session before anything is drawn,
// or None.
func Interrupt(closeRequested bool, r collector.Reading) Action {
	switch {
	case closeRequested:
		return ExternalClose
	case r.IsCharging:
		return ChargingResumed
	default:
		return None
	}
}

// Resolve maps one frame of input to an action. Hibernate is only reachable
// once the session is confirmed critical.
func Resolve(l Layout, in Input, critical bool) Action {
	if !in.PrimaryDown {
		return None
	}
	if critical && l.Hibernate.Contains(in.Cursor) {
		return Hibernate
	}
	if l.Dismiss.Contains(in.Cursor) {
		return Dismiss
	}
	return None
}

// Button is one button as it should be drawn this frame.
type Button struct {
	Label   string
	Rect    Rect
	LabelAt Point
	Fill    color.NRGBA
	Hovered bool
}

// Frame is everything drawn in one frame.
type Frame struct {
	Title   string
	Body    string
	Buttons []Button
}

// Compose describes the frame for reading r.
func Compose(l Layout, r collector.Reading, critical bool, cursor Point) Frame {
	f := Frame{
		Title: TitleLow,
		Body:  fmt.Sprintf("Battery at %d%%. You might want to plug in your PC", r.Level),
	}
	if critical {
		f.Title = TitleCritical
		f.Buttons = append(f.Buttons, l.button(HibernateLabel, l.Hibernate, l.HibernateLabelAt, cursor))
	}
	f.Buttons = append(f.Buttons, l.button(DismissLabel, l.Dismiss, l.DismissLabelAt, cursor))
	return f
}

func (l Layout) button(label string, rect Rect, at, cursor Point) Button {
	b := Button{Label: label, Rect: rect, LabelAt: at, Fill: l.Button}
	if rect.Contains(cursor) {
		b.Hovered = true
		b.Fill = l.ButtonHover
	}
	return b
}
