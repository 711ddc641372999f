package popup

import (
	"image/color"

	"github.com/cptspacemanspiff/battery-alert/internal/config"
)

// Layout is the fixed geometry and palette of the alert window.
type Layout struct {
	Width, Height int
	WindowTitle   string

	Hibernate Rect
	Dismiss   Rect
	Radius    float64
	LabelY    float64

	TitleAt   Point
	BodyAt    Point
	TitleSize float64
	BodySize  float64

	Background  color.NRGBA
	Text        color.NRGBA
	Button      color.NRGBA
	ButtonHover color.NRGBA

	// Filled in by the session once the body font is measured.
	HibernateLabelAt Point
	DismissLabelAt   Point
}

// NewLayout builds a Layout from a validated config.
func NewLayout(cfg *config.Config) (Layout, error) {
	l := Layout{
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		WindowTitle: cfg.Window.Title,
		Hibernate:   rectFromConfig(cfg.Buttons.Hibernate),
		Dismiss:     rectFromConfig(cfg.Buttons.Dismiss),
		Radius:      cfg.Buttons.Radius,
		LabelY:      cfg.Buttons.LabelY,
		TitleAt:     Point{X: cfg.Text.TitleX, Y: cfg.Text.TitleY},
		BodyAt:      Point{X: cfg.Text.BodyX, Y: cfg.Text.BodyY},
		TitleSize:   float64(cfg.Fonts.TitleSize),
		BodySize:    float64(cfg.Fonts.BodySize),
	}

	var err error
	for _, c := range []struct {
		dst *color.NRGBA
		hex string
	}{
		{&l.Background, cfg.Colors.Background},
		{&l.Text, cfg.Colors.Text},
		{&l.Button, cfg.Colors.Button},
		{&l.ButtonHover, cfg.Colors.ButtonHover},
	} {
		if *c.dst, err = config.ParseColor(c.hex); err != nil {
			return Layout{}, &config.ConfigError{Msg: "popup colors", Err: err}
		}
	}
	return l, nil
}

// placeLabels centers the button labels horizontally on their buttons.
func (l *Layout) placeLabels(hibernateWidth, dismissWidth float64) {
	l.HibernateLabelAt = Point{X: l.Hibernate.Center().X - hibernateWidth/2, Y: l.LabelY}
	l.DismissLabelAt = Point{X: l.Dismiss.Center().X - dismissWidth/2, Y: l.LabelY}
}

func rectFromConfig(r config.RectConfig) Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}
