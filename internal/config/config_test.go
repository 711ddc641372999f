package config

import (
	"image/color"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Poll.IntervalSeconds != 1 {
		t.Fatalf("unexpected IntervalSeconds: %d", cfg.Poll.IntervalSeconds)
	}
	if cfg.Window.Width != 480 || cfg.Window.Height != 160 {
		t.Fatalf("unexpected window size: %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Fonts.TitleSize != 28 || cfg.Fonts.BodySize != 20 {
		t.Fatalf("unexpected font sizes: %d/%d", cfg.Fonts.TitleSize, cfg.Fonts.BodySize)
	}
	if cfg.Buttons.Hibernate != (RectConfig{X: 15, Y: 100, Width: 220, Height: 40}) {
		t.Fatalf("unexpected hibernate button: %+v", cfg.Buttons.Hibernate)
	}
	if cfg.Buttons.Dismiss != (RectConfig{X: 245, Y: 100, Width: 220, Height: 40}) {
		t.Fatalf("unexpected dismiss button: %+v", cfg.Buttons.Dismiss)
	}
}

func TestEmbedded_MatchesDefaults(t *testing.T) {
	cfg, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Fatalf("Embedded() = %+v, want DefaultConfig()", cfg)
	}
	if got := cfg.Poll.Interval(); got != time.Second {
		t.Fatalf("Interval() = %v, want 1s", got)
	}
	if got := cfg.Logging.SlogLevel(); got != slog.LevelInfo {
		t.Fatalf("SlogLevel() = %v, want info", got)
	}
}

func TestDecode_OverridesAndKeepsDefaults(t *testing.T) {
	cfg, err := Decode([]byte(`
[window]
title = "  Battery  "

[colors]
button = "#336699"

[logging]
level = "DEBUG"
topics = ["Popup", "power"]
`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if cfg.Window.Title != "Battery" {
		t.Fatalf("Title = %q, want trimmed Battery", cfg.Window.Title)
	}
	if cfg.Window.Width != 480 {
		t.Fatalf("Width = %d, want default 480", cfg.Window.Width)
	}
	if cfg.Colors.Button != "#336699" {
		t.Fatalf("Button = %q, want #336699", cfg.Colors.Button)
	}
	if cfg.Colors.ButtonHover != "#262626" {
		t.Fatalf("ButtonHover = %q, want default", cfg.Colors.ButtonHover)
	}
	if cfg.Logging.SlogLevel() != slog.LevelDebug {
		t.Fatalf("SlogLevel() = %v, want debug", cfg.Logging.SlogLevel())
	}
	if !reflect.DeepEqual(cfg.Logging.Topics, []string{"popup", "power"}) {
		t.Fatalf("Topics = %v, want [popup power]", cfg.Logging.Topics)
	}
}

func TestDecode_InvalidTOML(t *testing.T) {
	if _, err := Decode([]byte("not = [valid")); err == nil {
		t.Fatal("Decode() error = nil, want TOML parse error")
	}
}

func TestDecode_ValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		contents   string
		wantErrSub string
	}{
		{
			name:       "interval too small",
			contents:   "[poll]\ninterval_seconds = 0\n",
			wantErrSub: "poll.interval_seconds must be between 1 and 60",
		},
		{
			name:       "window too narrow",
			contents:   "[window]\nwidth = 10\n",
			wantErrSub: "window.width must be between",
		},
		{
			name:       "empty title",
			contents:   "[window]\ntitle = \"   \"\n",
			wantErrSub: "window.title must not be empty",
		},
		{
			name:       "font too large",
			contents:   "[fonts]\nbody_size = 999\n",
			wantErrSub: "fonts.body_size must be between",
		},
		{
			name:       "bad color",
			contents:   "[colors]\ntext = \"white\"\n",
			wantErrSub: "colors.text",
		},
		{
			name:       "button outside window",
			contents:   "[buttons.dismiss]\nx = 400.0\n",
			wantErrSub: "buttons.dismiss must fit inside the 480x160 window",
		},
		{
			name:       "button without size",
			contents:   "[buttons.hibernate]\nwidth = 0.0\n",
			wantErrSub: "buttons.hibernate must have a positive size",
		},
		{
			name:       "negative radius",
			contents:   "[buttons]\nradius = -1.0\n",
			wantErrSub: "buttons.radius must not be negative",
		},
		{
			name:       "bad level",
			contents:   "[logging]\nlevel = \"loud\"\n",
			wantErrSub: "logging.level",
		},
		{
			name:       "bad topic",
			contents:   "[logging]\ntopics = [\"disk\"]\n",
			wantErrSub: `unknown topic "disk"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.contents))
			if err == nil {
				t.Fatalf("Decode() error = nil, want error containing %q", tt.wantErrSub)
			}
			if !strings.Contains(err.Error(), tt.wantErrSub) {
				t.Fatalf("Decode() error = %q, want contains %q", err.Error(), tt.wantErrSub)
			}
		})
	}
}

func TestNormalizeAndValidate_Nil(t *testing.T) {
	if _, err := NormalizeAndValidate(nil); err == nil {
		t.Fatal("NormalizeAndValidate(nil) error = nil, want error")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#121212", want: color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xff}},
		{in: "262626", want: color.NRGBA{R: 0x26, G: 0x26, B: 0x26, A: 0xff}},
		{in: "#ff000080", want: color.NRGBA{R: 0xff, A: 0x80}},
		{in: "#fff", wantErr: true},
		{in: "#gg0000", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseColor(%q) error = nil, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
