package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"log/slog"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	minPollIntervalSeconds = 1
	maxPollIntervalSeconds = 60
	minWindowSize          = 100
	maxWindowSize          = 4096
	minFontSize            = 6
	maxFontSize            = 200
)

var logTopics = map[string]bool{
	"all":     true,
	"battery": true,
	"alert":   true,
	"popup":   true,
	"power":   true,
}

//go:embed defaults.toml
var embeddedTOML []byte

type Config struct {
	Poll    PollConfig    `toml:"poll"`
	Window  WindowConfig  `toml:"window"`
	Fonts   FontConfig    `toml:"fonts"`
	Colors  ColorConfig   `toml:"colors"`
	Buttons ButtonConfig  `toml:"buttons"`
	Text    TextConfig    `toml:"text"`
	Logging LoggingConfig `toml:"logging"`
}

type PollConfig struct {
	IntervalSeconds int `toml:"interval_seconds"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type FontConfig struct {
	TitleSize int `toml:"title_size"`
	BodySize  int `toml:"body_size"`
}

type ColorConfig struct {
	Background  string `toml:"background"`
	Text        string `toml:"text"`
	Button      string `toml:"button"`
	ButtonHover string `toml:"button_hover"`
}

type RectConfig struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type ButtonConfig struct {
	Hibernate RectConfig `toml:"hibernate"`
	Dismiss   RectConfig `toml:"dismiss"`
	Radius    float64    `toml:"radius"`
	LabelY    float64    `toml:"label_y"`
}

type TextConfig struct {
	TitleX float64 `toml:"title_x"`
	TitleY float64 `toml:"title_y"`
	BodyX  float64 `toml:"body_x"`
	BodyY  float64 `toml:"body_y"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`
	Topics []string `toml:"topics"`
}

func DefaultConfig() *Config {
	return &Config{
		Poll: PollConfig{IntervalSeconds: 1},
		Window: WindowConfig{
			Width:  480,
			Height: 160,
			Title:  "Low battery alert",
		},
		Fonts: FontConfig{TitleSize: 28, BodySize: 20},
		Colors: ColorConfig{
			Background:  "#000000",
			Text:        "#ffffff",
			Button:      "#121212",
			ButtonHover: "#262626",
		},
		Buttons: ButtonConfig{
			Hibernate: RectConfig{X: 15, Y: 100, Width: 220, Height: 40},
			Dismiss:   RectConfig{X: 245, Y: 100, Width: 220, Height: 40},
			Radius:    20,
			LabelY:    110,
		},
		Text: TextConfig{TitleX: 18, TitleY: 18, BodyX: 18, BodyY: 52},
		Logging: LoggingConfig{
			Level:  "info",
			Topics: []string{"all"},
		},
	}
}

// Embedded returns the theme compiled into the binary.
func Embedded() (*Config, error) {
	cfg, err := Decode(embeddedTOML)
	if err != nil {
		return nil, &ConfigError{Msg: "load embedded config", Err: err}
	}
	return cfg, nil
}

// Decode overlays TOML data on DefaultConfig and validates the result.
func Decode(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return NormalizeAndValidate(cfg)
}

func NormalizeAndValidate(cfg *Config) (*Config, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}

	sanitized := *cfg
	sanitized.Window.Title = strings.TrimSpace(sanitized.Window.Title)
	sanitized.Logging.Level = strings.ToLower(strings.TrimSpace(sanitized.Logging.Level))

	if err := validateRange("poll.interval_seconds", sanitized.Poll.IntervalSeconds, minPollIntervalSeconds, maxPollIntervalSeconds); err != nil {
		return nil, err
	}
	if err := validateRange("window.width", sanitized.Window.Width, minWindowSize, maxWindowSize); err != nil {
		return nil, err
	}
	if err := validateRange("window.height", sanitized.Window.Height, minWindowSize, maxWindowSize); err != nil {
		return nil, err
	}
	if sanitized.Window.Title == "" {
		return nil, fmt.Errorf("window.title must not be empty")
	}
	if err := validateRange("fonts.title_size", sanitized.Fonts.TitleSize, minFontSize, maxFontSize); err != nil {
		return nil, err
	}
	if err := validateRange("fonts.body_size", sanitized.Fonts.BodySize, minFontSize, maxFontSize); err != nil {
		return nil, err
	}

	for _, c := range []struct{ name, value string }{
		{"colors.background", sanitized.Colors.Background},
		{"colors.text", sanitized.Colors.Text},
		{"colors.button", sanitized.Colors.Button},
		{"colors.button_hover", sanitized.Colors.ButtonHover},
	} {
		if _, err := ParseColor(c.value); err != nil {
			return nil, fmt.Errorf("%s: %w", c.name, err)
		}
	}

	if err := validateRect("buttons.hibernate", sanitized.Buttons.Hibernate, sanitized.Window); err != nil {
		return nil, err
	}
	if err := validateRect("buttons.dismiss", sanitized.Buttons.Dismiss, sanitized.Window); err != nil {
		return nil, err
	}
	if sanitized.Buttons.Radius < 0 {
		return nil, fmt.Errorf("buttons.radius must not be negative, got %g", sanitized.Buttons.Radius)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(sanitized.Logging.Level)); err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}
	topics := make([]string, 0, len(sanitized.Logging.Topics))
	for _, t := range sanitized.Logging.Topics {
		t = strings.ToLower(strings.TrimSpace(t))
		if !logTopics[t] {
			return nil, fmt.Errorf("logging.topics: unknown topic %q", t)
		}
		topics = append(topics, t)
	}
	sanitized.Logging.Topics = topics

	return &sanitized, nil
}

// Interval returns the battery poll interval.
func (c PollConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// SlogLevel returns the validated log level.
func (c LoggingConfig) SlogLevel() slog.Level {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.Level))
	return level
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	c := color.NRGBA{A: 0xff}
	var err error
	switch len(s) {
	case 6:
		_, err = fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(s, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		return c, fmt.Errorf("invalid color %q: want #rrggbb or #rrggbbaa", "#"+s)
	}
	if err != nil {
		return c, fmt.Errorf("invalid color %q: %w", "#"+s, err)
	}
	return c, nil
}

func validateRange(name string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("%s must be between %d and %d, got %d", name, min, max, value)
	}

	return nil
}

func validateRect(name string, r RectConfig, win WindowConfig) error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%s must have a positive size", name)
	}
	if r.X < 0 || r.Y < 0 || r.X+r.Width > float64(win.Width) || r.Y+r.Height > float64(win.Height) {
		return fmt.Errorf("%s must fit inside the %dx%d window", name, win.Width, win.Height)
	}
	return nil
}
