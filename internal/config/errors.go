package config

import "fmt"

// ConfigError reports a problem with the command line, the font, or the
// embedded theme. It is always fatal.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
