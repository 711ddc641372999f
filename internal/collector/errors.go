package collector

import (
	"errors"
	"fmt"
)

// ErrNoBattery is wrapped by IOError when no BAT* power supply exists.
var ErrNoBattery = errors.New("no battery found")

// IOError reports that the power supply information could not be located or read.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
