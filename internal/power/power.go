// Package power asks the operating system to hibernate.
package power

import (
	"context"
	"fmt"
	"log/slog"

	godbus "github.com/godbus/dbus/v5"
)

// Hibernator puts the machine into hibernation.
type Hibernator interface {
	Hibernate(ctx context.Context) error
}

// HibernateError reports that the hibernate facility did not report success.
// Status is what the facility said: a logind answer, a D-Bus error name or
// a process exit status.
type HibernateError struct {
	Status string
	Output string
	Err    error
}

func (e *HibernateError) Error() string {
	msg := fmt.Sprintf("hibernate failed: %s", e.Status)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

func (e *HibernateError) Unwrap() error {
	return e.Err
}

// New returns a logind Hibernator when the system bus is reachable and a
// systemctl one otherwise.
func New(logger *slog.Logger) Hibernator {
	conn, err := godbus.SystemBus()
	if err != nil {
		logger.Warn("system bus unavailable, hibernating via systemctl", "err", err)
		return Systemctl{Logger: logger}
	}
	return NewLogind(conn, logger)
}
