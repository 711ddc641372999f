package power

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
)

// Systemctl hibernates by running "systemctl hibernate". Command and Args
// override the program for tests.
type Systemctl struct {
	Command string
	Args    []string
	Logger  *slog.Logger
}

func (s Systemctl) Hibernate(ctx context.Context) error {
	name, args := s.Command, s.Args
	if name == "" {
		name, args = "systemctl", []string{"hibernate"}
	}
	if s.Logger != nil {
		s.Logger.Info("requesting hibernate", "via", name)
	}

	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err == nil {
		return nil
	}
	output := strings.TrimSpace(string(out))
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &HibernateError{Status: exitErr.ProcessState.String(), Output: output, Err: err}
	}
	return &HibernateError{Status: "not started", Output: output, Err: err}
}
