package power

import (
	"context"
	"errors"
	"log/slog"

	godbus "github.com/godbus/dbus/v5"
)

const (
	logindName  = "org.freedesktop.login1"
	logindPath  = "/org/freedesktop/login1"
	logindIface = "org.freedesktop.login1.Manager"
)

type busObject interface {
	CallWithContext(ctx context.Context, method string, flags godbus.Flags, args ...interface{}) *godbus.Call
}

// Logind hibernates through systemd-logind's Manager interface.
type Logind struct {
	obj busObject
	log *slog.Logger
}

// NewLogind binds to the logind manager object on conn.
func NewLogind(conn *godbus.Conn, logger *slog.Logger) *Logind {
	return &Logind{
		obj: conn.Object(logindName, godbus.ObjectPath(logindPath)),
		log: logger,
	}
}

// Hibernate checks CanHibernate and then requests hibernation. Interactive
// authorization is allowed only when logind answers "challenge".
func (l *Logind) Hibernate(ctx context.Context) error {
	var answer string
	if err := l.obj.CallWithContext(ctx, logindIface+".CanHibernate", 0).Store(&answer); err != nil {
		return &HibernateError{Status: dbusErrorName(err), Err: err}
	}
	// "challenge" means polkit will ask the user, as systemctl would.
	var interactive bool
	switch answer {
	case "yes":
	case "challenge":
		interactive = true
	default:
		return &HibernateError{Status: "CanHibernate=" + answer}
	}

	l.log.Info("requesting hibernate", "via", "logind", "interactive", interactive)
	if call := l.obj.CallWithContext(ctx, logindIface+".Hibernate", 0, interactive); call.Err != nil {
		return &HibernateError{Status: dbusErrorName(call.Err), Err: call.Err}
	}
	return nil
}

func dbusErrorName(err error) string {
	var dbusErr godbus.Error
	if errors.As(err, &dbusErr) {
		return dbusErr.Name
	}
	var dbusErrPtr *godbus.Error
	if errors.As(err, &dbusErrPtr) {
		return dbusErrPtr.Name
	}
	return err.Error()
}
