package power

import (
	"log/slog"

	godbus "github.com/godbus/dbus/v5"
)

type signalBus interface {
	AddMatchSignal(options ...godbus.MatchOption) error
	Signal(ch chan<- *godbus.Signal)
	RemoveSignal(ch chan<- *godbus.Signal)
}

// ResumeMonitor listens for logind's PrepareForSleep and PrepareForShutdown
// signals and notifies on Resumed each time the system wakes up.
type ResumeMonitor struct {
	bus     signalBus
	done    chan struct{}
	resumed chan struct{}
	log     *slog.Logger
}

// NewResumeMonitor subscribes to the system bus.
func NewResumeMonitor(logger *slog.Logger) (*ResumeMonitor, error) {
	conn, err := godbus.SystemBus()
	if err != nil {
		return nil, err
	}
	return newResumeMonitor(conn, logger)
}

func newResumeMonitor(bus signalBus, logger *slog.Logger) (*ResumeMonitor, error) {
	for _, member := range []string{"PrepareForSleep", "PrepareForShutdown"} {
		err := bus.AddMatchSignal(
			godbus.WithMatchInterface(logindIface),
			godbus.WithMatchMember(member),
		)
		if err != nil {
			return nil, err
		}
	}

	m := &ResumeMonitor{
		bus:     bus,
		done:    make(chan struct{}),
		resumed: make(chan struct{}, 1),
		log:     logger,
	}
	ch := make(chan *godbus.Signal, 16)
	bus.Signal(ch)
	go m.listen(ch)
	return m, nil
}

// Resumed receives a value after each wake-up. Wake-ups that arrive while a
// previous one is still pending are coalesced.
func (m *ResumeMonitor) Resumed() <-chan struct{} {
	return m.resumed
}

// Close stops the monitor.
func (m *ResumeMonitor) Close() {
	close(m.done)
}

func (m *ResumeMonitor) listen(ch chan *godbus.Signal) {
	defer m.bus.RemoveSignal(ch)

	for {
		select {
		case sig := <-ch:
			m.handle(sig)
		case <-m.done:
			return
		}
	}
}

func (m *ResumeMonitor) handle(sig *godbus.Signal) {
	if sig == nil || len(sig.Body) < 1 {
		return
	}
	active, ok := sig.Body[0].(bool)
	if !ok {
		return
	}

	switch sig.Name {
	case logindIface + ".PrepareForShutdown":
		if active {
			m.log.Info("system preparing for shutdown")
		}
	case logindIface + ".PrepareForSleep":
		if active {
			m.log.Info("system going to sleep")
			return
		}
		m.log.Info("system woke up")
		select {
		case m.resumed <- struct{}{}:
		default:
		}
	}
}
