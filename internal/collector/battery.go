package collector

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/distatus/battery"
)

var sysfsRoot = "/sys"

// fallbackBattery is used when uevent carries no POWER_SUPPLY_CAPACITY.
var fallbackBattery = func() (*battery.Battery, error) {
	return battery.Get(0)
}

// Sysfs reads the first battery found under sysfs.
type Sysfs struct{}

// ReadBattery implements the battery reader used by the agent and popup.
func (Sysfs) ReadBattery() (Reading, error) {
	return ReadBattery()
}

// ReadBattery reads charge level and charging state from /sys/class/power_supply/BAT*.
func ReadBattery() (Reading, error) {
	r := Reading{Level: UnknownLevel}

	pattern := filepath.Join(sysfsRoot, "class/power_supply/BAT*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return r, &IOError{Op: "glob battery", Path: pattern, Err: err}
	}
	if len(matches) == 0 {
		return r, &IOError{Op: "glob battery", Path: pattern, Err: ErrNoBattery}
	}

	ueventPath := filepath.Join(matches[0], "uevent")
	data, err := os.ReadFile(ueventPath)
	if err != nil {
		return r, &IOError{Op: "read uevent", Path: ueventPath, Err: err}
	}

	props := parseUevent(string(data))
	r.IsCharging = strings.TrimSpace(props["POWER_SUPPLY_STATUS"]) == "Charging"

	capacity, ok := props["POWER_SUPPLY_CAPACITY"]
	if !ok {
		// Some drivers only expose energy_now/energy_full.
		return readFallbackLevel(r)
	}
	if level, err := strconv.Atoi(strings.TrimSpace(capacity)); err == nil {
		r.Level = level
	}
	return r, nil
}

func readFallbackLevel(r Reading) (Reading, error) {
	bat, err := fallbackBattery()
	if err != nil && !energyUsable(bat, err) {
		return r, &IOError{Op: "read battery energy", Err: err}
	}
	if bat.Full > 0 {
		r.Level = int(math.Round(bat.Current / bat.Full * 100))
	}
	return r, nil
}

// energyUsable reports whether a partial read still produced the energy
// fields the level is computed from.
func energyUsable(bat *battery.Battery, err error) bool {
	var partial battery.ErrPartial
	if bat == nil || !errors.As(err, &partial) {
		return false
	}
	return partial.Current == nil && partial.Full == nil
}

func parseUevent(data string) map[string]string {
	props := make(map[string]string)
	for _, line := range strings.Split(data, "\n") {
		if k, v, ok := strings.Cut(line, "="); ok {
			props[k] = v
		}
	}
	return props
}
