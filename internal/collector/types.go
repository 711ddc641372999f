package collector

// UnknownLevel is reported when the capacity attribute exists but cannot be parsed.
const UnknownLevel = -1

// Reading holds one sample of battery charge and charging state from
// /sys/class/power_supply/BAT*. Readings are never cached.
type Reading struct {
	Level      int // 0-100, or UnknownLevel
	IsCharging bool
}

// Known reports whether the level was read successfully.
func (r Reading) Known() bool {
	return r.Level != UnknownLevel
}
