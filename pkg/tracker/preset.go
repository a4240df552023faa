package tracker

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Preset is the rest timer selection shown next to the countdown.
type Preset int

const (
	Preset45 Preset = iota
	Preset60
	PresetCustom
)

var presetOrder = []Preset{Preset45, Preset60, PresetCustom}

// Presets returns the selectable presets in display order.
func Presets() []Preset {
	ret := make([]Preset, len(presetOrder))
	copy(ret, presetOrder)
	return ret
}

// Seconds is the fixed duration of the preset. Custom has none and returns 0.
func (p Preset) Seconds() int {
	switch p {
	case Preset45:
		return 45
	case Preset60:
		return 60
	case PresetCustom:
		return 0
	}
	return 0
}

func (p Preset) String() string {
	switch p {
	case Preset45:
		return "45s"
	case Preset60:
		return "60s"
	case PresetCustom:
		return "Custom"
	}
	return "unknown"
}

// Next cycles 45s -> 60s -> Custom -> 45s.
func (p Preset) Next() Preset {
	return presetOrder[(int(p)+1)%len(presetOrder)]
}

// PresetFor maps a duration to the preset that would show as selected.
func PresetFor(seconds int) Preset {
	for _, p := range presetOrder {
		if p.Seconds() == seconds && p != PresetCustom {
			return p
		}
	}
	return PresetCustom
}

// ParseSeconds parses a user supplied rest duration. Only positive base-10
// integers are accepted; surrounding spaces are ignored.
func ParseSeconds(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("duration is required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("%q is not a whole number of seconds", s)
	}
	if n <= 0 {
		return 0, errors.Errorf("duration must be positive, got %d", n)
	}
	return n, nil
}
