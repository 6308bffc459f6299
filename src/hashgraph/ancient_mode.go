package hashgraph

import (
	"fmt"
	"strings"
)

const (
	// FirstGeneration is the generation of an event without parents.
	FirstGeneration uint64 = 1

	// FirstRound is the first consensus round, the birth round of the first
	// events.
	FirstRound uint64 = 1
)

// Indicated is anything that exposes the two candidate ancient indicators.
// PlatformEvent, EventDescriptor and LinkedEvent all implement it, so that
// ancientness is always computed the same way.
type Indicated interface {
	Generation() uint64
	BirthRound() uint64
}

// AncientMode selects which attribute of an event is compared against the
// ancient threshold.
type AncientMode int

const (
	// GenerationThreshold uses the generation of events.
	GenerationThreshold AncientMode = iota
	// BirthRoundThreshold uses the birth round of events.
	BirthRoundThreshold
)

var ancientModes = []string{"generation", "birth-round"}

// ParseAncientMode converts the output of AncientMode.String back to an
// AncientMode. It also accepts upper-case and underscores.
func ParseAncientMode(s string) (AncientMode, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for i, name := range ancientModes {
		if norm == name {
			return AncientMode(i), nil
		}
	}
	return GenerationThreshold, fmt.Errorf("unknown ancient mode %q", s)
}

// String implements fmt.Stringer.
func (m AncientMode) String() string {
	if m < 0 || int(m) >= len(ancientModes) {
		return fmt.Sprintf("AncientMode(%d)", int(m))
	}
	return ancientModes[m]
}

// Indicator returns the ancient indicator of x in this mode.
func (m AncientMode) Indicator(x Indicated) uint64 {
	if m == BirthRoundThreshold {
		return x.BirthRound()
	}
	return x.Generation()
}

// GenesisIndicator returns the smallest indicator a valid event can have.
func (m AncientMode) GenesisIndicator() uint64 {
	if m == BirthRoundThreshold {
		return FirstRound
	}
	return FirstGeneration
}
