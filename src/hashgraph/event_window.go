package hashgraph

import "fmt"

// EventWindow is an immutable snapshot of the ancient threshold. Successive
// windows handed to a linker must have non-decreasing AncientThreshold.
type EventWindow struct {
	latestConsensusRound uint64
	ancientThreshold     uint64
	expiredThreshold     uint64
	mode                 AncientMode
}

// NewEventWindow creates an EventWindow. The expired threshold may not exceed
// the ancient threshold; if it does, it is lowered to it.
func NewEventWindow(latestConsensusRound, ancientThreshold, expiredThreshold uint64, mode AncientMode) EventWindow {
	if expiredThreshold > ancientThreshold {
		expiredThreshold = ancientThreshold
	}
	return EventWindow{
		latestConsensusRound: latestConsensusRound,
		ancientThreshold:     ancientThreshold,
		expiredThreshold:     expiredThreshold,
		mode:                 mode,
	}
}

// GenesisEventWindow returns the window in effect before any round has reached
// consensus. Nothing with a valid indicator is ancient in it.
func GenesisEventWindow(mode AncientMode) EventWindow {
	threshold := mode.GenesisIndicator() - 1
	return NewEventWindow(0, threshold, threshold, mode)
}

// LatestConsensusRound is the round this window was computed for. It is
// opaque to the linker.
func (w EventWindow) LatestConsensusRound() uint64 {
	return w.latestConsensusRound
}

// AncientThreshold returns the threshold at or below which events are
// ancient.
func (w EventWindow) AncientThreshold() uint64 {
	return w.ancientThreshold
}

// ExpiredThreshold returns the threshold at or below which events may be
// forgotten altogether.
func (w EventWindow) ExpiredThreshold() uint64 {
	return w.expiredThreshold
}

// AncientMode returns the mode used to compute indicators.
func (w EventWindow) AncientMode() AncientMode {
	return w.mode
}

// IsAncient reports whether x is at or below the ancient threshold.
func (w EventWindow) IsAncient(x Indicated) bool {
	return w.mode.Indicator(x) <= w.ancientThreshold
}

// IsGenesis reports whether nothing has become ancient yet.
func (w EventWindow) IsGenesis() bool {
	return w.ancientThreshold < w.mode.GenesisIndicator()
}

// String implements fmt.Stringer.
func (w EventWindow) String() string {
	return fmt.Sprintf("EventWindow{round: %d, ancient: %d, expired: %d, mode: %s}",
		w.latestConsensusRound, w.ancientThreshold, w.expiredThreshold, w.mode)
}
