package linker

import (
	"github.com/mosaicnetworks/eventlinker/src/config"
	"github.com/mosaicnetworks/eventlinker/src/hashgraph"
)

// ConsensusLinker is an InOrderLinker that unlinks events from their parents
// when they become ancient. Consumers holding an unlinked event still see a
// valid event, only without parents.
type ConsensusLinker struct {
	*InOrderLinker
}

// NewConsensusLinker creates a ConsensusLinker in the genesis window of the
// configured ancient mode.
func NewConsensusLinker(conf *config.Config) (*ConsensusLinker, error) {
	base, err := NewInOrderLinker(conf)
	if err != nil {
		return nil, err
	}

	l := &ConsensusLinker{InOrderLinker: base}
	base.evicted = l.unlink

	return l, nil
}

func (l *ConsensusLinker) unlink(event *hashgraph.LinkedEvent) {
	event.Unlink()
	l.stats.Unlinked++
}
