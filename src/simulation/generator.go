package simulation

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/mosaicnetworks/eventlinker/src/hashgraph"
	"github.com/mosaicnetworks/eventlinker/src/peers"
)

var genesisTime = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// Generated is an event produced by a Generator, with what the Generator did
// to it.
type Generated struct {
	Event   *hashgraph.PlatformEvent
	Forged  bool // one parent descriptor is forged
	Dropped bool // the event must not be delivered
}

// Generator creates a synthetic hashgraph, one event at a time.
type Generator struct {
	conf     *Config
	rng      *rand.Rand
	creators []uint32
	last     map[uint32]*hashgraph.PlatformEvent

	clock         time.Time
	count         int
	maxGeneration uint64
	round         uint64
}

// NewGenerator creates a Generator for the peers in peerSet.
func NewGenerator(conf *Config, peerSet *peers.PeerSet) (*Generator, error) {
	if peerSet.Len() < 2 {
		return nil, fmt.Errorf("a hashgraph needs at least 2 peers, got %d", peerSet.Len())
	}

	return &Generator{
		conf:     conf,
		rng:      rand.New(rand.NewSource(conf.Seed)),
		creators: peerSet.IDs(),
		last:     make(map[uint32]*hashgraph.PlatformEvent),
		clock:    genesisTime,
		round:    hashgraph.FirstRound,
	}, nil
}

// Next creates the next event. Its self-parent is the last event of its
// creator and its other-parent the last event of another random creator.
func (g *Generator) Next() (*Generated, error) {
	i := g.rng.Intn(len(g.creators))
	j := g.rng.Intn(len(g.creators) - 1)
	if j >= i {
		j++
	}
	creator, other := g.creators[i], g.creators[j]

	sp := g.last[creator]
	op := g.last[other]

	generation := hashgraph.FirstGeneration
	for _, p := range []*hashgraph.PlatformEvent{sp, op} {
		if p != nil && p.Generation()+1 > generation {
			generation = p.Generation() + 1
		}
	}

	g.clock = g.clock.Add(time.Millisecond)

	body := hashgraph.EventBody{
		Creator:      creator,
		Generation:   generation,
		BirthRound:   g.round,
		TimeCreated:  g.clock,
		Transactions: [][]byte{[]byte(strconv.Itoa(g.count))},
	}
	if sp != nil {
		d := sp.Descriptor()
		body.SelfParent = &d
	}
	if op != nil {
		body.OtherParents = []hashgraph.EventDescriptor{op.Descriptor()}
	}

	forged := g.rng.Float64() < g.conf.ForgeRate && g.forge(&body)

	event, err := hashgraph.NewPlatformEvent(body)
	if err != nil {
		return nil, err
	}

	g.last[creator] = event
	g.count++
	if generation > g.maxGeneration {
		g.maxGeneration = generation
	}
	if g.count%(len(g.creators)*g.conf.EventsPerRound) == 0 {
		g.round++
	}

	return &Generated{
		Event:   event,
		Forged:  forged,
		Dropped: g.rng.Float64() < g.conf.DropRate,
	}, nil
}

// forge corrupts one parent descriptor of body. It reports false if body has
// no parent.
func (g *Generator) forge(body *hashgraph.EventBody) bool {
	var targets []*hashgraph.EventDescriptor
	if body.SelfParent != nil {
		targets = append(targets, body.SelfParent)
	}
	if len(body.OtherParents) > 0 {
		targets = append(targets, &body.OtherParents[0])
	}
	if len(targets) == 0 {
		return false
	}

	d := targets[g.rng.Intn(len(targets))]
	gen, round, created := d.Generation(), d.BirthRound(), d.TimeCreated()

	switch g.rng.Intn(3) {
	case 0:
		gen++
	case 1:
		round++
	default:
		// only checked on self-parents
		created = created.Add(10 * time.Second)
	}

	*d = hashgraph.NewEventDescriptor(d.Hash(), d.Creator(), gen, round, created)
	return true
}

// Window returns the window that keeps the last RoundsKept values of the
// mode's indicator non-ancient.
func (g *Generator) Window(mode hashgraph.AncientMode) hashgraph.EventWindow {
	latest := g.maxGeneration
	if mode == hashgraph.BirthRoundThreshold {
		latest = g.round
	}

	threshold := mode.GenesisIndicator() - 1
	if latest > g.conf.RoundsKept+threshold {
		threshold = latest - g.conf.RoundsKept
	}

	return hashgraph.NewEventWindow(g.round, threshold, threshold, mode)
}

// Count returns the number of events generated so far.
func (g *Generator) Count() int {
	return g.count
}

// shuffler delays delivery through a bounded buffer, releasing a random
// buffered event once it is full.
type shuffler struct {
	rng    *rand.Rand
	buffer []*hashgraph.PlatformEvent
	size   int
}

func newShuffler(rng *rand.Rand, size int) *shuffler {
	return &shuffler{rng: rng, size: size}
}

// push buffers e and returns the event to deliver now, if any.
func (s *shuffler) push(e *hashgraph.PlatformEvent) *hashgraph.PlatformEvent {
	if s.size == 0 {
		return e
	}

	s.buffer = append(s.buffer, e)
	if len(s.buffer) <= s.size {
		return nil
	}

	i := s.rng.Intn(len(s.buffer))
	out := s.buffer[i]
	s.buffer = append(s.buffer[:i], s.buffer[i+1:]...)
	return out
}

// drain returns the buffered events in random order and empties the buffer.
func (s *shuffler) drain() []*hashgraph.PlatformEvent {
	out := s.buffer
	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	s.buffer = nil
	return out
}
