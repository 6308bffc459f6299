package linker

import (
	"fmt"
	"math"

	"github.com/mosaicnetworks/eventlinker/src/common"
	"github.com/mosaicnetworks/eventlinker/src/config"
	"github.com/mosaicnetworks/eventlinker/src/hashgraph"
	"github.com/sirupsen/logrus"
)

type parentKind int

const (
	selfParent parentKind = iota
	otherParent
)

func (k parentKind) String() string {
	if k == selfParent {
		return "self_parent"
	}
	return "other_parent"
}

// InOrderLinker links events as they arrive, resolving parents against the
// events it has linked and that are not ancient yet. It keeps the links of
// events it evicts from its index.
type InOrderLinker struct {
	mode   hashgraph.AncientMode
	window hashgraph.EventWindow
	events *common.SequenceMap[hashgraph.Hash, *hashgraph.LinkedEvent]
	strict bool

	//called for each event evicted from the index
	evicted func(*hashgraph.LinkedEvent)

	guard writerGuard
	stats Stats

	logger         *logrus.Entry
	missingLogger  *common.RateLimitedLogger
	mismatchLogger *common.RateLimitedLogger
}

// NewInOrderLinker creates an InOrderLinker in the genesis window of the
// configured ancient mode.
func NewInOrderLinker(conf *config.Config) (*InOrderLinker, error) {
	mode, err := conf.Mode()
	if err != nil {
		return nil, err
	}

	logger := conf.Logger().WithField("component", "linker")
	window := hashgraph.GenesisEventWindow(mode)

	return &InOrderLinker{
		mode:   mode,
		window: window,
		events: common.NewSequenceMap[hashgraph.Hash, *hashgraph.LinkedEvent](
			"LinkedEvents",
			window.AncientThreshold(),
			conf.Capacity),
		strict:         conf.Strict,
		logger:         logger,
		missingLogger:  common.NewRateLimitedLogger(logger, conf.LogRate),
		mismatchLogger: common.NewRateLimitedLogger(logger, conf.LogRate),
	}, nil
}

// LinkEvent implements EventLinker.
func (l *InOrderLinker) LinkEvent(event *hashgraph.PlatformEvent) *hashgraph.LinkedEvent {
	l.guard.enter()
	defer l.guard.exit()

	if event == nil {
		return nil
	}

	if l.window.IsAncient(event) {
		l.stats.DiscardedAncient++
		return nil
	}

	if indexed, ok := l.events.Get(event.Hash()); ok {
		// upstream deduplication failed; the indexed copy stays the only one
		l.stats.Duplicates++
		l.mismatchLogger.Log(logrus.WarnLevel, logrus.Fields{
			"event": event,
		}, "Event linked twice")
		return indexed
	}

	sp := l.selfParentToLink(event)
	op := l.otherParentToLink(event)

	linked := hashgraph.NewLinkedEvent(event, sp, op)

	if err := l.events.Put(event.Hash(), l.mode.Indicator(event), linked); err != nil {
		// neither ancient nor indexed, so Put cannot refuse it
		l.logger.WithError(err).WithField("event", event).Error("Cannot index event")
		return nil
	}

	if n := l.events.Len(); n > l.stats.MaxIndexed {
		l.stats.MaxIndexed = n
	}

	l.stats.Linked++

	return linked
}

// SetEventWindow implements EventLinker.
func (l *InOrderLinker) SetEventWindow(window hashgraph.EventWindow) {
	l.guard.enter()
	defer l.guard.exit()

	if window.AncientMode() != l.mode {
		l.violation(fmt.Sprintf("event window mode %s does not match linker mode %s",
			window.AncientMode(), l.mode))
		return
	}

	if window.AncientThreshold() < l.window.AncientThreshold() {
		l.violation(fmt.Sprintf("ancient threshold went back from %d to %d",
			l.window.AncientThreshold(), window.AncientThreshold()))
		return
	}

	l.window = window
	l.stats.WindowUpdates++

	l.events.ShiftWindow(window.AncientThreshold(), l.evict)
}

// Get implements EventLinker.
func (l *InOrderLinker) Get(hash hashgraph.Hash) (*hashgraph.LinkedEvent, bool) {
	l.guard.enter()
	defer l.guard.exit()

	return l.events.Get(hash)
}

// Len implements EventLinker.
func (l *InOrderLinker) Len() int {
	return l.events.Len()
}

// Window implements EventLinker.
func (l *InOrderLinker) Window() hashgraph.EventWindow {
	return l.window
}

// Stats implements EventLinker.
func (l *InOrderLinker) Stats() Stats {
	return l.stats
}

// Clear implements EventLinker.
func (l *InOrderLinker) Clear() {
	l.guard.enter()
	defer l.guard.exit()

	l.events.ShiftWindow(math.MaxUint64, l.evict)

	l.window = hashgraph.GenesisEventWindow(l.mode)
	l.events.Clear(l.window.AncientThreshold())
}

func (l *InOrderLinker) evict(_ hashgraph.Hash, event *hashgraph.LinkedEvent) {
	l.stats.Evicted++
	if l.evicted != nil {
		l.evicted(event)
	}
}

func (l *InOrderLinker) violation(msg string) {
	if l.strict {
		panic(ContractViolation{msg: msg})
	}
	l.logger.WithField("window", l.window).Error(ContractViolation{msg: msg}.Error())
}

func (l *InOrderLinker) parentStats(kind parentKind) *ParentStats {
	if kind == selfParent {
		return &l.stats.SelfParent
	}
	return &l.stats.OtherParent
}

// selfParentToLink applies the common checks, then requires the parent to
// share the child's creator and its claimed creation time to be exact and
// strictly before the child's.
func (l *InOrderLinker) selfParentToLink(child *hashgraph.PlatformEvent) *hashgraph.LinkedEvent {
	descriptor := child.SelfParent()

	candidate := l.parentToLink(child, descriptor, selfParent)
	if candidate == nil {
		return nil
	}

	stats := &l.stats.SelfParent

	if candidate.Creator() != child.Creator() {
		stats.CreatorMismatch++
		l.logMismatch(child, candidate, selfParent, "creator",
			child.Creator(), candidate.Creator())
		return nil
	}

	if !candidate.TimeCreated().Equal(descriptor.TimeCreated()) {
		stats.TimeCreatedMismatch++
		l.logMismatch(child, candidate, selfParent, "time_created",
			descriptor.TimeCreated(), candidate.TimeCreated())
		return nil
	}

	if !candidate.TimeCreated().Before(child.TimeCreated()) {
		stats.TimeOrderViolation++
		l.logMismatch(child, candidate, selfParent, "time_created_order",
			child.TimeCreated(), candidate.TimeCreated())
		return nil
	}

	stats.Linked++

	return candidate
}

// otherParentToLink applies the common checks only. The other-parent was
// created on another clock.
func (l *InOrderLinker) otherParentToLink(child *hashgraph.PlatformEvent) *hashgraph.LinkedEvent {
	candidate := l.parentToLink(child, child.OtherParent(), otherParent)
	if candidate != nil {
		l.stats.OtherParent.Linked++
	}
	return candidate
}

// parentToLink finds the indexed event a descriptor refers to, or returns nil
// if the descriptor is absent, ancient, unknown, or claims a generation or
// birth round that is not the event's.
func (l *InOrderLinker) parentToLink(child *hashgraph.PlatformEvent,
	descriptor *hashgraph.EventDescriptor,
	kind parentKind) *hashgraph.LinkedEvent {

	stats := l.parentStats(kind)

	if descriptor == nil {
		stats.Absent++
		return nil
	}

	if l.window.IsAncient(*descriptor) {
		stats.Ancient++
		return nil
	}

	candidate, ok := l.events.Get(descriptor.Hash())
	if !ok {
		stats.Missing++
		l.missingLogger.Log(logrus.DebugLevel, logrus.Fields{
			"event": child,
			kind.String(): descriptor,
		}, "Parent not found")
		return nil
	}

	if candidate.Generation() != descriptor.Generation() {
		stats.GenerationMismatch++
		l.logMismatch(child, candidate, kind, "generation",
			descriptor.Generation(), candidate.Generation())
		return nil
	}

	if candidate.BirthRound() != descriptor.BirthRound() {
		stats.BirthRoundMismatch++
		l.logMismatch(child, candidate, kind, "birth_round",
			descriptor.BirthRound(), candidate.BirthRound())
		return nil
	}

	if l.window.IsAncient(candidate) {
		stats.Ancient++
		return nil
	}

	return candidate
}

func (l *InOrderLinker) logMismatch(child *hashgraph.PlatformEvent,
	parent *hashgraph.LinkedEvent,
	kind parentKind,
	field string,
	claimed, actual interface{}) {

	l.mismatchLogger.Log(logrus.WarnLevel, logrus.Fields{
		"event":       child,
		kind.String(): parent.Descriptor(),
		"field":       field,
		"claimed":     claimed,
		"actual":      actual,
	}, "Parent does not match its descriptor")
}
