package intake

import (
	"context"
	"errors"
	"sync"

	"github.com/mosaicnetworks/eventlinker/src/config"
	"github.com/mosaicnetworks/eventlinker/src/hashgraph"
	"github.com/mosaicnetworks/eventlinker/src/linker"
	"github.com/sirupsen/logrus"
)

var (
	// ErrClosed is returned by operations on a closed Stage.
	ErrClosed = errors.New("intake stage closed")
	// ErrRunning is returned by Run if the Stage is already running or closed.
	ErrRunning = errors.New("intake stage already started")
)

// Consumer receives every event the linker links, in link order. It is called
// from the Run goroutine.
type Consumer func(*hashgraph.LinkedEvent)

type itemKind int

const (
	eventItem itemKind = iota
	windowItem
	flushItem
)

type item struct {
	kind    itemKind
	event   *hashgraph.PlatformEvent
	window  hashgraph.EventWindow
	promise *flushPromise
}

// Stage serialises calls into an EventLinker.
type Stage struct {
	state

	linker   linker.EventLinker
	consumer Consumer

	queue      chan item
	shutdownCh chan struct{}
	closeOnce  sync.Once

	logger *logrus.Entry
}

// NewStage creates a Stage in front of l. consumer may be nil.
func NewStage(conf *config.Config, l linker.EventLinker, consumer Consumer) *Stage {
	return &Stage{
		linker:     l,
		consumer:   consumer,
		queue:      make(chan item, conf.QueueSize),
		shutdownCh: make(chan struct{}),
		logger:     conf.Logger().WithField("component", "intake"),
	}
}

// Submit queues an event for linking. It blocks while the queue is full.
func (s *Stage) Submit(ctx context.Context, event *hashgraph.PlatformEvent) error {
	return s.enqueue(ctx, item{kind: eventItem, event: event})
}

// UpdateWindow queues a window update behind the events already submitted.
func (s *Stage) UpdateWindow(ctx context.Context, window hashgraph.EventWindow) error {
	return s.enqueue(ctx, item{kind: windowItem, window: window})
}

// Flush returns once every item queued before it has been applied.
func (s *Stage) Flush(ctx context.Context) error {
	p := newFlushPromise()
	if err := s.enqueue(ctx, item{kind: flushItem, promise: p}); err != nil {
		return err
	}

	select {
	case <-p.RespCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.shutdownCh:
		return ErrClosed
	}
}

func (s *Stage) enqueue(ctx context.Context, it item) error {
	if s.getState() == Closed {
		return ErrClosed
	}

	select {
	case s.queue <- it:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.shutdownCh:
		return ErrClosed
	}
}

// Run applies queued items until ctx is cancelled or Close is called. It
// returns nil after Close and ctx.Err() after cancellation. Either way the
// Stage ends up closed, and pending or blocked callers get ErrClosed. Only one
// Run may be active.
func (s *Stage) Run(ctx context.Context) error {
	if !s.transition(Idle, Running) {
		return ErrRunning
	}
	// releases Flush and Submit callers whatever the exit path
	defer s.Close()

	s.logger.Debug("Intake running")

	for {
		select {
		case it := <-s.queue:
			s.process(it)
		case <-s.shutdownCh:
			s.logger.WithField("pending", len(s.queue)).Debug("Intake closed")
			return nil
		case <-ctx.Done():
			s.logger.WithField("pending", len(s.queue)).Debug("Intake cancelled")
			return ctx.Err()
		}
	}
}

// Close stops Run. Pending items are dropped. Close is idempotent.
func (s *Stage) Close() {
	s.closeOnce.Do(func() {
		s.setState(Closed)
		close(s.shutdownCh)
	})
}

// State returns the lifecycle state of the Stage.
func (s *Stage) State() State {
	return s.getState()
}

func (s *Stage) process(it item) {
	switch it.kind {
	case eventItem:
		linked := s.linker.LinkEvent(it.event)
		if linked != nil && s.consumer != nil {
			s.consumer(linked)
		}
	case windowItem:
		s.logger.WithField("window", it.window).Debug("Updating event window")
		s.linker.SetEventWindow(it.window)
	case flushItem:
		it.promise.Respond()
	}
}
