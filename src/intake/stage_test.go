package intake

import (
	"context"
	"testing"
	"time"

	"github.com/mosaicnetworks/eventlinker/src/config"
	"github.com/mosaicnetworks/eventlinker/src/hashgraph"
	"github.com/mosaicnetworks/eventlinker/src/linker"
	"github.com/sirupsen/logrus"
)

var epoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func newEvent(t *testing.T, creator uint32, gen uint64, created time.Time, sp *hashgraph.PlatformEvent) *hashgraph.PlatformEvent {
	body := hashgraph.EventBody{
		Creator:     creator,
		Generation:  gen,
		BirthRound:  hashgraph.FirstRound,
		TimeCreated: created,
	}
	if sp != nil {
		d := sp.Descriptor()
		body.SelfParent = &d
	}
	event, err := hashgraph.NewPlatformEvent(body)
	if err != nil {
		t.Fatal(err)
	}
	return event
}

func newTestStage(t *testing.T, consumer Consumer) (*Stage, linker.EventLinker) {
	conf := config.NewTestConfig(t, logrus.DebugLevel)
	conf.QueueSize = 4

	l, err := linker.New(conf)
	if err != nil {
		t.Fatal(err)
	}

	return NewStage(conf, l, consumer), l
}

func runStage(t *testing.T, s *Stage) (context.CancelFunc, chan error) {
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Run(ctx)
	}()
	return cancel, errCh
}

func TestStageOrdering(t *testing.T) {
	var linked []*hashgraph.LinkedEvent
	s, l := newTestStage(t, func(e *hashgraph.LinkedEvent) {
		linked = append(linked, e)
	})

	cancel, errCh := runStage(t, s)
	defer cancel()

	ctx := context.Background()

	e1 := newEvent(t, 1, 1, epoch, nil)
	e2 := newEvent(t, 1, 2, epoch.Add(time.Second), e1)
	e3 := newEvent(t, 1, 3, epoch.Add(2*time.Second), e2)

	for _, e := range []*hashgraph.PlatformEvent{e1, e2} {
		if err := s.Submit(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	// e1 becomes ancient before e3 arrives, e2 does not
	if err := s.UpdateWindow(ctx, hashgraph.NewEventWindow(1, 1, 0, hashgraph.GenerationThreshold)); err != nil {
		t.Fatal(err)
	}
	if err := s.Submit(ctx, e3); err != nil {
		t.Fatal(err)
	}
	// ancient on arrival, never reaches the consumer
	if err := s.Submit(ctx, newEvent(t, 2, 1, epoch, nil)); err != nil {
		t.Fatal(err)
	}

	if err := s.Flush(ctx); err != nil {
		t.Fatal(err)
	}

	if len(linked) != 3 {
		t.Fatalf("Consumer should receive 3 events, not %d", len(linked))
	}
	for i, e := range []*hashgraph.PlatformEvent{e1, e2, e3} {
		if linked[i].Event() != e {
			t.Fatalf("Event %d delivered out of order", i)
		}
	}
	if linked[2].SelfParent() != linked[1] {
		t.Fatalf("e3 should be linked to e2")
	}
	if !linked[1].HasParents() {
		t.Fatalf("e2 should keep its evicted self-parent")
	}
	if l.Stats().DiscardedAncient != 1 {
		t.Fatalf("DiscardedAncient should be 1")
	}

	s.Close()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run should return nil after Close, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after Close")
	}

	if s.State() != Closed {
		t.Fatalf("State should be Closed, not %v", s.State())
	}
	if err := s.Submit(ctx, e1); err != ErrClosed {
		t.Fatalf("Submit after Close should return ErrClosed, got %v", err)
	}
}

func TestStageCancel(t *testing.T) {
	s, _ := newTestStage(t, nil)

	cancel, errCh := runStage(t, s)
	cancel()

	select {
	case err := <-errCh:
		if err != context.Canceled {
			t.Fatalf("Run should return context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestStageRunTwice(t *testing.T) {
	s, _ := newTestStage(t, nil)

	cancel, _ := runStage(t, s)
	defer cancel()

	if err := s.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := s.Run(context.Background()); err != ErrRunning {
		t.Fatalf("Second Run should return ErrRunning, got %v", err)
	}

	s.Close()
	s.Close()
}

func TestSubmitBlocksOnFullQueue(t *testing.T) {
	s, _ := newTestStage(t, nil)

	ctx := context.Background()
	for i := 0; i < cap(s.queue); i++ {
		if err := s.Submit(ctx, newEvent(t, 1, 1, epoch.Add(time.Duration(i)), nil)); err != nil {
			t.Fatal(err)
		}
	}

	timeout, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()

	if err := s.Submit(timeout, newEvent(t, 2, 1, epoch, nil)); err != context.DeadlineExceeded {
		t.Fatalf("Submit on a full queue should time out, got %v", err)
	}
}

func TestCancelReleasesQueuedFlush(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	s, _ := newTestStage(t, func(e *hashgraph.LinkedEvent) {
		select {
		case entered <- struct{}{}:
		default:
		}
		<-release
	})

	cancel, errCh := runStage(t, s)

	ctx := context.Background()
	if err := s.Submit(ctx, newEvent(t, 1, 1, epoch, nil)); err != nil {
		t.Fatal(err)
	}
	<-entered

	flushed := make(chan error, 1)
	go func() {
		flushed <- s.Flush(ctx)
	}()

	// wait for the flush item to sit behind the blocked consumer
	deadline := time.Now().Add(5 * time.Second)
	for len(s.queue) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("Flush was never queued")
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	close(release)

	select {
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			t.Fatalf("Run should return nil or context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}

	// Run may have answered the flush before seeing the cancellation
	select {
	case err := <-flushed:
		if err != nil && err != ErrClosed {
			t.Fatalf("Flush should return nil or ErrClosed, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Flush hung after Run was cancelled")
	}

	if s.State() != Closed {
		t.Fatalf("State should be Closed, not %v", s.State())
	}
	if err := s.Submit(ctx, newEvent(t, 2, 1, epoch, nil)); err != ErrClosed {
		t.Fatalf("Submit after a cancelled Run should return ErrClosed, got %v", err)
	}
}

func TestCancelReleasesBlockedSubmit(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	s, _ := newTestStage(t, func(e *hashgraph.LinkedEvent) {
		select {
		case entered <- struct{}{}:
		default:
		}
		<-release
	})

	cancel, errCh := runStage(t, s)

	ctx := context.Background()
	if err := s.Submit(ctx, newEvent(t, 1, 1, epoch, nil)); err != nil {
		t.Fatal(err)
	}
	<-entered

	for i := 0; i < cap(s.queue); i++ {
		if err := s.Submit(ctx, newEvent(t, 2, 1, epoch.Add(time.Duration(i)), nil)); err != nil {
			t.Fatal(err)
		}
	}

	submitted := make(chan error, 1)
	go func() {
		submitted <- s.Submit(ctx, newEvent(t, 3, 1, epoch, nil))
	}()

	cancel()
	close(release)

	select {
	case <-errCh:
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}

	// Run may have made room for it before seeing the cancellation
	select {
	case err := <-submitted:
		if err != nil && err != ErrClosed {
			t.Fatalf("Blocked Submit should return nil or ErrClosed, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Submit hung after Run was cancelled")
	}
}
