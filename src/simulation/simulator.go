package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/mosaicnetworks/eventlinker/src/config"
	"github.com/mosaicnetworks/eventlinker/src/crypto/keys"
	"github.com/mosaicnetworks/eventlinker/src/hashgraph"
	"github.com/mosaicnetworks/eventlinker/src/intake"
	"github.com/mosaicnetworks/eventlinker/src/linker"
	"github.com/mosaicnetworks/eventlinker/src/peers"
	"github.com/sirupsen/logrus"
)

// Simulator runs a Generator through a linker behind an intake Stage.
type Simulator struct {
	conf       *Config
	linkerConf *config.Config
	peerSet    *peers.PeerSet
	mode       hashgraph.AncientMode

	logger *logrus.Entry
}

// New creates a Simulator. If peerSet is nil, conf.Peers peers with fresh keys
// are created.
func New(conf *Config, linkerConf *config.Config, peerSet *peers.PeerSet) (*Simulator, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	mode, err := linkerConf.Mode()
	if err != nil {
		return nil, err
	}

	if peerSet == nil {
		peerSet, err = RandomPeerSet(conf.Peers)
		if err != nil {
			return nil, err
		}
	}

	if err := peerSet.Validate(); err != nil {
		return nil, err
	}

	return &Simulator{
		conf:       conf,
		linkerConf: linkerConf,
		peerSet:    peerSet,
		mode:       mode,
		logger:     linkerConf.Logger().WithField("component", "simulation"),
	}, nil
}

// RandomPeerSet creates a PeerSet of n peers with new secp256k1 keys.
func RandomPeerSet(n int) (*peers.PeerSet, error) {
	ps := make([]*peers.Peer, 0, n)
	for i := 0; i < n; i++ {
		key, err := keys.GenerateECDSAKey()
		if err != nil {
			return nil, fmt.Errorf("generating key: %w", err)
		}
		ps = append(ps, peers.NewPeer(
			keys.PublicKeyHex(&key.PublicKey),
			"",
			fmt.Sprintf("peer%d", i)))
	}
	return peers.NewPeerSet(ps), nil
}

// Run generates conf.Events events, delivers them to a new linker and
// returns the resulting Report. The window is advanced every
// conf.WindowEvery generated events.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	gen, err := NewGenerator(s.conf, s.peerSet)
	if err != nil {
		return nil, err
	}

	l, err := linker.New(s.linkerConf)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Linker:      s.linkerConf.Linker,
		AncientMode: s.mode.String(),
		Peers:       s.peerSet.Len(),
	}

	stage := intake.NewStage(s.linkerConf, l, report.observe)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- stage.Run(runCtx)
	}()
	defer func() {
		stage.Close()
		<-errCh
	}()

	s.logger.WithFields(logrus.Fields{
		"linker": report.Linker,
		"mode":   report.AncientMode,
		"peers":  report.Peers,
		"events": s.conf.Events,
	}).Info("Simulation starting")

	start := time.Now()
	shuffle := newShuffler(gen.rng, s.conf.Shuffle)

	var samples []int

	deliver := func(e *hashgraph.PlatformEvent) error {
		report.Delivered++
		return stage.Submit(ctx, e)
	}

	for i := 0; i < s.conf.Events; i++ {
		g, err := gen.Next()
		if err != nil {
			return nil, err
		}

		report.Generated++
		if g.Forged {
			report.Forged++
		}

		if g.Dropped {
			report.Dropped++
		} else if e := shuffle.push(g.Event); e != nil {
			if err := deliver(e); err != nil {
				return nil, err
			}
		}

		if gen.Count()%s.conf.WindowEvery == 0 {
			if err := stage.UpdateWindow(ctx, gen.Window(s.mode)); err != nil {
				return nil, err
			}
			if err := stage.Flush(ctx); err != nil {
				return nil, err
			}
			// the stage is idle until the next Submit
			samples = append(samples, l.Len())
		}
	}

	for _, e := range shuffle.drain() {
		if err := deliver(e); err != nil {
			return nil, err
		}
	}

	if err := stage.Flush(ctx); err != nil {
		return nil, err
	}

	report.finish(l, samples, time.Since(start))
	report.measureMemory(s.logger)

	s.logger.WithFields(logrus.Fields{
		"linked":  report.Stats.Linked,
		"elapsed": report.Elapsed,
	}).Info("Simulation done")

	return report, nil
}
