package linker

import "sync/atomic"

// writerGuard detects overlapping calls into a linker. It is a single atomic
// flag, so the uncontended path costs one compare-and-swap.
type writerGuard struct {
	busy atomic.Bool
}

func (g *writerGuard) enter() {
	if !g.busy.CompareAndSwap(false, true) {
		panic(ContractViolation{msg: "linker entered concurrently from two goroutines"})
	}
}

func (g *writerGuard) exit() {
	g.busy.Store(false)
}
