package intake

// flushPromise is queued behind pending items and answered once Run reaches
// it.
type flushPromise struct {
	RespCh chan struct{}
}

func newFlushPromise() *flushPromise {
	return &flushPromise{
		// buffered so Run never blocks on a caller that gave up
		RespCh: make(chan struct{}, 1),
	}
}

func (p *flushPromise) Respond() {
	p.RespCh <- struct{}{}
}
