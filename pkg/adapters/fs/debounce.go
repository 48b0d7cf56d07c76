package fs

import (
	"sync"
	"time"

	"github.com/quietpress/quill/pkg/core"
)

// debouncer coalesces bursts of filesystem events per document ID.
// Editors routinely emit several writes per save; only the last event inside
// the window is delivered.
type debouncer struct {
	window time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	gens    map[string]uint64
	pending map[string]core.Event
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window:  window,
		timers:  make(map[string]*time.Timer),
		gens:    make(map[string]uint64),
		pending: make(map[string]core.Event),
	}
}

// add schedules fire for the event, replacing any pending event with the
// same ID and restarting its window.
func (d *debouncer) add(event core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending[event.ID] = event

	// Reset only works if the timer has not fired yet. When Stop reports
	// the timer already expired, its callback is in flight and will retire
	// its own generation; fall through and start a fresh timer.
	if timer, ok := d.timers[event.ID]; ok && timer.Stop() {
		timer.Reset(d.window)
		return
	}

	d.gens[event.ID]++
	gen := d.gens[event.ID]

	d.wg.Add(1)
	d.timers[event.ID] = time.AfterFunc(d.window, func() {
		d.expire(event.ID, gen, fire)
	})
}

// expire delivers the latest pending event for id, unless a newer timer
// generation superseded this one while the callback was in flight.
func (d *debouncer) expire(id string, gen uint64, fire func(core.Event)) {
	defer d.wg.Done()

	d.mu.Lock()
	if d.gens[id] != gen {
		d.mu.Unlock()
		return
	}
	// gens is left monotonic on purpose: reusing a generation number
	// would let a stale callback pass the check above.
	latest, ok := d.pending[id]
	delete(d.pending, id)
	delete(d.timers, id)
	stopped := d.stopped
	d.mu.Unlock()

	if ok && !stopped {
		fire(latest)
	}
}

// stopAndWait rejects new events and waits for in-flight timers, bounded by
// timeout so shutdown cannot hang on a wedged consumer.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
