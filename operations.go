// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/pion/negotiation/internal/util"
)

// Operation is a function executed on the signaling goroutine.
type operation func()

// operations serializes every mutation of the negotiation state onto
// one logical signaling context. Callers on other goroutines hand work
// over with Invoke and block until it ran; the signaling goroutine
// itself must never call Invoke.
type operations struct {
	mu     sync.Mutex
	busyCh chan struct{}
	ops    *list.List

	// id of the goroutine currently draining the queue, 0 when idle.
	dispatchID atomic.Uint64

	fireNegotiationNeededOnEmptyChain *atomic.Bool
	onNegotiationNeeded               func()
}

func newOperations(
	fireNegotiationNeededOnEmptyChain *atomic.Bool,
	onNegotiationNeeded func(),
) *operations {
	return &operations{
		ops:                               list.New(),
		fireNegotiationNeededOnEmptyChain: fireNegotiationNeededOnEmptyChain,
		onNegotiationNeeded:               onNegotiationNeeded,
	}
}

// Enqueue adds a new action to be executed. If there are no actions
// scheduled, the execution will start immediately in a new goroutine.
func (o *operations) Enqueue(op operation) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.tryEnqueue(op)
}

// Invoke runs the operation on the signaling goroutine and blocks until
// it finished. Calling Invoke from the signaling goroutine would wait
// on itself; that is always a reentrancy bug, so it fails fast.
func (o *operations) Invoke(op operation) {
	if util.GoroutineID() == o.dispatchID.Load() {
		panic("Invoke called from the signaling goroutine")
	}

	done := make(chan struct{})
	o.mu.Lock()
	o.tryEnqueue(func() {
		op()
		close(done)
	})
	o.mu.Unlock()
	<-done
}

// tryEnqueue appends the given operation. mu must be locked by
// tryEnqueue's caller.
func (o *operations) tryEnqueue(op operation) {
	if op == nil {
		return
	}
	o.ops.PushBack(op)

	if o.busyCh == nil {
		o.busyCh = make(chan struct{})
		go o.start()
	}
}

// IsEmpty checks if there are tasks in the queue.
func (o *operations) IsEmpty() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.ops.Len() == 0
}

// Done blocks until all currently enqueued operations are finished
// executing. For more complex synchronization, use Enqueue directly.
func (o *operations) Done() {
	var wg sync.WaitGroup
	wg.Add(1)
	o.Enqueue(func() {
		wg.Done()
	})
	wg.Wait()
}

func (o *operations) pop() func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ops.Len() == 0 {
		return nil
	}

	e := o.ops.Front()
	o.ops.Remove(e)
	if op, ok := e.Value.(operation); ok {
		return op
	}

	return nil
}

func (o *operations) start() {
	o.dispatchID.Store(util.GoroutineID())
	defer func() {
		o.dispatchID.Store(0)
		o.mu.Lock()
		defer o.mu.Unlock()
		close(o.busyCh)

		if o.ops.Len() == 0 {
			o.busyCh = nil

			return
		}

		// either a new operation was enqueued while we
		// were busy, or an operation panicked
		o.busyCh = make(chan struct{})
		go o.start()
	}()

	fn := o.pop()
	for fn != nil {
		fn()
		fn = o.pop()
	}

	if !o.fireNegotiationNeededOnEmptyChain.Load() {
		return
	}
	o.fireNegotiationNeededOnEmptyChain.Store(false)
	o.onNegotiationNeeded()
}
