// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package negotiation

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestOperations() *operations {
	return newOperations(&atomic.Bool{}, func() {})
}

func TestOperations_Enqueue(t *testing.T) {
	ops := newTestOperations()
	for i := 0; i < 100; i++ {
		results := make([]int, 16)
		for i := range results {
			func(j int) {
				ops.Enqueue(func() {
					results[j] = j * j
				})
			}(i)
		}

		ops.Done()
		expected := []int{0, 1, 4, 9, 16, 25, 36, 49, 64, 81, 100, 121, 144, 169, 196, 225}
		assert.Equal(t, len(expected), len(results))
		assert.Equal(t, expected, results)
	}
}

func TestOperations_Done(*testing.T) {
	ops := newTestOperations()
	ops.Done()
}

func TestOperations_IsEmpty(t *testing.T) {
	ops := newTestOperations()
	assert.True(t, ops.IsEmpty())
}

func TestOperations_Invoke(t *testing.T) {
	ops := newTestOperations()

	ran := false
	ops.Invoke(func() { ran = true })
	assert.True(t, ran, "Invoke must block until the operation ran")
}

func TestOperations_InvokeFromOperationPanics(t *testing.T) {
	ops := newTestOperations()

	var recovered interface{}
	ops.Invoke(func() {
		defer func() { recovered = recover() }()
		ops.Invoke(func() {})
	})

	assert.NotNil(t, recovered, "nested Invoke must fail fast instead of deadlocking")
}

func TestOperations_NegotiationNeededFiresOnEmptyChain(t *testing.T) {
	flag := &atomic.Bool{}
	fired := make(chan struct{}, 1)
	ops := newOperations(flag, func() {
		fired <- struct{}{}
	})

	ops.Enqueue(func() { flag.Store(true) })

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		assert.Fail(t, "negotiation needed callback never fired")
	}

	assert.False(t, flag.Load(), "the flag must be consumed by the callback")
}

func TestOperations_NegotiationNeededNotFiredWhenFlagUnset(t *testing.T) {
	flag := &atomic.Bool{}
	var fired atomic.Bool
	ops := newOperations(flag, func() {
		fired.Store(true)
	})

	ops.Done()
	assert.False(t, fired.Load())
}
