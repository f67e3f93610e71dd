package web

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionGuardRejectsDuplicateKey(t *testing.T) {
	g := NewActionGuard()

	assert.True(t, g.TryAcquire("pay:9"))
	assert.False(t, g.TryAcquire("pay:9"))
	assert.True(t, g.TryAcquire("pay:10"), "different keys do not contend")

	g.Release("pay:9")
	assert.True(t, g.TryAcquire("pay:9"), "released key can be reacquired")
}

func TestActionGuardConcurrentSingleWinner(t *testing.T) {
	g := NewActionGuard()
	var wins int32
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryAcquire("order-status:1") {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
}
