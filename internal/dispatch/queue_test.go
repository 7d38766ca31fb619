package dispatch

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialQueue_FIFO(t *testing.T) {
	q := NewSerialQueue(nil)

	var got []int
	for i := 0; i < 100; i++ {
		q.Schedule(func() { got = append(got, i) })
	}
	q.Close()

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestSerialQueue_NoOverlap(t *testing.T) {
	q := NewSerialQueue(nil)

	var (
		running  int32
		overlaps int32
		ran      int32
		wg       sync.WaitGroup
	)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				q.Schedule(func() {
					if atomic.AddInt32(&running, 1) > 1 {
						atomic.AddInt32(&overlaps, 1)
					}
					time.Sleep(50 * time.Microsecond)
					atomic.AddInt32(&running, -1)
					atomic.AddInt32(&ran, 1)
				})
			}
		}()
	}
	wg.Wait()
	q.Close()

	assert.Equal(t, int32(0), overlaps)
	assert.Equal(t, int32(200), ran)
}

func TestSerialQueue_PerProducerOrder(t *testing.T) {
	q := NewSerialQueue(nil)

	var mu sync.Mutex
	seen := map[int][]int{}
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				q.Schedule(func() {
					mu.Lock()
					seen[p] = append(seen[p], i)
					mu.Unlock()
				})
			}
		}(p)
	}
	wg.Wait()
	q.Close()

	for p := 0; p < 4; p++ {
		require.Len(t, seen[p], 50)
		for i, v := range seen[p] {
			assert.Equal(t, i, v, "producer %d", p)
		}
	}
}

func TestSerialQueue_ClosureSchedulesMore(t *testing.T) {
	q := NewSerialQueue(nil)

	done := make(chan struct{})
	var order []string
	q.Schedule(func() {
		order = append(order, "outer")
		q.Schedule(func() {
			order = append(order, "inner")
			close(done)
		})
		order = append(order, "outer-end")
	})

	<-done
	q.Close()
	assert.Equal(t, []string{"outer", "outer-end", "inner"}, order)
}

func TestSerialQueue_RecoversPanics(t *testing.T) {
	q := NewSerialQueue(nil)

	ran := false
	q.Schedule(func() { panic("boom") })
	q.Schedule(func() { ran = true })
	q.Close()

	assert.True(t, ran)
}

func TestSerialQueue_DropsAfterClose(t *testing.T) {
	q := NewSerialQueue(nil)
	q.Close()

	ran := false
	q.Schedule(func() { ran = true })
	q.Close()

	assert.False(t, ran)
}

func TestManualQueue(t *testing.T) {
	q := NewManualQueue()
	assert.False(t, q.RunNext())

	var got []int
	q.Schedule(func() { got = append(got, 1) })
	q.Schedule(func() {
		got = append(got, 2)
		q.Schedule(func() { got = append(got, 3) })
	})
	assert.Equal(t, 2, q.Len())
	assert.Empty(t, got)

	require.True(t, q.RunNext())
	assert.Equal(t, []int{1}, got)

	assert.Equal(t, 2, q.Drain())
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, 0, q.Len())
}
