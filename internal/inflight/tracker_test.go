package inflight

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_LatestWins(t *testing.T) {
	tr := NewTracker()

	first := tr.Begin(TasksKey)
	second := tr.Begin(TasksKey)

	assert.False(t, tr.Current(first))
	assert.True(t, tr.Current(second))
}

func TestTracker_KeysAreIndependent(t *testing.T) {
	tr := NewTracker()

	list := tr.Begin(TasksKey)
	update := tr.Begin(TaskKey(7))

	assert.True(t, tr.Current(list))
	assert.True(t, tr.Current(update))
	assert.Equal(t, "task:7", update.Key)
}

func TestTracker_ChangedSince(t *testing.T) {
	tr := NewTracker()

	before := tr.Begin(TaskKey(1))
	list := tr.Begin(TasksKey)
	assert.False(t, tr.ChangedSince(TaskKey(1), list.Seq))
	assert.True(t, before.Seq < list.Seq)

	tr.Begin(TaskKey(1))
	assert.True(t, tr.ChangedSince(TaskKey(1), list.Seq))
	assert.False(t, tr.ChangedSince(TaskKey(2), list.Seq))
}

func TestTracker_Forget(t *testing.T) {
	tr := NewTracker()
	ticket := tr.Begin(TaskKey(3))
	tr.Forget(TaskKey(3))

	assert.False(t, tr.Current(ticket))
	assert.False(t, tr.ChangedSince(TaskKey(3), 0))
}

func TestTracker_Concurrent(t *testing.T) {
	tr := NewTracker()

	var wg sync.WaitGroup
	tickets := make(chan Ticket, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tickets <- tr.Begin(TasksKey)
		}()
	}
	wg.Wait()
	close(tickets)

	current := 0
	seen := map[uint64]bool{}
	for ticket := range tickets {
		assert.False(t, seen[ticket.Seq], "duplicate sequence %d", ticket.Seq)
		seen[ticket.Seq] = true
		if tr.Current(ticket) {
			current++
		}
	}
	assert.Equal(t, 1, current)
}
