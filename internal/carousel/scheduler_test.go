package carousel

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestScheduler_AutoAdvance(t *testing.T) {
	s := NewScheduler(NewState(2), WithPeriod(10*time.Millisecond))
	s.Dispatch(ItemsChanged{Count: 5})

	var (
		mu      sync.Mutex
		indexes []int
	)
	s.OnChange(func(st State) {
		mu.Lock()
		defer mu.Unlock()
		indexes = append(indexes, st.Index)
	})

	s.Start(context.Background())
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(indexes) >= 3
	}, time.Second, time.Millisecond)
	s.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2, 0}, indexes[:3])
}

func TestScheduler_StopHaltsTicks(t *testing.T) {
	s := NewScheduler(NewState(1), WithPeriod(5*time.Millisecond))
	s.Dispatch(ItemsChanged{Count: 1000})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return s.State().Index > 0 }, time.Second, time.Millisecond)
	s.Stop()

	idx := s.State().Index
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, idx, s.State().Index)

	// Stop is idempotent.
	s.Stop()
}

func TestScheduler_ContextCancelStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(NewState(1), WithPeriod(5*time.Millisecond))
	s.Start(ctx)
	s.Start(ctx)
	cancel()
	s.Stop()
}

func TestScheduler_OnChange(t *testing.T) {
	s := NewScheduler(NewState(2), WithPeriod(time.Hour))

	var (
		mu  sync.Mutex
		got []State
	)
	s.OnChange(func(st State) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, st)
	})

	s.Dispatch(ItemsChanged{Count: 5})
	s.Dispatch(JumpTo{Index: 9})
	s.Dispatch(JumpTo{Index: 1})
	s.Dispatch(Resize{PageSize: 0})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []State{
		{PageSize: 2, ItemCount: 5, PageCount: 3},
		{Index: 1, PageSize: 2, ItemCount: 5, PageCount: 3},
	}, got)
}

func TestScheduler_PageCountChangeRestartsTimer(t *testing.T) {
	const period = 200 * time.Millisecond

	type change struct {
		state State
		at    time.Time
	}
	var (
		mu      sync.Mutex
		changes []change
	)

	s := NewScheduler(NewState(2), WithPeriod(period))
	s.Dispatch(ItemsChanged{Count: 4})
	s.OnChange(func(st State) {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, change{state: st, at: time.Now()})
	})

	s.Start(context.Background())
	defer s.Stop()

	// Halfway through the period the page count goes from 2 to 3.
	time.Sleep(period / 2)
	changedAt := time.Now()
	s.Dispatch(ItemsChanged{Count: 6})

	mu.Lock()
	afterChange := len(changes)
	mu.Unlock()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(changes) > afterChange
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	tick := changes[afterChange]
	assert.GreaterOrEqual(t, tick.at.Sub(changedAt), period*9/10,
		"tick came %s after the page count changed", tick.at.Sub(changedAt))
	assert.Equal(t, State{Index: 1, PageSize: 2, ItemCount: 6, PageCount: 3}, tick.state)
}
