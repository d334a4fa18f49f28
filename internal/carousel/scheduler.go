package carousel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/matt-dz/tastetribe/internal/log"
)

const DefaultPeriod = 5 * time.Second

// Option configures the scheduler.
type Option func(*Scheduler)

// WithPeriod sets the auto-advance period.
func WithPeriod(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.period = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Scheduler owns a carousel State and advances it on a timer while running.
// The timer restarts whenever the page count changes, and each tick applies
// to the state current at fire time.
type Scheduler struct {
	period time.Duration
	logger *slog.Logger

	mu        sync.Mutex
	state     State
	listeners []func(State)
	running   bool
	cancel    context.CancelFunc
	done      chan struct{}
	reset     chan struct{}
}

// NewScheduler creates a stopped scheduler starting at initial.
func NewScheduler(initial State, opts ...Option) *Scheduler {
	s := &Scheduler{
		period: DefaultPeriod,
		logger: log.NullLogger(),
		state:  initial,
		reset:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers fn to be called with every new state. Callbacks run on
// the goroutine that caused the change and must not call Dispatch.
func (s *Scheduler) OnChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies e and returns the resulting state.
func (s *Scheduler) Dispatch(e Event) State {
	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, e)
	s.state = next
	if next.PageCount != prev.PageCount {
		select {
		case s.reset <- struct{}{}:
		default:
		}
	}
	var listeners []func(State)
	if next != prev {
		listeners = append(listeners, s.listeners...)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return next
}

// Start begins auto-advance. Non-blocking.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.logger.WarnContext(ctx, "carousel scheduler already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.loop(childCtx, s.done)

	s.logger.DebugContext(ctx, "carousel scheduler started", slog.Duration("period", s.period))
}

// Stop halts auto-advance and waits for the timer goroutine to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel, done := s.cancel, s.done
	s.running = false
	s.mu.Unlock()

	cancel()
	<-done
	s.logger.Debug("carousel scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.reset:
			ticker.Reset(s.period)
		case <-ticker.C:
			s.Dispatch(Tick{})
		}
	}
}
