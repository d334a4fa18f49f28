package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/matt-dz/tastetribe/internal/log"
)

var (
	ErrScreenNotFound = errors.New("screen not found")
	ErrTooManyScreens = errors.New("too many screens")
)

// Screen is anything a Registry can hold.
type Screen interface {
	Close()
}

type mounted struct {
	screen   Screen
	owner    string
	lastUsed time.Time
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithTTL unmounts screens that have not been looked up for d. Zero keeps
// screens until they are unmounted.
func WithTTL(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.ttl = d
		}
	}
}

// WithMaxScreens caps the number of mounted screens. Zero means no cap.
func WithMaxScreens(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.maxScreens = n
		}
	}
}

func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Registry keeps mounted screens by id until they are unmounted or sit idle
// for longer than the TTL. Each screen belongs to the viewer that mounted it
// and is invisible to everyone else.
type Registry struct {
	ttl        time.Duration
	maxScreens int
	logger     *slog.Logger

	mu      sync.Mutex
	screens map[ulid.ULID]*mounted
	closed  bool
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		logger:  log.NullLogger(),
		screens: make(map[ulid.ULID]*mounted),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mount stores s on behalf of owner and returns its id. Anonymous viewers
// mount with an empty owner.
func (r *Registry) Mount(owner string, s Screen) (ulid.ULID, error) {
	now := time.Now()
	expired := r.sweep(now)
	defer closeAll(expired)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ulid.ULID{}, ErrClosed
	}
	if r.maxScreens > 0 && len(r.screens) >= r.maxScreens {
		return ulid.ULID{}, ErrTooManyScreens
	}
	id := ulid.Make()
	r.screens[id] = &mounted{screen: s, owner: owner, lastUsed: now}
	return id, nil
}

// Lookup returns the screen mounted under id if owner mounted it and it has
// type T. A hit resets the screen's idle time.
func Lookup[T Screen](r *Registry, id ulid.ULID, owner string) (T, error) {
	r.mu.Lock()
	m, ok := r.screens[id]
	if ok && m.owner == owner {
		m.lastUsed = time.Now()
	}
	r.mu.Unlock()

	var zero T
	if !ok || m.owner != owner {
		return zero, ErrScreenNotFound
	}
	t, ok := m.screen.(T)
	if !ok {
		return zero, fmt.Errorf("screen %s has type %T: %w", id, m.screen, ErrScreenNotFound)
	}
	return t, nil
}

// Unmount removes and closes the screen owner mounted under id.
func (r *Registry) Unmount(id ulid.ULID, owner string) error {
	r.mu.Lock()
	m, ok := r.screens[id]
	if ok && m.owner == owner {
		delete(r.screens, id)
	}
	r.mu.Unlock()

	if !ok || m.owner != owner {
		return ErrScreenNotFound
	}
	m.screen.Close()
	return nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.screens)
}

// Sweep unmounts every screen idle since before now minus the TTL and
// returns how many it closed.
func (r *Registry) Sweep(now time.Time) int {
	expired := r.sweep(now)
	closeAll(expired)
	if len(expired) > 0 {
		r.logger.Debug("unmounted idle screens", slog.Int("count", len(expired)))
	}
	return len(expired)
}

func (r *Registry) sweep(now time.Time) []Screen {
	if r.ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []Screen
	for id, m := range r.screens {
		if now.Sub(m.lastUsed) >= r.ttl {
			delete(r.screens, id)
			expired = append(expired, m.screen)
		}
	}
	return expired
}

// Run sweeps idle screens every half TTL until ctx is done. Without a TTL it
// only waits for ctx.
func (r *Registry) Run(ctx context.Context) {
	if r.ttl <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(r.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(time.Now())
		}
	}
}

// Close unmounts every screen. Later mounts fail with ErrClosed.
func (r *Registry) Close() {
	r.mu.Lock()
	screens := make([]Screen, 0, len(r.screens))
	for _, m := range r.screens {
		screens = append(screens, m.screen)
	}
	r.screens = make(map[ulid.ULID]*mounted)
	r.closed = true
	r.mu.Unlock()

	closeAll(screens)
}

func closeAll(screens []Screen) {
	for _, s := range screens {
		s.Close()
	}
}
