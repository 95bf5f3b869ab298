package session

import (
	"context"
	"sync"
	"time"

	"lifeplan/internal/form"
	"lifeplan/internal/recommendation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const cleanupInterval = 5 * time.Minute

type entry struct {
	form     *form.Form
	lastSeen time.Time
}

// Registry hands out the live form of each browser session. Forms idle for
// longer than ttl are dropped from memory; their last snapshot stays in the
// store until it expires there too.
type Registry struct {
	mu          sync.Mutex
	forms       map[string]*entry
	store       Store
	client      recommendation.Client
	logger      *zap.Logger
	ttl         time.Duration
	now         func() time.Time
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewRegistry(store Store, client recommendation.Client, logger *zap.Logger, ttl time.Duration) *Registry {
	r := &Registry{
		forms:       make(map[string]*entry),
		store:       store,
		client:      client,
		logger:      logger,
		ttl:         ttl,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	go r.cleanupLoop()
	return r
}

func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like one NewID produced.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Form returns the form for id, restoring it from the store or creating an
// empty one. The store is read without holding the registry lock so a slow
// backend only delays the session being restored.
func (r *Registry) Form(ctx context.Context, id string) *form.Form {
	if f, ok := r.lookup(id); ok {
		return f
	}

	f := form.New(r.client, r.logger.With(zap.String("session", id)))

	snap, ok, err := r.store.Get(ctx, id)
	if err != nil {
		r.logger.Warn("session restore failed", zap.String("session", id), zap.Error(err))
	}
	if ok {
		f.Restore(snap)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// another request for the same session may have won the race
	if e, ok := r.forms[id]; ok {
		e.lastSeen = r.now()
		return e.form
	}

	f.OnChange(func(s form.Snapshot) {
		// detached: completions outlive the request that started them
		if err := r.store.Set(context.Background(), id, s, r.ttl); err != nil {
			r.logger.Warn("session save failed", zap.String("session", id), zap.Error(err))
		}
	})

	r.forms[id] = &entry{form: f, lastSeen: r.now()}
	return f
}

func (r *Registry) lookup(id string) (*form.Form, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.forms[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.form, true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

func (r *Registry) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stopCleanup:
			return
		}
	}
}

func (r *Registry) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, e := range r.forms {
		if now.Sub(e.lastSeen) <= r.ttl {
			continue
		}
		// a pending submission keeps its form alive until it completes
		if e.form.Snapshot().Loading() {
			continue
		}
		delete(r.forms, id)
	}
}

func (r *Registry) Stop() {
	r.stopOnce.Do(func() { close(r.stopCleanup) })
}
