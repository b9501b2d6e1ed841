package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/4oBuko/spy-cat-console/internal/metrics"
	"github.com/4oBuko/spy-cat-console/internal/models"
	"github.com/google/uuid"
)

type SessionRepository interface {
	// Use runs fn with the session identified by id, holding that session's
	// lock. An empty or unknown id starts a new session. The returned id is
	// the one fn ran against.
	Use(ctx context.Context, id string, fn func(*models.Session) error) (string, error)
	EvictIdle(now time.Time) int
	Len() int
}

type sessionEntry struct {
	mu      sync.Mutex
	session *models.Session
	// lastSeen is guarded by the repository lock, not mu.
	lastSeen time.Time
}

type InMemorySessionRepository struct {
	mu          sync.Mutex
	sessions    map[string]*sessionEntry
	idleTimeout time.Duration
	now         func() time.Time
	metrics     *metrics.Metrics
}

func NewInMemorySessionRepository(idleTimeout time.Duration, m *metrics.Metrics) *InMemorySessionRepository {
	return &InMemorySessionRepository{
		sessions:    make(map[string]*sessionEntry),
		idleTimeout: idleTimeout,
		now:         time.Now,
		metrics:     m,
	}
}

func (r *InMemorySessionRepository) Use(ctx context.Context, id string, fn func(*models.Session) error) (string, error) {
	if err := ctx.Err(); err != nil {
		return id, err
	}
	entry := r.acquire(id)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.session.LastSeen = r.now()
	return entry.session.Id, fn(entry.session)
}

func (r *InMemorySessionRepository) acquire(id string) *sessionEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if entry, ok := r.sessions[id]; ok && id != "" {
		entry.lastSeen = now
		return entry
	}
	newId := uuid.NewString()
	entry := &sessionEntry{session: models.NewSession(newId, now), lastSeen: now}
	r.sessions[newId] = entry
	r.updateGauge()
	return entry
}

// EvictIdle drops sessions not seen within the idle timeout and returns how
// many were removed.
func (r *InMemorySessionRepository) EvictIdle(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, entry := range r.sessions {
		if now.Sub(entry.lastSeen) <= r.idleTimeout {
			continue
		}
		// Sessions in use are left for the next sweep.
		if !entry.mu.TryLock() {
			continue
		}
		entry.mu.Unlock()
		delete(r.sessions, id)
		evicted++
	}
	if r.metrics != nil && evicted > 0 {
		r.metrics.SessionsEvicted.Add(float64(evicted))
	}
	r.updateGauge()
	return evicted
}

func (r *InMemorySessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// RunJanitor evicts idle sessions every interval until ctx is done.
func (r *InMemorySessionRepository) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.EvictIdle(r.now())
		}
	}
}

func (r *InMemorySessionRepository) updateGauge() {
	if r.metrics != nil {
		r.metrics.ActiveSessions.Set(float64(len(r.sessions)))
	}
}
