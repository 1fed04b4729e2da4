// Package session keeps the per-client record views between requests.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
	"github.com/mamadbah2/retailsheet/internal/service/dataset"
	"github.com/mamadbah2/retailsheet/internal/service/filter"
)

// DefaultID is used for clients that do not send a session id.
const DefaultID = "default"

// ErrBusy is returned when an import, load or clear is already running on a view.
var ErrBusy = errors.New("another operation is already in progress")

// View is the state of one record kind for one session.
type View struct {
	mu         sync.RWMutex
	kind       models.Kind
	collection dataset.Collection
	criteria   filter.Criteria
	busy       bool
	loadedAt   time.Time
}

// Kind returns the record kind shown by the view.
func (v *View) Kind() models.Kind { return v.kind }

// Acquire marks the view busy. The returned func releases it and must be called once
// the operation finished.
func (v *View) Acquire() (func(), error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.busy {
		return nil, ErrBusy
	}
	v.busy = true

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			v.busy = false
			v.mu.Unlock()
		})
	}, nil
}

// Busy reports whether an operation holds the view.
func (v *View) Busy() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.busy
}

// SetCollection replaces the loaded records.
func (v *View) SetCollection(c dataset.Collection, at time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.collection = c
	v.loadedAt = at
}

// Reset drops the loaded records and the criteria.
func (v *View) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.collection = nil
	v.criteria = filter.Criteria{}
	v.loadedAt = time.Time{}
}

// Collection returns the loaded records, or nil when nothing was loaded yet.
func (v *View) Collection() dataset.Collection {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.collection
}

// LoadedAt returns when the records were last loaded.
func (v *View) LoadedAt() time.Time {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loadedAt
}

// SetCriteria stores the search query and field filter.
func (v *View) SetCriteria(c filter.Criteria) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.criteria = c
}

// Criteria returns the stored search query and field filter.
func (v *View) Criteria() filter.Criteria {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.criteria
}

// Filtered applies the stored criteria to the loaded records. It returns nil when
// nothing was loaded.
func (v *View) Filtered() dataset.Collection {
	v.mu.RLock()
	c, criteria := v.collection, v.criteria
	v.mu.RUnlock()

	if c == nil {
		return nil
	}
	return c.Filter(criteria)
}

type entry struct {
	views    map[models.Kind]*View
	lastSeen time.Time
}

// Manager handles the views of every session.
type Manager struct {
	sessions map[string]*entry
	mu       sync.Mutex
	now      func() time.Time
}

// NewManager creates a new session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// View returns the view of kind for the session, creating both when needed.
func (m *Manager) View(sessionID string, kind models.Kind) *View {
	if sessionID == "" {
		sessionID = DefaultID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[sessionID]
	if !ok {
		e = &entry{views: make(map[models.Kind]*View)}
		m.sessions[sessionID] = e
	}
	e.lastSeen = m.now()

	v, ok := e.views[kind]
	if !ok {
		v = &View{kind: kind}
		e.views[kind] = v
	}
	return v
}

// ClearSession removes a session and all of its views.
func (m *Manager) ClearSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Prune removes sessions idle for longer than maxIdle whose views are not busy. It
// returns how many sessions were removed.
func (m *Manager) Prune(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxIdle)
	removed := 0
	for id, e := range m.sessions {
		if e.lastSeen.After(cutoff) || e.busy() {
			continue
		}
		delete(m.sessions, id)
		removed++
	}
	return removed
}

func (e *entry) busy() bool {
	for _, v := range e.views {
		if v.Busy() {
			return true
		}
	}
	return false
}
