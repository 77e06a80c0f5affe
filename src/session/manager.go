package session

import (
	"sync"

	"www.github.com/Wanderer0074348/SheetGrader/src/cache"
	"www.github.com/Wanderer0074348/SheetGrader/src/models"
)

// Manager holds one result cache per live session. The cache.Store itself is
// a plain owned value; the manager is the single place that serializes access
// to it, so concurrent requests on the same session cannot race.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*cache.Store
}

func NewManager() *Manager {
	return &Manager{stores: make(map[string]*cache.Store)}
}

func (m *Manager) storeFor(sessionID string) *cache.Store {
	store, ok := m.stores[sessionID]
	if !ok {
		store = cache.NewStore()
		m.stores[sessionID] = store
	}
	return store
}

// Lookup returns the cached entry for (session, key) if present.
func (m *Manager) Lookup(sessionID string, key cache.Key) (cache.Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeFor(sessionID).Lookup(key)
}

// Put stores a successful evaluation under (session, key).
func (m *Manager) Put(sessionID string, key cache.Key, entry cache.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeFor(sessionID).Put(key, entry)
}

// Entries returns list-view summaries of everything cached for the session.
func (m *Manager) Entries(sessionID string) []models.EvaluationSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	store := m.storeFor(sessionID)
	summaries := make([]models.EvaluationSummary, 0, store.Len())
	for _, key := range store.Keys() {
		entry, ok := store.Lookup(key)
		if !ok {
			continue
		}
		summary := models.EvaluationSummary{
			CacheKey:  string(key),
			Filename:  entry.Filename,
			Mode:      entry.Mode,
			CreatedAt: entry.CreatedAt,
		}
		if entry.Evaluation != nil {
			summary.TotalMarksAwarded = entry.Evaluation.TotalMarksAwarded
			summary.TotalMaxMarks = entry.Evaluation.TotalMaxMarks
			summary.OverallGrade = entry.Evaluation.OverallGrade
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// Len reports how many entries the session has cached.
func (m *Manager) Len(sessionID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeFor(sessionID).Len()
}

// ClearSession empties the session's cache (the explicit "clear" action).
func (m *Manager) ClearSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if store, ok := m.stores[sessionID]; ok {
		store.Clear()
	}
}

// Drop releases the session's cache entirely (session end).
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sessionID)
}
