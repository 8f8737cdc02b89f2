package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/example/ninegrid/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement the interfaces
var (
	_ secondary.Surface       = (*mockSurface)(nil)
	_ secondary.KeyValueStore = (*mockStore)(nil)
	_ secondary.ActivityLog   = (*mockActivityLog)(nil)
	_ secondary.Scheduler     = (*manualScheduler)(nil)
)

// mockSurface implements secondary.Surface and records every call.
type mockSurface struct {
	mu         sync.Mutex
	tiles      map[string]bool
	pulses     []string
	tones      int
	background bool
	bgReveals  int
	modal      bool
	modalShows int
	opened     []string
	openErr    error
}

func newMockSurface() *mockSurface {
	return &mockSurface{tiles: make(map[string]bool)}
}

func (m *mockSurface) SetTileCompleted(ctx context.Context, tileID string, completed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tiles[tileID] = completed
	return nil
}

func (m *mockSurface) Pulse(ctx context.Context, tileID string, tone bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pulses = append(m.pulses, tileID)
	if tone {
		m.tones++
	}
	return nil
}

func (m *mockSurface) SetBackgroundVisible(ctx context.Context, visible bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.background = visible
	if visible {
		m.bgReveals++
	}
	return nil
}

func (m *mockSurface) SetModalVisible(ctx context.Context, visible bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modal = visible
	if visible {
		m.modalShows++
	}
	return nil
}

func (m *mockSurface) Open(ctx context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.openErr != nil {
		return m.openErr
	}
	m.opened = append(m.opened, url)
	return nil
}

func (m *mockSurface) openedURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.opened))
	copy(out, m.opened)
	return out
}

func (m *mockSurface) modalState() (visible bool, shows int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modal, m.modalShows
}

// mockStore implements secondary.KeyValueStore with a map.
// setErr applies to every key, or only to setErrKey when that is set.
type mockStore struct {
	mu        sync.Mutex
	values    map[string]string
	getErr    error
	setErr    error
	setErrKey string
}

func newMockStore() *mockStore {
	return &mockStore{values: make(map[string]string)}
}

func (m *mockStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil && (m.setErrKey == "" || m.setErrKey == key) {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *mockStore) value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// mockActivityLog implements secondary.ActivityLog in memory.
type mockActivityLog struct {
	mu        sync.Mutex
	records   []*secondary.ActivityRecord
	recordErr error
	listErr   error

	lastFilters secondary.ActivityFilters
}

func (m *mockActivityLog) Record(ctx context.Context, entry *secondary.ActivityRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return m.recordErr
	}
	m.records = append(m.records, entry)
	return nil
}

func (m *mockActivityLog) List(ctx context.Context, filters secondary.ActivityFilters) ([]*secondary.ActivityRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.lastFilters = filters
	var result []*secondary.ActivityRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		r := m.records[i]
		if filters.Action != "" && r.Action != filters.Action {
			continue
		}
		if filters.TileID != "" && r.TileID != filters.TileID {
			continue
		}
		result = append(result, r)
		if filters.Limit > 0 && len(result) == filters.Limit {
			break
		}
	}
	return result, nil
}

func (m *mockActivityLog) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.records))
	for i, r := range m.records {
		out[i] = r.Action
	}
	return out
}

// manualScheduler implements secondary.Scheduler on a virtual clock that
// only moves when Advance is called. Due callbacks run on the caller's goroutine.
type manualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	s       *manualScheduler
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (m *manualScheduler) AfterFunc(d time.Duration, f func()) secondary.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{s: m, at: m.now + d, f: f}
	m.timers = append(m.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward and runs every callback that became due.
func (m *manualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due []*manualTimer
	for _, t := range m.timers {
		if !t.fired && !t.stopped && t.at <= m.now {
			t.fired = true
			due = append(due, t)
		}
	}
	m.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}
