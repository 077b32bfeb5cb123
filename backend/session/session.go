// Package session tracks per-user study timers. A timer is a small state
// machine (stopped, running, paused) held in memory; only the final elapsed
// time is persisted, by the caller, when the timer stops.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Timer states.
const (
	StateStopped = "stopped"
	StateRunning = "running"
	StatePaused  = "paused"
)

var (
	ErrAlreadyActive = errors.New("a study session is already active")
	ErrNotRunning    = errors.New("no running study session")
	ErrNotPaused     = errors.New("no paused study session")
	ErrNotActive     = errors.New("no active study session")
)

// Clock abstracts time.Now for tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// RealClock returns a Clock backed by time.Now.
func RealClock() Clock { return realClock{} }

// Info is a timer snapshot returned to callers.
type Info struct {
	SessionID     string `json:"sessionId"`
	State         string `json:"state"`
	ElapsedMillis int64  `json:"elapsedMs"`
}

type timer struct {
	id      string
	state   string
	start   time.Time     // rebased start while running
	elapsed time.Duration // frozen total while paused
}

// Manager holds one timer per user.
type Manager struct {
	mu     sync.Mutex
	clock  Clock
	timers map[uint]*timer
}

func NewManager(clock Clock) *Manager {
	return &Manager{clock: clock, timers: make(map[uint]*timer)}
}

// Start begins a fresh session. Fails when one is already running or
// paused; Stop must be called first.
func (m *Manager) Start(userID uint) (Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.timers[userID]; ok {
		return Info{}, ErrAlreadyActive
	}
	t := &timer{
		id:    uuid.NewString(),
		state: StateRunning,
		start: m.clock.Now(),
	}
	m.timers[userID] = t
	return m.info(t), nil
}

// Pause freezes the running timer at its current elapsed time.
func (m *Manager) Pause(userID uint) (Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.timers[userID]
	if !ok || t.state != StateRunning {
		return Info{}, ErrNotRunning
	}
	t.elapsed = m.clock.Now().Sub(t.start)
	t.state = StatePaused
	return m.info(t), nil
}

// Resume continues a paused timer. The start time is rebased so elapsed
// time picks up exactly where the pause left it.
func (m *Manager) Resume(userID uint) (Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.timers[userID]
	if !ok || t.state != StatePaused {
		return Info{}, ErrNotPaused
	}
	t.start = m.clock.Now().Add(-t.elapsed)
	t.state = StateRunning
	return m.info(t), nil
}

// Stop ends the session, whether running or paused, and returns the final
// elapsed milliseconds for the caller to persist.
func (m *Manager) Stop(userID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.timers[userID]
	if !ok {
		return 0, ErrNotActive
	}
	delete(m.timers, userID)
	return m.elapsed(t).Milliseconds(), nil
}

// Status reports the current timer. A user with no timer gets a stopped
// zero-elapsed snapshot rather than an error.
func (m *Manager) Status(userID uint) Info {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.timers[userID]
	if !ok {
		return Info{State: StateStopped}
	}
	return m.info(t)
}

func (m *Manager) elapsed(t *timer) time.Duration {
	if t.state == StateRunning {
		return m.clock.Now().Sub(t.start)
	}
	return t.elapsed
}

func (m *Manager) info(t *timer) Info {
	return Info{
		SessionID:     t.id,
		State:         t.state,
		ElapsedMillis: m.elapsed(t).Milliseconds(),
	}
}
