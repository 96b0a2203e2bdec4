// Package masterlock implements thermod's single condition variable —
// the "masterlock" of spec.md §5 — guarding the TimeTable, the
// actuator state as observed by the daemon, and the cycle's intent to
// sleep. It follows the channel-based alternative spec.md §9 describes
// for a goroutine control cycle: a generation channel swapped out on
// every Notify so a WaitTimeout can never miss a wakeup that happened
// while it held the lock.
package masterlock

import (
	"sync"
	"time"
)

// MasterLock serialises access to shared daemon state and lets the
// control cycle block until either a timeout elapses or a mutating
// socket handler calls Notify.
type MasterLock struct {
	mu       sync.Mutex
	notifyCh chan struct{}
}

// New returns a ready-to-use MasterLock.
func New() *MasterLock {
	return &MasterLock{notifyCh: make(chan struct{})}
}

// Lock acquires the master lock.
func (m *MasterLock) Lock() { m.mu.Lock() }

// Unlock releases the master lock.
func (m *MasterLock) Unlock() { m.mu.Unlock() }

// Notify wakes any goroutine currently inside WaitTimeout. The caller
// MUST hold the lock when calling Notify — that is what guarantees the
// wakeup is never lost: a waiter can only be asleep while the lock is
// released by WaitTimeout itself, so a Notify issued under the lock
// always lands either before the waiter sleeps or while it is asleep.
func (m *MasterLock) Notify() {
	close(m.notifyCh)
	m.notifyCh = make(chan struct{})
}

// WaitTimeout releases the lock, waits for either a Notify or the
// timeout to elapse, then reacquires the lock before returning.
// Returns true if woken by Notify, false if woken by timeout.
func (m *MasterLock) WaitTimeout(timeout time.Duration) (woken bool) {
	ch := m.notifyCh
	m.mu.Unlock()
	defer m.mu.Lock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ch:
		return true
	case <-timer.C:
		return false
	}
}
