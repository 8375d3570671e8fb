package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/dreamwall/internal/failure"
)

// Phase is the refresh engine's lifecycle state.
type Phase int

const (
	// Idle: auto-refresh disabled, no loop running.
	Idle Phase = iota
	// Armed: loop running and waiting for the due-time.
	Armed
	// Running: a generate-and-set cycle is in progress.
	Running
)

func (p Phase) String() string {
	switch p {
	case Armed:
		return "armed"
	case Running:
		return "running"
	default:
		return "idle"
	}
}

// SuccessStatus is reported after a cycle applies a new wallpaper.
const SuccessStatus = "Wallpaper updated successfully."

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Phase               Phase
	Status              string
	NextUpdate          time.Time
	LastPrompt          string
	LastImage           string
	LastError           error
	LastKind            failure.Kind
	LastUpdated         time.Time
	ConsecutiveFailures int
}

// IsFailing returns true once several cycles in a row have failed.
func (s Snapshot) IsFailing() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetPhase records the engine phase.
func (s *Store) SetPhase(p Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Phase = p
}

// SetStatus overwrites the status line.
func (s *Store) SetStatus(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Status = text
	s.snapshot.LastUpdated = time.Now()
}

// SetNextUpdate records the persisted due-time; zero means unscheduled.
func (s *Store) SetNextUpdate(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.NextUpdate = t
}

// RecordCycle stores a cycle outcome. When err is non-nil the previous prompt
// and image are kept but the error is recorded for visibility.
func (s *Store) RecordCycle(prompt, image string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastKind = failure.KindOf(err)
		s.snapshot.Status = failure.Describe(err)
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.LastPrompt = prompt
	s.snapshot.LastImage = image
	s.snapshot.LastError = nil
	s.snapshot.LastKind = failure.Unknown
	s.snapshot.Status = SuccessStatus
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
