// Package state provides thread-safe status sharing for dreamwall.
//
// # Overview
//
// The refresh engine writes its phase, the single human-readable status line
// and the outcome of each cycle here; the UI polls Snapshot at its own rate.
// Only the latest outcome is kept. There is no error history.
//
//	Producer (refresh.Engine):      Consumer (ui.Model):
//	┌──────────────────────┐       ┌──────────────────┐
//	│ SetPhase()           │       │                  │
//	│ RecordCycle()        │──────→│ store.Snapshot() │
//	│ SetNextUpdate()      │(mutex)│ render status    │
//	└──────────────────────┘       └──────────────────┘
//
// # Thread Safety
//
// All methods take the Store's RWMutex. Snapshot returns a copy, with the
// last error re-wrapped so callers cannot hold the stored instance.
//
// # Phases
//
//   - Idle: auto-refresh disabled, no loop running
//   - Armed: loop running, waiting for the due-time
//   - Running: a generate-and-set cycle is in progress
package state
