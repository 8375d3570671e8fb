// Package app wires dreamwall's components together and implements the
// command entry points.
//
// # Composition
//
// New loads config.toml, opens the rotating log, and builds:
//
//	settings.Store ──┐
//	Pipeline ────────┼──> refresh.Engine ──> state.Store ──> ui.Model
//	  catalog        │
//	  imagegen.Client│
//	  wallpaper.Setter
//
// Pipeline is the engine's Cycler. One cycle builds a prompt from the
// persisted selections and custom prompt (a one-off override from the
// command line wins over both), fetches an image
// sized to the screen, writes it to the data directory and applies it.
//
// # Modes
//
//   - RunTUI: resumes the schedule in the background and runs the terminal UI
//   - RunDaemon: resumes, turns auto-refresh on and blocks until cancelled or
//     until auto-refresh is switched off elsewhere
//   - Generate: a single cycle, then exit
//   - Preview, Status, SetAuto: read or edit persisted state only
//
// RunTUI and RunDaemon hold the instance lock so that only one process ever
// runs a refresh loop against the same data directory.
package app
