// Package logtail reads the end of dreamwall's log file for the TUI's
// activity pane.
//
// Read seeks from the end of the file in fixed-size chunks, so only the
// requested tail is loaded regardless of how large the log has grown. A
// missing file is not an error; the pane is simply empty until the first
// entry is written.
//
// Parse understands the text format written by internal/logging:
//
//	2024-10-10 14:32:15 INFO dreamwall: cycle finished prompt="misty forest"
//
// Lines in any other shape are kept verbatim with LevelNone.
package logtail
