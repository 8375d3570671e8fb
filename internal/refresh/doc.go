// Package refresh implements dreamwall's scheduled wallpaper refresh.
//
// The Engine owns a single polling loop. Each tick it re-reads the persisted
// settings, exits once auto-refresh is off, and runs a cycle when the
// persisted next-update time is absent or has passed. After every cycle,
// successful or not, the next due-time is rescheduled from the cycle's basis
// and saved.
//
// Cycles are serialized: the loop, RunNow and the startup Resume check never
// overlap. Disarming the loop cancels only the loop's own context, so a cycle
// already in progress runs to completion.
package refresh
