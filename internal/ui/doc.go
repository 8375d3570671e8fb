// Package ui implements dreamwall's terminal interface with Bubble Tea.
//
// # Layout
//
//	┌ dreamwall [ARMED] ⠋ ──────────────────────── Theme: Nightfox ┐
//	│ Status        Wallpaper updated successfully.                │
//	│ Next update   2024-01-01 10:30:00 (12 minutes from now)      │
//	│ Auto-refresh  on  every 30 minutes                           │
//	│ Selections    style Random · descriptor fog · category Space │
//	│ Custom prompt —                                              │
//	│ Last generated a nebula over a silent moon                   │
//	└──────────────────────────────────────────────────────────────┘
//	 Recent activity
//	 10:00:01 INFO cycle finished prompt=...
//	 g Generate now • a Toggle auto-refresh • e Edit settings • ...
//
// # Data Flow
//
// The model never blocks. A tick every PollTick fetches the state.Store
// snapshot, the persisted settings and the log tail in commands. Generate
// and auto-refresh toggles call the refresh engine from commands too, so a
// cycle in progress keeps the UI responsive; the engine reports progress and
// outcome on the shared status line.
//
// # Settings Form
//
// "e" opens a huh form over the selections, the free-text prompt and the
// refresh interval. Completing it saves all of them through the settings
// store; esc cancels without changes. "x" clears the saved free-text prompt
// so cycles fall back to the category.
//
// # Themes
//
// "T" cycles Nightfox, Kanagawa and Slate. The choice is stored in the
// settings document under "theme".
package ui
