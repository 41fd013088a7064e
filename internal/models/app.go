package models

// AppModel represents the UI state - only local UI concerns.
// Everything about the dispatch cycle comes from the core as a Snapshot.
type AppModel struct {
	Core        Snapshot // Latest snapshot from core
	Status      string   // Status bar text
	Width       int      // Terminal width
	Height      int      // Terminal height
	ServiceUp   bool     // Whether the quick action service is running
	Hidden      bool     // Overlay collapsed to the idle line
	LocalNotice string   // Transient UI-only notice (e.g. bus errors)
}
