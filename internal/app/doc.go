// Package app runs the screen driver: it connects to the player, merges
// the decoded message stream with a one-second tick stream, folds diffs
// into the player state, and repaints the widget tree after every event.
//
// The loop is single threaded. Connection reads happen on a helper
// goroutine, but all state mutation and painting happen in one place, so
// the display sees a consistent sequence of updates and exactly one paint
// per event.
package app
