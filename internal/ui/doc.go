// Package ui renders the 20x4 character grid in a terminal, standing in
// for the physical LCD during development.
//
// The terminal display implements display.CharacterDisplay, so the screen
// driver writes to it exactly as it would write to the real panel. Writes
// land in an in-memory grid guarded by a mutex; the Bubble Tea program is
// only nudged to re-render, it never holds the driver up.
//
// # Usage Pattern
//
//	terminal := ui.NewTerminal()
//	go app.Run(ctx, opts, identity, temps, terminal)
//	if err := terminal.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package ui
