package ui

import (
	"context"
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/lcdradio/lcdradio/internal/display"
	"github.com/lcdradio/lcdradio/internal/geometry"
)

// Terminal is a character display backed by the user's terminal. It is
// safe to write to from the driver goroutine while Run renders it.
type Terminal struct {
	mu      sync.Mutex
	grid    *display.Grid
	program *tea.Program
}

// NewTerminal creates an empty terminal display.
func NewTerminal() *Terminal {
	return &Terminal{grid: display.NewGrid()}
}

// Clear implements display.CharacterDisplay.
func (t *Terminal) Clear() {
	t.mu.Lock()
	t.grid.Clear()
	t.notifyLocked()
	t.mu.Unlock()
}

// MoveCursor implements display.CharacterDisplay.
func (t *Terminal) MoveCursor(pos geometry.Pos) {
	t.mu.Lock()
	t.grid.MoveCursor(pos)
	t.mu.Unlock()
}

// WriteChar implements display.CharacterDisplay.
func (t *Terminal) WriteChar(c rune) {
	t.mu.Lock()
	t.grid.WriteChar(c)
	t.notifyLocked()
	t.mu.Unlock()
}

// Rows returns a copy of the current screen contents.
func (t *Terminal) Rows() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.grid.Rows()
}

func (t *Terminal) notifyLocked() {
	if t.program != nil {
		// Send never blocks once the program is running.
		go t.program.Send(refreshMsg{})
	}
}

// IsInteractive reports whether stdout is a terminal capable of hosting
// the display.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Run hosts the display in the terminal until the user quits or ctx is
// cancelled.
func (t *Terminal) Run(ctx context.Context) error {
	if !IsInteractive() {
		return fmt.Errorf("stdout is not a terminal")
	}

	program := tea.NewProgram(newModel(t), tea.WithContext(ctx))

	t.mu.Lock()
	t.program = program
	t.mu.Unlock()

	_, err := program.Run()
	if err == tea.ErrProgramKilled && ctx.Err() != nil {
		// Context cancellation is a normal shutdown, not a failure.
		return nil
	}
	return err
}
