// Lcdradio drives a 20x4 character LCD showing the state of a remote
// radio player.
//
// It connects to the player's event stream, folds state diffs into a
// local model, and renders it through a widget tree onto the display. On
// a development machine the display is a terminal stand-in.
//
// Usage:
//
//	lcdradio run [flags]
//
// See 'lcdradio run --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcdradio/lcdradio/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lcdradio",
	Short: "LCD screen driver for a remote radio player",
	Long: `A screen driver that mirrors a remote radio player onto a 20x4
character LCD.

The driver subscribes to the player's event stream, applies state diffs
to a local model and repaints a widget tree after every event. Without a
physical panel it renders the grid in the terminal, which makes it usable
for development and for keeping an eye on a headless player.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(versionCmd)
}
