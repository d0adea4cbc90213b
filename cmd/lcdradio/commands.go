package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lcdradio/lcdradio/internal/app"
	"github.com/lcdradio/lcdradio/internal/config"
	"github.com/lcdradio/lcdradio/internal/discovery"
	"github.com/lcdradio/lcdradio/internal/logging"
	"github.com/lcdradio/lcdradio/internal/sysinfo"
	"github.com/lcdradio/lcdradio/internal/ui"
	"github.com/lcdradio/lcdradio/internal/version"
)

// Run command and flags
var (
	configPath       string
	address          string
	transport        string
	retryMillis      int
	logLevel         string
	discover         bool
	discoverTimeout  int
	fixedTemperature int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the screen driver",
	Long: `Connect to the player and drive the display until the player
closes the connection or the user quits.

Settings come from the config file; flags override it. With --discover
(or an empty address) the player is located via mDNS first.`,
	Example: `  # Talk to a player on localhost
  lcdradio run

  # Talk to a specific player over TCP
  lcdradio run --address radio.local:8002

  # Find the player via mDNS
  lcdradio run --discover

  # Use the websocket transport
  lcdradio run --transport ws --address radio.local:8002

  # Development machine without a thermal zone
  lcdradio run --fixed-temperature 42 --log-level debug`,
	RunE: runScreen,
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: platform config directory)")
	runCmd.Flags().StringVar(&address, "address", "", "Player address (host:port, or URL for ws transport)")
	runCmd.Flags().StringVar(&transport, "transport", "", "Transport to the player: tcp or ws")
	runCmd.Flags().IntVar(&retryMillis, "retry-millis", 0, "Pause between connection attempts in milliseconds")
	runCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); empty = silent")
	runCmd.Flags().BoolVar(&discover, "discover", false, "Locate the player via mDNS before connecting")
	runCmd.Flags().IntVar(&discoverTimeout, "discover-timeout", 0, "mDNS browse timeout in seconds")
	runCmd.Flags().IntVar(&fixedTemperature, "fixed-temperature", -1, "Report this CPU temperature instead of reading the thermal zone")
}

func loadSettings() (*config.Settings, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

func runScreen(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	if address != "" {
		settings.Address = address
	}
	if transport != "" {
		settings.Transport = transport
	}
	if retryMillis > 0 {
		settings.RetryMillis = retryMillis
	}
	if logLevel != "" {
		settings.LogLevel = logLevel
	}
	if discover {
		settings.Discover = true
	}
	if discoverTimeout > 0 {
		settings.DiscoverTimeout = discoverTimeout
	}

	if err := logging.Initialize(settings.LogLevel); err != nil {
		return err
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if settings.Discover || settings.Address == "" {
		scanner := discovery.NewScanner()
		scanner.Timeout = time.Duration(settings.DiscoverTimeout) * time.Second
		player, err := scanner.First(ctx)
		if err != nil {
			return fmt.Errorf("discovering player: %w", err)
		}
		settings.Address = player.Address()
		logging.Info("Discovered player: " + player.String())
	}

	if !ui.IsInteractive() {
		return fmt.Errorf("stdout is not a terminal; the display needs one")
	}

	var temps app.TemperatureSource = sysinfo.CPUTemperature{}
	if fixedTemperature >= 0 {
		temps = sysinfo.FixedTemperature(fixedTemperature)
	}

	terminal := ui.NewTerminal()
	identity := sysinfo.LocalIPv4()

	options := app.Options{
		Address:       settings.Address,
		Transport:     settings.Transport,
		RetryInterval: settings.RetryInterval(),
	}

	driverCtx, cancelDriver := context.WithCancel(ctx)
	defer cancelDriver()

	driverDone := make(chan error, 1)
	go func() {
		driverDone <- app.Run(driverCtx, options, identity, temps, terminal)
	}()

	// The terminal keeps showing the final screen until the user quits.
	uiErr := terminal.Run(ctx)

	cancelDriver()
	if err := <-driverDone; err != nil {
		return err
	}
	return uiErr
}

// Discover command
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List players advertising on the local network",
	Long: `Browse for players via mDNS and print every candidate found
within the timeout.`,
	Example: `  # Browse with the default 10 second timeout
  lcdradio discover

  # Browse briefly
  lcdradio discover --timeout 3`,
	RunE: runDiscover,
}

var discoverScanTimeout int

func init() {
	discoverCmd.Flags().IntVar(&discoverScanTimeout, "timeout", 10, "Browse timeout in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	scanner := discovery.NewScanner()
	scanner.Timeout = time.Duration(discoverScanTimeout) * time.Second

	players, err := scanner.Scan(cmd.Context())
	if err != nil {
		return err
	}

	if len(players) == 0 {
		fmt.Println("No players found")
		return nil
	}
	for _, player := range players {
		fmt.Println(player)
	}
	return nil
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lcdradio %s (commit: %s)\n", version.Version, version.Commit)
	},
}
