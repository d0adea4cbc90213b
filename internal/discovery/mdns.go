package discovery

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type the player advertises.
	ServiceType = "_lcdradio._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for player discovery
	DefaultScanTimeout = 10 * time.Second

	// DefaultPort is the player's default event stream port
	DefaultPort = 8002
)

// Scanner handles mDNS player discovery
type Scanner struct {
	// Timeout is the maximum time to wait for discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan discovers all players advertising on the local network. It blocks
// for the full timeout and returns every candidate seen.
func (s *Scanner) Scan(ctx context.Context) ([]*Player, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	players := make([]*Player, 0)
	done := make(chan struct{})

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		defer close(done)
		for entry := range entries {
			player := parseServiceEntry(entry)
			if player != nil {
				players = append(players, player)
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	<-done

	return players, nil
}

// First discovers the first player to answer, or fails after the timeout.
func (s *Scanner) First(ctx context.Context) (*Player, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Player, 1)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			player := parseServiceEntry(entry)
			if player != nil {
				select {
				case found <- player:
				default:
				}
				cancel()
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case player := <-found:
		return player, nil
	case <-ctx.Done():
		select {
		case player := <-found:
			return player, nil
		default:
		}
		return nil, fmt.Errorf("no player found within timeout")
	}
}

// parseServiceEntry converts a zeroconf service entry to a Player.
// Returns nil for entries carrying no usable address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Player {
	// Prefer IPv4
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	return &Player{
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		DiscoveredAt: time.Now(),
	}
}

// Player is a discovered player process on the network.
type Player struct {
	// Hostname is the mDNS hostname (e.g., "radio.local.")
	Hostname string

	// IP is the address to connect to
	IP string

	// Port is the event stream port
	Port int

	// DiscoveredAt is when the player was discovered
	DiscoveredAt time.Time
}

// Address returns the host:port to dial.
func (p *Player) Address() string {
	return net.JoinHostPort(p.IP, strconv.Itoa(p.Port))
}

// String returns a human-readable description of the player.
func (p *Player) String() string {
	return fmt.Sprintf("Player %s at %s", p.Hostname, p.Address())
}
