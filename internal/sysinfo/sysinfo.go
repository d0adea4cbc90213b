// Package sysinfo reads the host facts the screen shows: the CPU
// temperature and the machine's IPv4 address.
package sysinfo

import (
	"net"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/lcdradio/lcdradio/internal/logging"
	"github.com/lcdradio/lcdradio/internal/player"
)

const thermalZonePath = "/sys/class/thermal/thermal_zone0/temp"

// CPUTemperature reads the CPU temperature from the kernel's thermal
// pseudo-file on every call. Read or parse failures report the unknown
// temperature rather than failing the caller.
type CPUTemperature struct {
	// Path overrides the thermal pseudo-file, for tests. Empty means the
	// standard thermal zone.
	Path string
}

func (c CPUTemperature) Temperature() player.Temperature {
	path := c.Path
	if path == "" {
		path = thermalZonePath
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		logging.Warn("Failed to read CPU temperature", zap.Error(err))
		return player.TemperatureUnknown
	}

	temperature, err := parseMillidegrees(string(raw))
	if err != nil {
		logging.Warn("Failed to parse CPU temperature", zap.Error(err))
		return player.TemperatureUnknown
	}
	return temperature
}

// parseMillidegrees converts the kernel's millidegree reading to whole
// degrees, clamped to what fits a byte.
func parseMillidegrees(raw string) (player.Temperature, error) {
	milli, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return player.TemperatureUnknown, err
	}

	degrees := milli / 1000
	if degrees < 0 {
		degrees = 0
	}
	if degrees >= int(player.TemperatureUnknown) {
		degrees = int(player.TemperatureUnknown) - 1
	}
	return player.Temperature(degrees), nil
}

// FixedTemperature always reports the same value. It stands in for the
// thermal zone on machines without one.
type FixedTemperature player.Temperature

func (t FixedTemperature) Temperature() player.Temperature {
	return player.Temperature(t)
}

// LocalIPv4 returns the machine's last global unicast IPv4 address, or
// "No IP Address" when there is none. This is the identity string shown
// on the idle screen.
func LocalIPv4() string {
	interfaces, err := net.Interfaces()
	if err != nil {
		logging.Warn("Failed to list network interfaces", zap.Error(err))
		return "No IP Address"
	}

	last := ""
	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			network, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip := network.IP.To4()
			if ip == nil || !ip.IsGlobalUnicast() {
				continue
			}
			last = ip.String()
		}
	}

	if last == "" {
		return "No IP Address"
	}
	return last
}
