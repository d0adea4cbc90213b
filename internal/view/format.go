// Package view builds the widget tree that lays the player state out on
// the 20x4 grid, along with the display formatting it uses.
package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lcdradio/lcdradio/internal/player"
	"github.com/lcdradio/lcdradio/internal/protocol"
)

// pingTempData is what the station view's status corner renders: the
// latest ping, alternating with the CPU temperature once pinging has
// finished.
type pingTempData struct {
	Ping            protocol.PingTimes
	Temperature     player.Temperature
	ShowTemperature bool
}

// formatShortRTT renders a round-trip time in at most 4 characters of
// milliseconds, falling back to whole seconds for pathological latencies.
func formatShortRTT(rtt time.Duration) string {
	if rtt.Seconds() > 99.9 {
		return strconv.FormatInt(int64(rtt.Seconds()), 10)
	}
	return fmt.Sprintf("%4.1f", rtt.Seconds()*1000)
}

func formatPingShort(d pingTempData) string {
	switch d.Ping.Kind {
	case protocol.PingBadURL:
		return "Bad URL"
	case protocol.PingGateway:
		if d.Ping.Gateway.Err != protocol.PingErrorNone {
			return "LPing " + d.Ping.Gateway.Err.String()
		}
		return fmt.Sprintf("LPing %sms", formatShortRTT(d.Ping.Gateway.RTT))
	case protocol.PingGatewayAndRemote:
		if d.Ping.Latest == protocol.PingTargetGateway {
			return fmt.Sprintf("LPing %sms", formatShortRTT(d.Ping.Gateway.RTT))
		}
		if d.Ping.Remote.Err != protocol.PingErrorNone {
			return "RPing " + d.Ping.Remote.Err.String()
		}
		return fmt.Sprintf("RPing %sms", formatShortRTT(d.Ping.Remote.RTT))
	case protocol.PingFinished:
		if d.ShowTemperature {
			return fmt.Sprintf("CPU Temp %dC", d.Temperature)
		}
		return fmt.Sprintf("LPing %sms", formatShortRTT(d.Ping.Gateway.RTT))
	default:
		return "No Ping Times"
	}
}

// formatPingLong is the full-line ping rendering used when no station is
// selected.
func formatPingLong(ping protocol.PingTimes) string {
	duration := func(prefix string, rtt time.Duration) string {
		return fmt.Sprintf("%s: %.1fms", prefix, rtt.Seconds()*1000)
	}

	switch ping.Kind {
	case protocol.PingBadURL:
		return "Bad URL"
	case protocol.PingGateway:
		if ping.Gateway.Err != protocol.PingErrorNone {
			return "Local: " + ping.Gateway.Err.String()
		}
		return duration("Gateway", ping.Gateway.RTT)
	case protocol.PingGatewayAndRemote:
		if ping.Latest == protocol.PingTargetGateway {
			return duration("Gateway", ping.Gateway.RTT)
		}
		if ping.Remote.Err != protocol.PingErrorNone {
			return "Remote: " + ping.Remote.Err.String()
		}
		return duration("Remote", ping.Remote.RTT)
	case protocol.PingFinished:
		return duration("Gateway", ping.Gateway.RTT)
	default:
		return "No Ping Times"
	}
}

// trackPositionData is the "track 3, 45 of 210" corner shown for stations
// that play finite tracks.
type trackPositionData struct {
	TrackIndex int
	Position   *time.Duration
	Duration   *time.Duration
}

func digitsFor(n int) int {
	switch {
	case n < 10:
		return 1
	case n < 100:
		return 2
	case n < 1000:
		return 3
	default:
		return 4
	}
}

func formatOptionalSeconds(d *time.Duration) (text string, width int) {
	if d == nil {
		return "?", 1
	}
	secs := int(d.Seconds())
	return strconv.Itoa(secs), digitsFor(secs)
}

// formatTrackPosition fits index, position and duration into 13 cells,
// dropping separator spaces (and eventually the duration) as the numbers
// grow.
func formatTrackPosition(d trackPositionData) string {
	indexWidth := 1
	if d.TrackIndex >= 10 {
		indexWidth = 2
	}

	position, positionWidth := formatOptionalSeconds(d.Position)
	duration, durationWidth := formatOptionalSeconds(d.Duration)

	switch total := indexWidth + positionWidth + durationWidth; {
	case total <= 7:
		return fmt.Sprintf("%d, %s of %s", d.TrackIndex, position, duration)
	case total == 8:
		return fmt.Sprintf("%d,%s of %s", d.TrackIndex, position, duration)
	case total == 9:
		return fmt.Sprintf("%d,%sof %s", d.TrackIndex, position, duration)
	case total == 10:
		return fmt.Sprintf("%d, %sof%s", d.TrackIndex, position, duration)
	default:
		return fmt.Sprintf("%d, %s", d.TrackIndex, position)
	}
}

// concatTags joins tags with ", ", skipping empty and "unknown" values.
func concatTags(tags ...string) string {
	var b strings.Builder
	for _, tag := range tags {
		if tag == "" || tag == "unknown" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(tag)
	}
	return b.String()
}

// stationTagsData is the second line's content, derived from the station
// and the current track's tags.
type stationTagsData struct {
	SourceType   protocol.StationType
	TrackIndex   string // displayed track number for URL lists, "" when hidden
	StationTitle string
	Artist       string
	Album        string
}

func formatStationTags(d stationTagsData) string {
	switch d.SourceType {
	case protocol.StationTypeURLList:
		return concatTags(d.TrackIndex, d.StationTitle)
	case protocol.StationTypeFileServer:
		return concatTags(d.StationTitle, d.Artist, d.Album)
	default:
		return concatTags(d.Artist, d.Album)
	}
}

// titleBuffering is the two-line track area when the title fits one line:
// the title above, the buffering level below.
type titleBuffering struct {
	Title     string
	Buffering uint8
}
