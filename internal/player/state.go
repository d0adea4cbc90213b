// Package player holds the aggregate player state the display renders.
//
// The state is owned by the event loop and replaced wholesale by the
// functional transitions below; widgets only ever read it.
package player

import (
	"time"

	"github.com/lcdradio/lcdradio/internal/protocol"
)

// Temperature is a device temperature in whole degrees Celsius.
type Temperature uint8

// TemperatureUnknown is the sentinel for "no reading yet"; the source
// reports a small unsigned byte range, so 255 is never a real value.
const TemperatureUnknown Temperature = 255

// State is the aggregate display state. All fields are comparable;
// CurrentStation and CurrentError compare by pointer identity.
type State struct {
	Pipeline          protocol.PipelineState
	CurrentStation    *protocol.Station
	CurrentTrackIndex int
	CurrentTrackTags  *protocol.TrackTags
	Volume            int
	Buffering         uint8
	TrackDuration     *time.Duration
	TrackPosition     *time.Duration
	PingTimes         protocol.PingTimes
	StationNotFound   string // station index from a not-found error, "" when none
	CurrentError      *protocol.PlayerError
	Temperature       Temperature
}

// Default is the state before any player event has arrived.
func Default() State {
	return State{
		Pipeline:    protocol.PipelineNull,
		Volume:      -1,
		Temperature: TemperatureUnknown,
	}
}

// ApplyDiff merges a partial update into the state, updating exactly the
// fields the diff specifies. Selecting a non-empty station additionally
// clears the station-not-found and current-error fields, whether or not
// the diff mentions them.
func (s State) ApplyDiff(diff *protocol.PlayerStateDiff) State {
	if diff.CurrentStation.Present && diff.CurrentStation.Value != nil {
		s.StationNotFound = ""
		s.CurrentError = nil
	}

	if diff.PipelineState != nil {
		s.Pipeline = *diff.PipelineState
	}
	if diff.CurrentStation.Present {
		s.CurrentStation = diff.CurrentStation.Value
	}
	if diff.CurrentTrackIndex != nil {
		s.CurrentTrackIndex = *diff.CurrentTrackIndex
	}
	if diff.CurrentTrackTags.Present {
		s.CurrentTrackTags = diff.CurrentTrackTags.Value
	}
	if diff.Volume != nil {
		s.Volume = *diff.Volume
	}
	if diff.Buffering != nil {
		s.Buffering = *diff.Buffering
	}
	if diff.TrackDuration.Present {
		s.TrackDuration = diff.TrackDuration.Value
	}
	if diff.TrackPosition.Present {
		s.TrackPosition = diff.TrackPosition.Value
	}
	if diff.PingTimes != nil {
		s.PingTimes = *diff.PingTimes
	}

	return s
}

// HandleLogMessage folds a player log message into the state: a
// station-not-found error records the missing index, any other error
// becomes the current error.
func (s State) HandleLogMessage(message protocol.LogMessage) State {
	if message.Error == nil {
		return s
	}

	if message.Error.Kind == protocol.ErrorKindStationNotFound {
		s.StationNotFound = message.Error.StationIndex
	} else {
		s.CurrentError = message.Error
	}

	return s
}

// WithTemperature replaces only the temperature reading. The event loop
// calls this whenever a diff carries a ping update, since ping and
// temperature are sampled together.
func (s State) WithTemperature(temperature Temperature) State {
	s.Temperature = temperature
	return s
}
