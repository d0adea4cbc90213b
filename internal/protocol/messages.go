package protocol

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// Version is the protocol version string announced by the player. The
// client refuses to talk to a player announcing anything else.
const Version = "lcdradio-1"

// PipelineState is the player's playback phase. The set of phases is
// defined by the player; the display only compares and formats them.
type PipelineState uint8

// Playback phases
const (
	PipelineNull PipelineState = iota
	PipelineStopped
	PipelineBuffering
	PipelinePaused
	PipelinePlaying
)

// String returns the display form shown on the status line.
func (s PipelineState) String() string {
	switch s {
	case PipelineNull:
		return "Null"
	case PipelineStopped:
		return "Stopped"
	case PipelineBuffering:
		return "Buffer"
	case PipelinePaused:
		return "Paused"
	case PipelinePlaying:
		return "Playing"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(s))
	}
}

// StationType identifies where a station's tracks come from.
type StationType uint8

// Station source types
const (
	StationTypeURLList StationType = iota
	StationTypeCD
	StationTypeUSB
	StationTypeFileServer
)

// Track is one entry in a station's playlist. Empty tag strings mean
// "unknown".
type Track struct {
	Title          string `msgpack:"title"`
	Artist         string `msgpack:"artist"`
	Album          string `msgpack:"album"`
	IsNotification bool   `msgpack:"is_notification"`
}

// Station is the currently selected station and its playlist. Stations are
// shared by pointer once decoded; a station switch is detected by pointer
// identity, never by comparing contents.
type Station struct {
	Index      string      `msgpack:"index"`
	Title      string      `msgpack:"title"`
	SourceType StationType `msgpack:"source_type"`
	Tracks     []Track     `msgpack:"tracks"`
}

// TrackTags carries the metadata the player extracted from the current
// track's stream. Empty strings mean "not provided".
type TrackTags struct {
	Title        string `msgpack:"title"`
	Organisation string `msgpack:"organisation"`
	Artist       string `msgpack:"artist"`
	Album        string `msgpack:"album"`
	Genre        string `msgpack:"genre"`
}

// PingTarget identifies which host a ping measurement refers to.
type PingTarget uint8

// Ping targets
const (
	PingTargetGateway PingTarget = iota
	PingTargetRemote
)

// PingError classifies a failed ping measurement.
type PingError uint8

// Ping failure modes
const (
	PingErrorNone PingError = iota
	PingErrorDNS
	PingErrorFailedToSend
	PingErrorFailedToReceive
	PingErrorTimeout
	PingErrorDestinationUnreachable
)

// String returns the short display form used on the ping line.
func (e PingError) String() string {
	switch e {
	case PingErrorDNS:
		return "DNS error"
	case PingErrorFailedToSend:
		return "Tx fail"
	case PingErrorFailedToReceive:
		return "Rx fail"
	case PingErrorTimeout:
		return "No reply"
	case PingErrorDestinationUnreachable:
		return "Unreachable"
	default:
		return fmt.Sprintf("PingError(%d)", uint8(e))
	}
}

// PingKind says how far the player's ping probing has progressed.
type PingKind uint8

// Ping progression states
const (
	PingNone PingKind = iota
	PingBadURL
	PingGateway
	PingGatewayAndRemote
	PingFinished
)

// PingResult is a single measurement: a round-trip time, or a failure.
type PingResult struct {
	RTT time.Duration `msgpack:"rtt"`
	Err PingError     `msgpack:"err"`
}

// PingTimes is the player's latest latency measurement. It is comparable,
// so widgets can gate repaints on equality.
type PingTimes struct {
	Kind    PingKind   `msgpack:"kind"`
	Gateway PingResult `msgpack:"gateway"`
	Remote  PingResult `msgpack:"remote"`
	Latest  PingTarget `msgpack:"latest"`
}

// ErrorKind classifies an application-level player error.
type ErrorKind uint8

// Player error kinds
const (
	ErrorKindStationNotFound ErrorKind = iota
	ErrorKindStation
	ErrorKindPipeline
	ErrorKindTag
)

// PlayerError is a recoverable player-domain error delivered as data. It
// is held by pointer so "same error" checks are cheap pointer comparisons.
type PlayerError struct {
	Kind         ErrorKind `msgpack:"kind"`
	StationIndex string    `msgpack:"station_index"`
	Message      string    `msgpack:"message"`
}

// Error implements the error interface.
func (e *PlayerError) Error() string {
	if e.Kind == ErrorKindStationNotFound {
		return fmt.Sprintf("no station at index %s", e.StationIndex)
	}
	return e.Message
}

// LogMessage is a log event from the player. Only error logs carry
// information the display acts on.
type LogMessage struct {
	Error *PlayerError `msgpack:"error,omitempty"`
}

// OptionDiff is a tri-state update to an optional field: absent from the
// wire means "unchanged", an explicit nil means "cleared", and anything
// else means "set".
type OptionDiff[T any] struct {
	// Present reports whether the field appeared on the wire at all.
	Present bool
	// Value is the new value, or nil when the field was cleared. Only
	// meaningful when Present.
	Value *T
}

// Unchanged returns an absent OptionDiff.
func Unchanged[T any]() OptionDiff[T] {
	return OptionDiff[T]{}
}

// Cleared returns an OptionDiff that clears the field.
func Cleared[T any]() OptionDiff[T] {
	return OptionDiff[T]{Present: true}
}

// SetTo returns an OptionDiff that sets the field to value.
func SetTo[T any](value T) OptionDiff[T] {
	return OptionDiff[T]{Present: true, Value: &value}
}

var _ msgpack.CustomDecoder = (*OptionDiff[int])(nil)

// DecodeMsgpack implements msgpack.CustomDecoder. Decoding only runs when
// the field's key is present in the diff map, so Present is always set
// here; absent fields keep the zero OptionDiff.
func (d *OptionDiff[T]) DecodeMsgpack(dec *msgpack.Decoder) error {
	code, err := dec.PeekCode()
	if err != nil {
		return err
	}

	d.Present = true

	if code == msgpcode.Nil {
		d.Value = nil
		return dec.DecodeNil()
	}

	value := new(T)
	if err := dec.Decode(value); err != nil {
		return err
	}
	d.Value = value
	return nil
}

var _ msgpack.CustomEncoder = OptionDiff[int]{}

// EncodeMsgpack implements msgpack.CustomEncoder. The caller is expected
// to skip absent diffs entirely; an absent diff encodes the same as a
// cleared one.
func (d OptionDiff[T]) EncodeMsgpack(enc *msgpack.Encoder) error {
	if d.Value == nil {
		return enc.EncodeNil()
	}
	return enc.Encode(*d.Value)
}

// PlayerStateDiff is a partial update to the player state. Nil pointer
// fields were absent from the wire and leave the prior value untouched.
type PlayerStateDiff struct {
	PipelineState     *PipelineState            `msgpack:"pipeline_state"`
	CurrentStation    OptionDiff[Station]       `msgpack:"current_station"`
	CurrentTrackIndex *int                      `msgpack:"current_track_index"`
	CurrentTrackTags  OptionDiff[TrackTags]     `msgpack:"current_track_tags"`
	Volume            *int                      `msgpack:"volume"`
	Buffering         *uint8                    `msgpack:"buffering"`
	TrackDuration     OptionDiff[time.Duration] `msgpack:"track_duration"`
	TrackPosition     OptionDiff[time.Duration] `msgpack:"track_position"`
	PingTimes         *PingTimes                `msgpack:"ping_times"`
}

var _ msgpack.CustomEncoder = (*PlayerStateDiff)(nil)

// EncodeMsgpack implements msgpack.CustomEncoder, writing a map holding
// only the fields the diff actually specifies so that absent and
// unchanged are the same thing on the wire.
func (d *PlayerStateDiff) EncodeMsgpack(enc *msgpack.Encoder) error {
	entries := []struct {
		key     string
		value   interface{}
		present bool
	}{
		{"pipeline_state", d.PipelineState, d.PipelineState != nil},
		{"current_station", d.CurrentStation, d.CurrentStation.Present},
		{"current_track_index", d.CurrentTrackIndex, d.CurrentTrackIndex != nil},
		{"current_track_tags", d.CurrentTrackTags, d.CurrentTrackTags.Present},
		{"volume", d.Volume, d.Volume != nil},
		{"buffering", d.Buffering, d.Buffering != nil},
		{"track_duration", d.TrackDuration, d.TrackDuration.Present},
		{"track_position", d.TrackPosition, d.TrackPosition.Present},
		{"ping_times", d.PingTimes, d.PingTimes != nil},
	}

	count := 0
	for _, e := range entries {
		if e.present {
			count++
		}
	}

	if err := enc.EncodeMapLen(count); err != nil {
		return err
	}
	for _, e := range entries {
		if !e.present {
			continue
		}
		if err := enc.EncodeString(e.key); err != nil {
			return err
		}
		if err := enc.Encode(e.value); err != nil {
			return err
		}
	}
	return nil
}

// Envelope is the self-describing payload of one frame. Exactly one field
// is set.
type Envelope struct {
	ProtocolVersion *string          `msgpack:"protocol_version,omitempty"`
	PlayerState     *PlayerStateDiff `msgpack:"player_state,omitempty"`
	LogMessage      *LogMessage      `msgpack:"log_message,omitempty"`
}

// DecodeEnvelope parses one frame payload.
func DecodeEnvelope(payload []byte) (*Envelope, error) {
	var env Envelope
	if err := msgpack.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decoding message payload: %w", err)
	}

	if env.ProtocolVersion == nil && env.PlayerState == nil && env.LogMessage == nil {
		return nil, fmt.Errorf("message payload carries no known message")
	}

	return &env, nil
}

// EncodeEnvelope serializes an envelope into a frame payload.
func EncodeEnvelope(env *Envelope) ([]byte, error) {
	payload, err := msgpack.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encoding message payload: %w", err)
	}
	return payload, nil
}
