package view

import (
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/lcdradio/lcdradio/internal/geometry"
	"github.com/lcdradio/lcdradio/internal/player"
	"github.com/lcdradio/lcdradio/internal/protocol"
	"github.com/lcdradio/lcdradio/internal/widget"
)

// Number of ticks certain transient displays stay on screen.
const (
	volumeShowTicks = 2
	newStationTicks = 2
)

// volumePipeline is the data for the top-right corner: the volume while it
// is changing or playback is running, the pipeline state otherwise.
type volumePipeline struct {
	Volume   int
	Pipeline protocol.PipelineState
}

// volumePipelineView shows "Vol" plus the right-aligned volume for a couple
// of ticks after the volume changes (and permanently while playing), and
// the right-aligned pipeline state the rest of the time.
func volumePipelineView(segment geometry.Segment) widget.Widget[volumePipeline] {
	labelSegment, valueSegment := segment.Split(4)

	volume := widget.NewGroup[int](
		widget.NewFixedLabel[int]("Vol", labelSegment),
		widget.NewLabel[int](valueSegment, nil).AlignRight(),
	)
	pipeline := widget.NewLabel[protocol.PipelineState](segment, nil).AlignRight()

	either := widget.NewEither(
		func(v widget.Either[int, protocol.PipelineState]) widget.Either[int, protocol.PipelineState] {
			return v
		},
		volume,
		pipeline,
	)

	return widget.NewScope(
		0,
		func(ticks int, _ widget.Event, _ volumePipeline) int {
			if ticks > 0 {
				return ticks - 1
			}
			return 0
		},
		func(ticks int, old, new volumePipeline) int {
			if old.Volume != new.Volume {
				ticks = volumeShowTicks
			}
			if old.Pipeline != new.Pipeline {
				ticks = 0
			}
			return ticks
		},
		func(ticks int, data volumePipeline) widget.Either[int, protocol.PipelineState] {
			if ticks > 0 || data.Pipeline == protocol.PipelinePlaying {
				return widget.ToA[int, protocol.PipelineState](data.Volume)
			}
			return widget.ToB[int](data.Pipeline)
		},
		either,
	)
}

// stationData pairs the non-nil current station with the full player state.
// The station pointer doubles as the station's identity: a new selection is
// a new pointer even if the contents are equal.
type stationData struct {
	Station *protocol.Station
	State   player.State
}

// displayedTrackIndex is the 1-based track number shown for URL-list
// stations, skipping a leading notification track and hiding the number
// until the second track.
func displayedTrackIndex(d stationData) string {
	if len(d.Station.Tracks) == 0 {
		return ""
	}
	offset := 1
	if d.Station.Tracks[0].IsNotification {
		offset = 0
	}
	index := d.State.CurrentTrackIndex + offset
	if index <= 1 {
		return ""
	}
	return strconv.Itoa(index)
}

func currentTrack(d stationData) *protocol.Track {
	if d.State.CurrentTrackIndex < 0 || d.State.CurrentTrackIndex >= len(d.Station.Tracks) {
		return nil
	}
	return &d.Station.Tracks[d.State.CurrentTrackIndex]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func stationTagsFrom(d stationData) stationTagsData {
	var tagOrganisation, tagArtist, tagAlbum string
	if tags := d.State.CurrentTrackTags; tags != nil {
		tagOrganisation = tags.Organisation
		tagArtist = tags.Artist
		tagAlbum = tags.Album
	}

	var trackArtist, trackAlbum string
	if track := currentTrack(d); track != nil {
		trackArtist = track.Artist
		trackAlbum = track.Album
	}

	return stationTagsData{
		SourceType:   d.Station.SourceType,
		TrackIndex:   displayedTrackIndex(d),
		StationTitle: firstNonEmpty(tagOrganisation, d.Station.Title),
		Artist:       firstNonEmpty(tagArtist, trackArtist),
		Album:        firstNonEmpty(tagAlbum, trackAlbum),
	}
}

func currentTrackTitle(d stationData) string {
	if tags := d.State.CurrentTrackTags; tags != nil && tags.Title != "" {
		return tags.Title
	}
	if track := currentTrack(d); track != nil {
		return track.Title
	}
	return ""
}

// stationView lays out the normal playing screen: status corner and
// volume/pipeline on the first line, station tags on the second, the track
// title (with buffering level, or wrapped over two lines) below.
func stationView() widget.Widget[stationData] {
	statusSegment, volumeSegment := geometry.Line(0).Split(13)

	pingAndTemperature := widget.NewScope(
		false,
		nil,
		func(showTemperature bool, old, new stationData) bool {
			if old.State.PingTimes != new.State.PingTimes {
				return !showTemperature
			}
			return showTemperature
		},
		func(showTemperature bool, d stationData) pingTempData {
			return pingTempData{
				Ping:            d.State.PingTimes,
				Temperature:     d.State.Temperature,
				ShowTemperature: showTemperature,
			}
		},
		widget.NewLabel[pingTempData](statusSegment, formatPingShort),
	)

	trackPosition := widget.NewLens(
		func(d stationData) trackPositionData {
			offset := 0
			if len(d.Station.Tracks) > 0 && !d.Station.Tracks[0].IsNotification {
				offset = 1
			}
			return trackPositionData{
				TrackIndex: d.State.CurrentTrackIndex + offset,
				Position:   d.State.TrackPosition,
				Duration:   d.State.TrackDuration,
			}
		},
		widget.NewLabel[trackPositionData](statusSegment, formatTrackPosition),
	)

	statusCorner := widget.NewEither(
		func(d stationData) widget.Either[stationData, stationData] {
			if d.Station.SourceType == protocol.StationTypeURLList {
				return widget.ToA[stationData, stationData](d)
			}
			return widget.ToB[stationData](d)
		},
		pingAndTemperature,
		trackPosition,
	)

	volumeAndPipeline := widget.NewLens(
		func(d stationData) volumePipeline {
			return volumePipeline{Volume: d.State.Volume, Pipeline: d.State.Pipeline}
		},
		volumePipelineView(volumeSegment),
	)

	stationTags := widget.NewLens(
		stationTagsFrom,
		widget.NewScrollingLabel[stationTagsData](geometry.Line(1), formatStationTags),
	)

	singleLineTitle := widget.NewGroup[titleBuffering](
		widget.NewLens(
			func(tb titleBuffering) string { return tb.Title },
			widget.NewScrollingLabel[string](geometry.Line(2), nil),
		),
		widget.NewLens(
			func(tb titleBuffering) uint8 { return tb.Buffering },
			widget.NewLabel[uint8](geometry.Line(3), nil),
		),
	)

	trackTitle := widget.NewEither(
		func(d stationData) widget.Either[titleBuffering, string] {
			title := currentTrackTitle(d)
			if d.Station.SourceType == protocol.StationTypeURLList &&
				utf8.RuneCountInString(title) <= geometry.Width {
				return widget.ToA[titleBuffering, string](titleBuffering{
					Title:     title,
					Buffering: d.State.Buffering,
				})
			}
			return widget.ToB[titleBuffering](title)
		},
		singleLineTitle,
		widget.NewScrollingLabel[string](geometry.Lines{First: 2, Last: 3}, nil),
	)

	return widget.GroupOf[stationData](
		statusCorner,
		volumeAndPipeline,
		stationTags,
		trackTitle,
	)
}

// newStationSplash announces a newly selected station: its index on the
// first line, its title on the second.
func newStationSplash() widget.Widget[*protocol.Station] {
	return widget.NewGroup[*protocol.Station](
		widget.NewLens(
			func(s *protocol.Station) string { return s.Index },
			widget.NewLabel[string](geometry.Line(0), nil),
		),
		widget.NewLens(
			func(s *protocol.Station) string { return s.Title },
			widget.NewLabel[string](geometry.Line(1), nil),
		),
	)
}

// noStationView is the idle screen: an error or the device identity, the
// volume corner, a full ping line, and a clock.
func noStationView(identity string) widget.Widget[player.State] {
	messageSegment, volumeSegment := geometry.Line(0).Split(13)

	message := widget.NewEither(
		func(s player.State) widget.Either[string, struct{}] {
			if s.StationNotFound != "" {
				return widget.ToA[string, struct{}]("No Station " + s.StationNotFound)
			}
			if s.CurrentError != nil {
				return widget.ToA[string, struct{}](s.CurrentError.Error())
			}
			return widget.ToB[string](struct{}{})
		},
		widget.NewScrollingLabel[string](messageSegment, nil),
		widget.NewFixedLabel[struct{}](identity, messageSegment),
	)

	volumeAndPipeline := widget.NewLens(
		func(s player.State) volumePipeline {
			return volumePipeline{Volume: s.Volume, Pipeline: s.Pipeline}
		},
		volumePipelineView(volumeSegment),
	)

	ping := widget.NewLens(
		func(s player.State) protocol.PingTimes { return s.PingTimes },
		widget.NewLabel[protocol.PingTimes](geometry.Line(1), formatPingLong),
	)

	date := widget.NewGeneratedLabel[player.State](geometry.Line(2), func() string {
		return time.Now().Format("Mon 02 Jan 2006")
	})

	clockSegment, _ := geometry.Line(3).Split(5)
	clock := widget.NewGeneratedLabel[player.State](clockSegment, func() string {
		return time.Now().Format("15:04")
	})

	return widget.GroupOf[player.State](message, volumeAndPipeline, ping, date, clock)
}

// App builds the root widget over the whole player state. A state with a
// current station shows the splash for two ticks whenever the station
// changes identity, then the full station view; without one it shows the
// idle screen.
func App(identity string) widget.Widget[player.State] {
	splashOrStation := widget.NewEither(
		func(v widget.Either[*protocol.Station, stationData]) widget.Either[*protocol.Station, stationData] {
			return v
		},
		newStationSplash(),
		stationView(),
	)

	station := widget.NewScope(
		newStationTicks,
		func(ticks int, _ widget.Event, _ stationData) int {
			if ticks > 0 {
				return ticks - 1
			}
			return 0
		},
		func(ticks int, old, new stationData) int {
			if old.Station != new.Station {
				return newStationTicks
			}
			return ticks
		},
		func(ticks int, d stationData) widget.Either[*protocol.Station, stationData] {
			if ticks > 0 {
				return widget.ToA[*protocol.Station, stationData](d.Station)
			}
			return widget.ToB[*protocol.Station](d)
		},
		splashOrStation,
	)

	return widget.NewEither(
		func(s player.State) widget.Either[stationData, player.State] {
			if s.CurrentStation != nil {
				return widget.ToA[stationData, player.State](stationData{
					Station: s.CurrentStation,
					State:   s,
				})
			}
			return widget.ToB[stationData](s)
		},
		station,
		noStationView(identity),
	)
}
