package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/lcdradio/lcdradio/internal/display"
	"github.com/lcdradio/lcdradio/internal/geometry"
	"github.com/lcdradio/lcdradio/internal/logging"
	"github.com/lcdradio/lcdradio/internal/player"
	"github.com/lcdradio/lcdradio/internal/protocol"
	"github.com/lcdradio/lcdradio/internal/view"
	"github.com/lcdradio/lcdradio/internal/widget"
)

// TemperatureSource reports the CPU temperature on demand. It is polled
// when a diff carries fresh ping times and once a second while waiting
// for the player to come up.
type TemperatureSource interface {
	Temperature() player.Temperature
}

// Options configure how the screen reaches the player.
type Options struct {
	// Address is the player's host:port (or websocket URL).
	Address string

	// Transport is TransportTCP or TransportWebSocket. Empty means TCP.
	Transport string

	// RetryInterval is the pause between connection attempts while the
	// player isn't listening yet.
	RetryInterval time.Duration
}

// Run drives the display until the player closes the connection, a fatal
// error occurs, or ctx is cancelled. Whatever the outcome, the display is
// left showing a final screen: a shutdown notice on a clean exit, the
// error text otherwise.
func Run(ctx context.Context, opts Options, identity string, temps TemperatureSource, device display.CharacterDisplay) error {
	writer := display.NewTextWriter(device)

	err := run(ctx, opts, identity, temps, writer)

	writer.Clear()
	if err == nil || errors.Is(err, context.Canceled) {
		writer.WriteTo(geometry.Line(0), "Ending screen driver")
		writer.WriteTo(geometry.Line(1), "Computer not shut")
		writer.WriteTo(geometry.Line(2), "down")
		writer.WriteTo(geometry.Line(3), "")
		return nil
	}

	logging.Error("Screen driver failed", zap.Error(err))
	writer.WriteTo(geometry.EntireScreen(), err.Error())
	return err
}

// connect dials the player while keeping the display alive with a
// fallback screen: the device identity, a "no connection" notice and a
// per-second temperature and clock line.
func connect(ctx context.Context, opts Options, identity string, temps TemperatureSource, writer *display.TextWriter) (messageStream, error) {
	type dialResult struct {
		stream messageStream
		err    error
	}

	result := make(chan dialResult, 1)
	go func() {
		stream, err := dial(ctx, opts)
		result <- dialResult{stream, err}
	}()

	writer.Clear()
	writer.WriteTo(geometry.Line(0), identity)
	writer.WriteTo(geometry.Line(1), "No connection to")
	writer.WriteTo(geometry.Line(2), "internal program")

	temperatureSegment, timeSegment := geometry.Line(3).Split(15)

	refresh := func() {
		writer.WriteTo(temperatureSegment, fmt.Sprintf("CPU Temp %3dC", temps.Temperature()))
		writer.WriteTo(timeSegment, time.Now().Format("15:04"))
	}
	refresh()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case r := <-result:
			return r.stream, r.err
		case <-ticker.C:
			refresh()
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// streamEvent is one received envelope, or the error that ended the
// stream.
type streamEvent struct {
	envelope *protocol.Envelope
	err      error
}

// readEvents pumps envelopes from the stream into a channel so the main
// loop can merge them with tick events. The channel closes when the
// player closes the connection cleanly.
func readEvents(ctx context.Context, stream messageStream) <-chan streamEvent {
	events := make(chan streamEvent)
	go func() {
		defer close(events)
		for {
			envelope, err := stream.ReadEnvelope()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				select {
				case events <- streamEvent{err: err}:
				case <-ctx.Done():
				}
				return
			}
			select {
			case events <- streamEvent{envelope: envelope}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events
}

func run(ctx context.Context, opts Options, identity string, temps TemperatureSource, writer *display.TextWriter) error {
	stream, err := connect(ctx, opts, identity, temps, writer)
	if err != nil {
		return err
	}
	defer stream.Close()

	logging.Info("Connected to player",
		zap.String("address", stream.RemoteAddr()),
		zap.String("transport", opts.Transport),
	)

	writer.Clear()

	events := readEvents(ctx, stream)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	state := player.Default()
	root := view.App(identity)

	for {
		select {
		case <-ctx.Done():
			return nil

		case now := <-ticker.C:
			root.HandleEvent(widget.Tick{Time: now}, state)

		case event, ok := <-events:
			if !ok {
				logging.Info("Player closed the connection")
				return nil
			}
			if event.err != nil {
				return event.err
			}

			envelope := event.envelope
			switch {
			case envelope.ProtocolVersion != nil:
				if *envelope.ProtocolVersion != protocol.Version {
					return fmt.Errorf("player speaks protocol %q, this screen speaks %q",
						*envelope.ProtocolVersion, protocol.Version)
				}
				continue

			case envelope.PlayerState != nil:
				diff := envelope.PlayerState
				stationChanged := diff.CurrentStation.Present

				newState := state.ApplyDiff(diff)
				if diff.PingTimes != nil {
					newState = newState.WithTemperature(temps.Temperature())
				}

				root.Update(state, newState)
				state = newState

				if stationChanged {
					root.ForceRepaint(state)
					writer.Clear()
				}

			case envelope.LogMessage != nil:
				newState := state.HandleLogMessage(*envelope.LogMessage)
				root.Update(state, newState)
				state = newState
			}
		}

		root.Paint(state, writer)
	}
}
