package app

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lcdradio/lcdradio/internal/display"
	"github.com/lcdradio/lcdradio/internal/geometry"
	"github.com/lcdradio/lcdradio/internal/player"
	"github.com/lcdradio/lcdradio/internal/protocol"
)

type fixedTemperature player.Temperature

func (t fixedTemperature) Temperature() player.Temperature {
	return player.Temperature(t)
}

// snapshotDisplay wraps a grid and records its contents just before each
// clear, so tests can inspect screens that the driver painted over.
type snapshotDisplay struct {
	grid      *display.Grid
	snapshots [][]string
}

func newSnapshotDisplay() *snapshotDisplay {
	return &snapshotDisplay{grid: display.NewGrid()}
}

func (d *snapshotDisplay) Clear() {
	d.snapshots = append(d.snapshots, d.grid.Rows())
	d.grid.Clear()
}

func (d *snapshotDisplay) MoveCursor(pos geometry.Pos) {
	d.grid.MoveCursor(pos)
}

func (d *snapshotDisplay) WriteChar(c rune) {
	d.grid.WriteChar(c)
}

// servePlayer starts a one-shot player on a loopback port and returns its
// address. The send function owns the accepted connection.
func servePlayer(t *testing.T, send func(conn net.Conn)) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		send(conn)
	}()

	return listener.Addr().String()
}

func writeVersion(t *testing.T, conn net.Conn, version string) {
	t.Helper()
	err := protocol.WriteEnvelope(conn, &protocol.Envelope{ProtocolVersion: &version})
	if err != nil {
		t.Errorf("failed to write version: %v", err)
	}
}

func writeDiff(t *testing.T, conn net.Conn, diff *protocol.PlayerStateDiff) {
	t.Helper()
	err := protocol.WriteEnvelope(conn, &protocol.Envelope{PlayerState: diff})
	if err != nil {
		t.Errorf("failed to write diff: %v", err)
	}
}

func TestRunPaintsDiffsAndEndsCleanly(t *testing.T) {
	station := protocol.Station{
		Index:      "7",
		Title:      "Radio Paradise",
		SourceType: protocol.StationTypeURLList,
	}

	address := servePlayer(t, func(conn net.Conn) {
		writeVersion(t, conn, protocol.Version)

		volume := 55
		writeDiff(t, conn, &protocol.PlayerStateDiff{Volume: &volume})

		writeDiff(t, conn, &protocol.PlayerStateDiff{
			CurrentStation: protocol.SetTo(station),
		})
	})

	device := newSnapshotDisplay()
	err := Run(context.Background(), Options{Address: address}, "192.168.1.9", fixedTemperature(40), device)
	if err != nil {
		t.Fatalf("Run returned %v, want clean exit", err)
	}

	// Clears happen: on connect, after connecting, on the station change,
	// and before the shutdown screen.
	if len(device.snapshots) != 4 {
		t.Fatalf("got %d snapshots, want 4", len(device.snapshots))
	}

	fallback := device.snapshots[1]
	if want := "192.168.1.9"; !strings.HasPrefix(fallback[0], want) {
		t.Errorf("fallback row 0 = %q, want prefix %q", fallback[0], want)
	}
	if want := "No connection to"; !strings.HasPrefix(fallback[1], want) {
		t.Errorf("fallback row 1 = %q, want prefix %q", fallback[1], want)
	}
	if want := "CPU Temp  40C"; !strings.HasPrefix(fallback[3], want) {
		t.Errorf("fallback row 3 = %q, want prefix %q", fallback[3], want)
	}

	idle := device.snapshots[2]
	if want := "192.168.1.9"; !strings.HasPrefix(idle[0], want) {
		t.Errorf("idle row 0 = %q, want prefix %q", idle[0], want)
	}
	if want := "Vol  55"; !strings.HasSuffix(idle[0], want) {
		t.Errorf("idle row 0 = %q, want volume suffix %q", idle[0], want)
	}

	splash := device.snapshots[3]
	if want := "7"; !strings.HasPrefix(splash[0], want) {
		t.Errorf("splash row 0 = %q, want station index prefix %q", splash[0], want)
	}
	if want := "Radio Paradise"; !strings.HasPrefix(splash[1], want) {
		t.Errorf("splash row 1 = %q, want station title prefix %q", splash[1], want)
	}

	rows := device.grid.Rows()
	if want := "Ending screen driver"; !strings.HasPrefix(rows[0], want) {
		t.Errorf("final row 0 = %q, want prefix %q", rows[0], want)
	}
	if want := "Computer not shut"; !strings.HasPrefix(rows[1], want) {
		t.Errorf("final row 1 = %q, want prefix %q", rows[1], want)
	}
	if want := "down"; !strings.HasPrefix(rows[2], want) {
		t.Errorf("final row 2 = %q, want prefix %q", rows[2], want)
	}
}

func TestRunRejectsWrongProtocolVersion(t *testing.T) {
	address := servePlayer(t, func(conn net.Conn) {
		writeVersion(t, conn, "lcdradio-99")

		// Hold the connection open so the driver, not the player, decides.
		buf := make([]byte, 1)
		_, _ = conn.Read(buf)
	})

	device := newSnapshotDisplay()
	err := Run(context.Background(), Options{Address: address}, "192.168.1.9", fixedTemperature(40), device)
	if err == nil {
		t.Fatal("Run accepted a wrong protocol version")
	}
	if !strings.Contains(err.Error(), "lcdradio-99") {
		t.Errorf("error %q does not name the offending version", err)
	}

	// The error ends up on the display.
	screen := strings.Join(device.grid.Rows(), "")
	if !strings.Contains(screen, "lcdradio-99") {
		t.Errorf("screen %q does not show the error", screen)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	release := make(chan struct{})
	address := servePlayer(t, func(conn net.Conn) {
		writeVersion(t, conn, protocol.Version)
		<-release
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	device := newSnapshotDisplay()
	go func() {
		done <- Run(ctx, Options{Address: address}, "192.168.1.9", fixedTemperature(40), device)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v on cancel, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on context cancel")
	}
}

func TestWebSocketStreamCarriesEnvelopes(t *testing.T) {
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		version := protocol.Version
		payload, err := protocol.EncodeEnvelope(&protocol.Envelope{ProtocolVersion: &version})
		if err != nil {
			t.Errorf("failed to encode envelope: %v", err)
			return
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, payload); err != nil {
			t.Errorf("failed to send envelope: %v", err)
			return
		}

		closeFrame := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = conn.WriteMessage(websocket.CloseMessage, closeFrame)
	}))
	defer server.Close()

	address := "ws" + strings.TrimPrefix(server.URL, "http")
	stream, err := dialOnce(context.Background(), Options{Address: address, Transport: TransportWebSocket})
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	defer stream.Close()

	envelope, err := stream.ReadEnvelope()
	if err != nil {
		t.Fatalf("failed to read envelope: %v", err)
	}
	if envelope.ProtocolVersion == nil || *envelope.ProtocolVersion != protocol.Version {
		t.Errorf("envelope = %+v, want protocol version announcement", envelope)
	}

	if _, err := stream.ReadEnvelope(); !errors.Is(err, io.EOF) {
		t.Errorf("after close, err = %v, want io.EOF", err)
	}
}

func TestDialRejectsUnknownTransport(t *testing.T) {
	_, err := dialOnce(context.Background(), Options{Address: "localhost:1", Transport: "carrier-pigeon"})
	if err == nil {
		t.Fatal("dialOnce accepted an unknown transport")
	}
}
