package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"

	"github.com/lcdradio/lcdradio/internal/logging"
	"github.com/lcdradio/lcdradio/internal/protocol"
	"go.uber.org/zap"
)

// Transport selects how envelopes reach the screen.
const (
	TransportTCP       = "tcp"
	TransportWebSocket = "ws"
)

// messageStream yields decoded envelopes from the player, one per call.
// A cleanly closed connection is reported as io.EOF.
type messageStream interface {
	ReadEnvelope() (*protocol.Envelope, error)
	RemoteAddr() string
	Close() error
}

// tcpStream reads length-prefixed envelopes off a TCP connection.
type tcpStream struct {
	conn   net.Conn
	reader *bufio.Reader
}

func newTCPStream(conn net.Conn) *tcpStream {
	return &tcpStream{conn: conn, reader: bufio.NewReader(conn)}
}

func (s *tcpStream) ReadEnvelope() (*protocol.Envelope, error) {
	return protocol.ReadEnvelope(s.reader)
}

func (s *tcpStream) RemoteAddr() string {
	return s.conn.RemoteAddr().String()
}

func (s *tcpStream) Close() error {
	return s.conn.Close()
}

// wsStream reads envelopes carried as binary websocket messages. The
// framing length prefix is redundant there, so payloads arrive bare.
type wsStream struct {
	conn *websocket.Conn
}

func (s *wsStream) ReadEnvelope() (*protocol.Envelope, error) {
	for {
		messageType, payload, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("reading websocket message: %w", err)
		}
		if messageType != websocket.BinaryMessage {
			logging.Debug("Ignoring non-binary websocket message",
				zap.Int("message_type", messageType),
			)
			continue
		}
		logging.LogRawBytes("Received websocket payload", payload)
		return protocol.DecodeEnvelope(payload)
	}
}

func (s *wsStream) RemoteAddr() string {
	return s.conn.RemoteAddr().String()
}

func (s *wsStream) Close() error {
	return s.conn.Close()
}

func dialOnce(ctx context.Context, opts Options) (messageStream, error) {
	switch opts.Transport {
	case "", TransportTCP:
		var dialer net.Dialer
		conn, err := dialer.DialContext(ctx, "tcp", opts.Address)
		if err != nil {
			return nil, err
		}
		return newTCPStream(conn), nil

	case TransportWebSocket:
		url := opts.Address
		if !strings.Contains(url, "://") {
			url = "ws://" + url
		}
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
		if err != nil {
			return nil, err
		}
		return &wsStream{conn: conn}, nil

	default:
		return nil, fmt.Errorf("unknown transport %q", opts.Transport)
	}
}

// dial connects to the player, retrying at a constant interval for as
// long as the player merely isn't listening yet. Any other failure is
// immediately fatal.
func dial(ctx context.Context, opts Options) (messageStream, error) {
	interval := opts.RetryInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	connect := func() (messageStream, error) {
		stream, err := dialOnce(ctx, opts)
		if err == nil {
			return stream, nil
		}
		if errors.Is(err, syscall.ECONNREFUSED) {
			logging.Debug("Player not listening yet",
				zap.String("address", opts.Address),
			)
			return nil, err
		}
		return nil, backoff.Permanent(fmt.Errorf("connecting to player: %w", err))
	}

	return backoff.RetryWithData(connect,
		backoff.WithContext(backoff.NewConstantBackOff(interval), ctx))
}
