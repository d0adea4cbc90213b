package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

// LengthPrefixSize is the width in bytes of the big-endian frame length
// prefix. Two bytes bound a payload at 64 KiB, comfortably above the
// largest message the player sends (a full station playlist).
const LengthPrefixSize = 2

// ReadFrame reads one length-prefixed frame payload from r.
//
// io.EOF is returned untouched when the stream closes cleanly on a frame
// boundary; the caller treats it as the player's normal shutdown signal. A
// stream ending mid-frame is a decode error.
func ReadFrame(r io.Reader) ([]byte, error) {
	var prefix [LengthPrefixSize]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("reading frame length: %w", err)
	}

	length := binary.BigEndian.Uint16(prefix[:])

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("reading %d byte frame payload: %w", length, err)
	}

	return payload, nil
}

// WriteFrame writes payload as one length-prefixed frame.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > int(^uint16(0)) {
		return fmt.Errorf("frame payload of %d bytes exceeds the length prefix", len(payload))
	}

	var prefix [LengthPrefixSize]byte
	binary.BigEndian.PutUint16(prefix[:], uint16(len(payload)))

	if _, err := w.Write(prefix[:]); err != nil {
		return fmt.Errorf("writing frame length: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("writing frame payload: %w", err)
	}
	return nil
}

// ReadEnvelope reads and decodes the next message from r.
func ReadEnvelope(r io.Reader) (*Envelope, error) {
	payload, err := ReadFrame(r)
	if err != nil {
		return nil, err
	}
	return DecodeEnvelope(payload)
}

// WriteEnvelope encodes and writes one message to w.
func WriteEnvelope(w io.Writer, env *Envelope) error {
	payload, err := EncodeEnvelope(env)
	if err != nil {
		return err
	}
	return WriteFrame(w, payload)
}
