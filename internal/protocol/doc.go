// Package protocol defines the wire format spoken by the radio player
// process.
//
// The player emits a stream of frames over its event socket. Each frame is
// a 2-byte big-endian length prefix followed by exactly that many bytes of
// MessagePack. The payload is a self-describing envelope map holding
// exactly one of three messages:
//
//   - protocol_version: the player's protocol version string, sent first;
//     a mismatch with Version is fatal
//   - player_state: a partial update to the player state, where absent
//     fields mean "unchanged" and explicit nils on optional fields mean
//     "cleared"
//   - log_message: an application-level player error, folded into display
//     state rather than terminating the client
//
// A clean close on a frame boundary is the player's normal shutdown
// signal. Truncated frames and malformed payloads are fatal decode errors.
package protocol
