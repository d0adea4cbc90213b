// Package logging provides structured logging for the lcdradio client.
//
// This package wraps zap logger with convenience functions for the logging
// patterns used throughout the client. Logging is silent by default so it
// never fights the screen renderer for the terminal; set LCDRADIO_LOG_LEVEL
// to enable it.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (hex dumps of received frames)
//   - Info: Normal operations (connections, state changes)
//   - Warn: Non-fatal issues (connection drops, retries)
//   - Error: Fatal issues (protocol mismatch, decode failures)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Connected to player",
//	    zap.String("address", "192.168.1.100:8002"),
//	)
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Output Format
//
// Logs are written to stderr in console format; stdout is left to the
// screen renderer:
//
//	2025-11-25T10:30:45.123-0800  INFO  Connected to player
//	  address=192.168.1.100:8002
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
