// Package log provides the debug log sink for lazycommit. Messages are
// buffered in memory until a log file is configured (via --debug-log or
// the debug_log config key), then flushed and appended to that file.
package log

import (
	"log"
	"os"
	"sync"
)

// sink buffers debug output until a destination file is known. It
// implements io.Writer so it can back a standard log.Logger.
type sink struct {
	mu      sync.Mutex
	file    *os.File
	buffer  []byte
	discard bool
}

var (
	debugSink = &sink{}
	stdLogger = log.New(debugSink, "", log.LstdFlags|log.Lmicroseconds)
)

// Write appends to the configured file, or to the in-memory buffer when
// no file has been set yet.
func (s *sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.discard {
		return len(p), nil
	}

	if s.file != nil {
		n, err := s.file.Write(p)
		// Sync per write; the trail must survive a crashed run.
		_ = s.file.Sync()
		return n, err
	}

	b := make([]byte, len(p))
	copy(b, p)
	s.buffer = append(s.buffer, b...)
	return len(p), nil
}

// SetFile points the debug log at path, creating the file if needed and
// flushing anything buffered so far. An empty path discards buffered and
// future messages.
func SetFile(path string) error {
	debugSink.mu.Lock()
	defer debugSink.mu.Unlock()

	if debugSink.file != nil {
		_ = debugSink.file.Close()
		debugSink.file = nil
	}

	if path == "" {
		debugSink.discard = true
		debugSink.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		debugSink.discard = true
		debugSink.buffer = nil
		return err
	}

	debugSink.file = f
	debugSink.discard = false

	if len(debugSink.buffer) > 0 {
		_, _ = f.Write(debugSink.buffer)
		_ = f.Sync()
		debugSink.buffer = nil
	}

	return nil
}

// Printf writes a formatted debug message.
func Printf(format string, args ...any) {
	stdLogger.Printf(format, args...)
}

// Println writes a debug message.
func Println(v ...any) {
	stdLogger.Println(v...)
}

// Close closes the debug log file if one is open.
func Close() error {
	debugSink.mu.Lock()
	defer debugSink.mu.Unlock()

	if debugSink.file == nil {
		return nil
	}

	err := debugSink.file.Close()
	debugSink.file = nil
	return err
}
