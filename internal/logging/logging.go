// file: internal/logging/logging.go
// version: 1.1.0
// guid: 7d2e4f6a-1b3c-4d5e-9f0a-8c7b6a5d4e3f

package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// Logger writes human-readable run narration to the console and appends the
// same lines, prefixed with a timestamp, to a plaintext log file. The file
// handle is opened in append mode so repeated runs accumulate history.
type Logger struct {
	mu      sync.Mutex
	console io.Writer
	file    *os.File
}

// Open creates a logger appending to path. A log file that cannot be opened
// never aborts a run: the logger falls back to console-only output and says
// so. Pass an empty path to log to the console only.
func Open(path string) *Logger {
	l := &Logger{console: os.Stdout}
	if path == "" {
		return l
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stdout, "WARNING: could not open log file %s: %v\n", path, err)
		return l
	}
	l.file = f
	return l
}

// SetConsole redirects console output, primarily for tests.
func (l *Logger) SetConsole(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console = w
}

// Infof logs a formatted message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.write(fmt.Sprintf(format, args...))
}

// Warnf logs a formatted message tagged as a warning.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.write("WARNING: " + fmt.Sprintf(format, args...))
}

// Errorf logs a formatted message tagged as an error.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.write("ERROR: " + fmt.Sprintf(format, args...))
}

func (l *Logger) write(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.console != nil {
		fmt.Fprintln(l.console, msg)
	}
	if l.file != nil {
		fmt.Fprintf(l.file, "[%s] %s\n", time.Now().Format(timestampLayout), msg)
	}
}

// Close releases the log file handle, if any.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
}
