// Package debug provides opt-in debug logging for sshgo.
//
// Logging is enabled by setting SSHGO_DEBUG:
//
//	SSHGO_DEBUG=1 sshgo
//
// The browser owns the terminal while it runs, so messages go to a file
// ($SSHGO_DEBUG_FILE, or sshgo-debug.log in the temp dir) through tea.LogToFile.
// When disabled, every function is a no-op.
package debug

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	enabled bool
	logger  = log.New(io.Discard, "", 0)
	closer  io.Closer
)

// EnvEnabled reports whether SSHGO_DEBUG asks for debug logging.
func EnvEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("SSHGO_DEBUG"))) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}

// LogPath returns the file debug output is written to.
func LogPath() string {
	if p := strings.TrimSpace(os.Getenv("SSHGO_DEBUG_FILE")); p != "" {
		return p
	}
	return filepath.Join(os.TempDir(), "sshgo-debug.log")
}

// Init opens the debug log when SSHGO_DEBUG is set. Callers should defer Close.
func Init() error {
	if !EnvEnabled() {
		return nil
	}
	f, err := tea.LogToFile(LogPath(), "sshgo")
	if err != nil {
		return err
	}
	closer = f
	SetOutput(log.Writer())
	return nil
}

// SetOutput enables logging to w (nil disables it).
func SetOutput(w io.Writer) {
	if w == nil {
		enabled = false
		logger.SetOutput(io.Discard)
		return
	}
	enabled = true
	logger.SetOutput(w)
	logger.SetFlags(log.Ltime | log.Lmicroseconds)
	logger.SetPrefix("[sshgo] ")
}

// Close flushes and closes the debug log file, if any.
func Close() {
	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
	SetOutput(nil)
}

// Enabled returns whether debug logging is on.
func Enabled() bool { return enabled }

// Log writes a printf-style debug message.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming records how long an operation took.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}
