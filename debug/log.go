// SPDX-License-Identifier: EPL-2.0

// Package debug is a category file logger. It is silent until Enable is
// called, since the terminal belongs to the UI while padbank runs.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	out      io.Writer
	file     *os.File
	mu       sync.Mutex
	counters = make(map[string]int)
)

// Enable starts logging to path, truncating it.
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if out != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	file = f
	out = f
	write("debug", "=== debug logging started ===")

	return nil
}

// EnableWriter logs to w. Used by tests and by callers that already own a
// log destination.
func EnableWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	out = w
}

// Disable stops logging and closes the log file, if any.
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	out = nil
	clear(counters)
}

// Enabled reports whether log lines are being written.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()

	return out != nil
}

// Log writes one line under category.
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if out == nil {
		return
	}
	write(category, fmt.Sprintf(format, args...))
}

// LogEvery logs only every n-th call with the same category and format.
// Use it for per-chunk and per-callback events.
func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if n <= 1 || count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}

// write expects mu to be held.
func write(category, msg string) {
	ts := time.Now().Format("15:04:05.000")
	fmt.Fprintf(out, "[%s] %-10s %s\n", ts, category, msg)
	if file != nil {
		file.Sync()
	}
}
