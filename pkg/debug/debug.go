// Package debug provides conditional debug logging for jw.
//
// The TUI owns the terminal, so logging goes to a file named by the
// JW_DEBUG environment variable:
//
//	JW_DEBUG=/tmp/jw.log jw big.json
//
// JW_DEBUG=1 logs to stderr instead, for runs where stderr is
// redirected. When unset (default), all debug functions are no-ops.
//
// Usage:
//
//	import "github.com/vanderheijden86/jsonwork/pkg/debug"
//
//	func myFunc() {
//	    debug.Log("parsed %d nodes", count)
//	    // ...
//	    debug.LogTiming("myFunc", elapsed)
//	}
package debug

import (
	"log"
	"os"
	"time"
)

var (
	enabled bool
	logger  *log.Logger
)

func init() {
	target := os.Getenv("JW_DEBUG")
	if target == "" {
		return
	}
	out := os.Stderr
	if target != "1" {
		f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			// Nowhere to report a broken log target; stay disabled.
			return
		}
		out = f
	}
	enabled = true
	logger = log.New(out, "[JW_DEBUG] ", log.Ltime|log.Lmicroseconds)
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}
