package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

var (
	initOnce    sync.Once
	initialized atomic.Bool
)

// Setup installs the default slog handler. Only the first call has effect.
func Setup(debug bool) {
	SetupWithWriter(os.Stderr, debug)
}

// SetupWithWriter is Setup with an explicit destination.
func SetupWithWriter(w io.Writer, debug bool) {
	initOnce.Do(func() {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}

		logger := slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: debug,
		})

		slog.SetDefault(slog.New(logger))
		initialized.Store(true)
	})
}

func Initialized() bool {
	return initialized.Load()
}

func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		if Initialized() {
			slog.Error(fmt.Sprintf("Panic in %s", name),
				"panic", r,
				"stack", string(debug.Stack()))
		}
		if cleanup != nil {
			cleanup()
		}
	}
}
