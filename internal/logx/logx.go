// Package logx is the leveled logger every subsystem calls instead of the
// bare "log" package the teacher used. Shape is lifted from
// calico32-waybar-niri-windows's log/log.go: a package-level Logger over
// an io.Writer, gated by level, timestamped.
package logx

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Logger writes leveled, timestamped lines to an io.Writer.
type Logger struct {
	mu     sync.Mutex
	output io.Writer
	prefix string
	level  Level
}

func New(prefix string) *Logger {
	return &Logger{output: os.Stderr, prefix: prefix, level: LevelInfo}
}

func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

func (l *Logger) SetLevel(lv Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = lv
}

func (l *Logger) printf(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.level > level || l.output == nil {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.output, "[%s] [%s] [%s] %s\n", ts, level, l.prefix, msg)
}

func (l *Logger) Tracef(format string, args ...any) { l.printf(LevelTrace, format, args...) }
func (l *Logger) Debugf(format string, args ...any) { l.printf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.printf(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.printf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.printf(LevelError, format, args...) }

// WithPrefix returns a logger writing to the same output with a different
// prefix, so each subsystem (wm, focus, tags, input, output) can tag its
// own lines without constructing a fresh io.Writer.
func (l *Logger) WithPrefix(prefix string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Logger{output: l.output, prefix: prefix, level: l.level}
}

var global = New("axiom")

// SetOutput redirects the package-level logger. A nil writer disables it.
func SetOutput(w io.Writer) { global.SetOutput(w) }

// SetLevel sets the minimum level the package-level logger emits.
func SetLevel(lv Level) { global.SetLevel(lv) }

// Named returns a subsystem-scoped logger that starts with the package
// logger's current output and level; later SetOutput/SetLevel calls do
// not reach it.
func Named(prefix string) *Logger { return global.WithPrefix(prefix) }

func Tracef(format string, args ...any) { global.Tracef(format, args...) }
func Debugf(format string, args ...any) { global.Debugf(format, args...) }
func Infof(format string, args ...any)  { global.Infof(format, args...) }
func Warnf(format string, args ...any)  { global.Warnf(format, args...) }
func Errorf(format string, args ...any) { global.Errorf(format, args...) }
