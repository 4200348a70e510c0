// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log is a minimal leveled logger, reconstructed in the shape of the
// first-party collaborator the teacher imports as "github.com/saferwall/pe/log"
// (NewStdLogger, NewHelper, NewFilter, FilterLevel) but whose source isn't
// part of this repository. The batch and stmt packages take one of these
// as an optional collaborator, defaulting to a filtered stdlib-backed logger when the
// caller passes nil — the shardkey codec package itself never imports this
// package, since it has no I/O and nothing to log.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level orders log severities from most to least verbose.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger logs one leveled entry made of alternating key/value pairs.
type Logger interface {
	Log(level Level, keyvals ...interface{}) error
}

// stdLogger writes space-separated "key=value" pairs, one entry per line, to
// an io.Writer. Safe for concurrent use.
type stdLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStdLogger returns a Logger that writes to w.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{w: w}
}

func (l *stdLogger) Log(level Level, keyvals ...interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.w, "level=%s", level)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(l.w, " %v=%v", keyvals[i], keyvals[i+1])
	}
	if len(keyvals)%2 != 0 {
		fmt.Fprintf(l.w, " %v=MISSING", keyvals[len(keyvals)-1])
	}
	fmt.Fprintln(l.w)
	return nil
}

// filter wraps a Logger and drops entries below its configured level.
type filter struct {
	next Logger
	min  Level
}

// NewFilter returns a Logger that forwards to next only entries at or above
// min.
func NewFilter(next Logger, min Level) Logger {
	return &filter{next: next, min: min}
}

func (f *filter) Log(level Level, keyvals ...interface{}) error {
	if level < f.min {
		return nil
	}
	return f.next.Log(level, keyvals...)
}

// FilterLevel is a convenience constructor equivalent to NewFilter, matching
// the teacher's calling convention of a free function per filter kind.
func FilterLevel(next Logger, min Level) Logger {
	return NewFilter(next, min)
}

// Helper adds level-named convenience methods over a Logger, the way the
// teacher's *log.Helper wraps its *log.Logger.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger. If logger is nil, Helper logs to a LevelError
// filter over a stdlib stderr logger, so callers never need a nil check.
func NewHelper(logger Logger) *Helper {
	if logger == nil {
		logger = NewFilter(NewStdLogger(os.Stderr), LevelError)
	}
	return &Helper{logger: logger}
}

func (h *Helper) Debugw(keyvals ...interface{}) { h.logger.Log(LevelDebug, keyvals...) }
func (h *Helper) Infow(keyvals ...interface{})  { h.logger.Log(LevelInfo, keyvals...) }
func (h *Helper) Warnw(keyvals ...interface{})  { h.logger.Log(LevelWarn, keyvals...) }
func (h *Helper) Errorw(keyvals ...interface{}) { h.logger.Log(LevelError, keyvals...) }
