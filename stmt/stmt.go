// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stmt loads named SQL statement text from .sql files on disk,
// memory-mapped the way the teacher's File memory-maps the binary it
// parses, and caches the decoded text by statement name. It is the one
// place in this module that touches a filesystem.
package stmt

import (
	"errors"
	"os"
	"sync"

	mmap "github.com/edsrzf/mmap-go"
	"golang.org/x/text/encoding/unicode"

	"github.com/dataforge/shardkey/internal/log"
)

// ErrNotFound is returned by Loader.Get for a statement name with no
// matching .sql file in the loader's directory.
var ErrNotFound = errors.New("stmt: statement not found")

// Options configures a Loader. The zero value is valid: Dir defaults to the
// current directory and Logger defaults to an error-only stdlib logger,
// following the teacher's Options-defaulting convention in New/NewBytes.
type Options struct {
	// Dir is the directory statements are loaded from. Defaults to ".".
	Dir string

	// Logger receives load diagnostics. Defaults to a LevelError-filtered
	// stdlib logger when nil.
	Logger log.Logger
}

// Loader reads and caches named SQL statement text. Safe for concurrent use.
type Loader struct {
	dir    string
	logger *log.Helper

	mu    sync.RWMutex
	cache map[string]string
}

// New constructs a Loader over opts. A nil opts is equivalent to &Options{}.
func New(opts *Options) *Loader {
	if opts == nil {
		opts = &Options{}
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	return &Loader{
		dir:    dir,
		logger: log.NewHelper(opts.Logger),
		cache:  make(map[string]string),
	}
}

// Get returns the SQL text for name, reading "<dir>/<name>.sql" on first
// use and caching the result for subsequent calls. The file is
// memory-mapped rather than read into a buffer, matching the teacher's
// mmap.Map(f, mmap.RDONLY, 0) usage in file.go; a UTF-16LE byte-order mark
// is detected and transcoded to UTF-8 the same way helper.go decodes
// UTF-16 resource strings, so statements authored on Windows tooling load
// unchanged.
func (l *Loader) Get(name string) (string, error) {
	l.mu.RLock()
	if s, ok := l.cache[name]; ok {
		l.mu.RUnlock()
		return s, nil
	}
	l.mu.RUnlock()

	path := l.dir + string(os.PathSeparator) + name + ".sql"
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Warnw("msg", "statement file not found", "name", name, "path", path)
			return "", ErrNotFound
		}
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	if info.Size() == 0 {
		// mmap.Map refuses to map a zero-length file; treat it as empty text
		// rather than surfacing that restriction to callers.
		l.mu.Lock()
		l.cache[name] = ""
		l.mu.Unlock()
		return "", nil
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return "", err
	}
	defer data.Unmap()

	text, err := decodeStatement(data)
	if err != nil {
		return "", err
	}

	l.mu.Lock()
	l.cache[name] = text
	l.mu.Unlock()

	l.logger.Debugw("msg", "loaded statement", "name", name, "bytes", len(data))
	return text, nil
}

// decodeStatement transcodes a UTF-16LE-with-BOM buffer to UTF-8, or returns
// the input unchanged if it carries no BOM (the common case: a .sql file
// authored as plain UTF-8).
func decodeStatement(data []byte) (string, error) {
	if hasUTF16LEBOM(data) {
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		decoded, err := decoder.Bytes(data)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	}
	return string(data), nil
}

func hasUTF16LEBOM(data []byte) bool {
	return len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE
}
