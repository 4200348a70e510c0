// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stmt

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/unicode"
)

func TestGetReadsPlainUTF8(t *testing.T) {
	dir := t.TempDir()
	want := "select 1 from dual;\n"
	if err := os.WriteFile(filepath.Join(dir, "ping.sql"), []byte(want), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	l := New(&Options{Dir: dir})
	got, err := l.Get("ping")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != want {
		t.Fatalf("Get() = %q, want %q", got, want)
	}
}

func TestGetCachesResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cached.sql")
	if err := os.WriteFile(path, []byte("select 1;"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	l := New(&Options{Dir: dir})
	if _, err := l.Get("cached"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	got, err := l.Get("cached")
	if err != nil {
		t.Fatalf("Get after removing backing file should hit the cache: %v", err)
	}
	if got != "select 1;" {
		t.Fatalf("Get() = %q, want cached value", got)
	}
}

func TestGetMissingStatement(t *testing.T) {
	l := New(&Options{Dir: t.TempDir()})
	if _, err := l.Get("nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetDecodesUTF16LEWithBOM(t *testing.T) {
	dir := t.TempDir()
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, err := encoder.String("select 'utf16';\n")
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "utf16.sql"), []byte(encoded), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	l := New(&Options{Dir: dir})
	got, err := l.Get("utf16")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "select 'utf16';\n" {
		t.Fatalf("Get() = %q, want decoded UTF-8 text", got)
	}
}

func TestGetEmptyFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "empty.sql"), nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	l := New(&Options{Dir: dir})
	got, err := l.Get("empty")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "" {
		t.Fatalf("Get() = %q, want empty string", got)
	}
}

func TestNewDefaultsDirToCurrentDirectory(t *testing.T) {
	l := New(nil)
	if l.dir != "." {
		t.Fatalf("default dir = %q, want %q", l.dir, ".")
	}
}
