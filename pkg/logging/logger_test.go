// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLevel_String(t *testing.T) {
	cases := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			if got := c.level.String(); got != c.want {
				t.Errorf("String() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestNew_Default(t *testing.T) {
	logger := New(Config{Quiet: true})
	if logger == nil {
		t.Fatal("New returned nil")
	}
	logger.Info("hello", "key", "value")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}

func TestNew_FileOutput(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{
		Quiet:   true,
		LogDir:  dir,
		Service: "testsvc",
	})
	logger.Info("entry one")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "testsvc_*.log"))
	if err != nil {
		t.Fatalf("Glob() = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected exactly one log file, got %d", len(matches))
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("ReadFile() = %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}

func TestLogger_With(t *testing.T) {
	logger := New(Config{Quiet: true})
	child := logger.With("component", "graph")
	if child == nil {
		t.Fatal("With returned nil")
	}
	child.Info("tagged entry")
}

func TestLogger_CloseIdempotent(t *testing.T) {
	logger := New(Config{Quiet: true})
	if err := logger.Close(); err != nil {
		t.Fatalf("first Close() = %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("second Close() = %v, want nil (idempotent)", err)
	}
}

func TestDefault_Singleton(t *testing.T) {
	a := Default()
	b := Default()
	if a != b {
		t.Error("Default() should return the same instance across calls")
	}
}
