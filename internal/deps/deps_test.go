package deps

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Empty", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("expected unconfigured command, got %#v", results[2])
	}
}

func TestRequire(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "exiftool")
	if err := os.WriteFile(present, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	if err := Require(Exiftool(present)); err != nil {
		t.Fatalf("expected present binary to satisfy Require, got %v", err)
	}

	optional := Requirement{Name: "Extra", Command: "clearly-not-present-binary", Optional: true}
	if err := Require(Exiftool(present), optional); err != nil {
		t.Fatalf("optional binaries must not fail Require, got %v", err)
	}

	err := Require(Exiftool("clearly-not-present-exiftool"))
	if !errors.Is(err, ErrMissingBinary) {
		t.Fatalf("expected ErrMissingBinary, got %v", err)
	}
	if !strings.Contains(err.Error(), "ExifTool") {
		t.Fatalf("expected error to name the binary, got %q", err)
	}
}
