package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestRun(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	if err := run(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Standard Results:",
		"Custom Results:",
		"Magnetic Field at Position 0 (A/m): 2862.16",
		"Wire Length (m): 6.28318",
		"AWG Recommendation: 14",
		"Voltage Required (V): 0.25354",
		"Magnetic Field at Position 0 (A/m): 572.43",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "AWG Recommendation"); n != 1 {
		t.Errorf("AWG Recommendation printed %d times, want 1", n)
	}
}

func TestCommandRejectsArgs(t *testing.T) {
	cmd := NewCommand()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Error("extra argument accepted")
	}
}
