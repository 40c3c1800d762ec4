package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestAnalyzeCommandHelp(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"analyze", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(buf.String(), "Analyze a local audio file") {
		t.Errorf("Expected analyze help output, got %q", buf.String())
	}
}

func TestAnalyzeCommandRequiresFile(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"analyze"})

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error when no file argument is given")
	}
}
