package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subtext/internal/config"
)

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"config", "init", "--path", target})
	if err := root.Execute(); err != nil {
		t.Fatalf("config init returned error: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("sample config not written: %v", err)
	}
	if !strings.Contains(string(data), "sample_fps") {
		t.Fatalf("sample config missing expected keys:\n%s", data)
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# existing\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := newRootCommand()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"config", "init", "--path", target})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for existing config without --overwrite")
	}
}

func TestRootRegistersCommands(t *testing.T) {
	root := newRootCommand()
	want := []string{"extract", "qc", "export", "import", "translate", "project", "config"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing %q", name)
		}
	}
}

func TestIsRTLLanguage(t *testing.T) {
	cfg := config.Default()
	tests := []struct {
		lang string
		want bool
	}{
		{"ar", true},
		{"he", true},
		{"AR", true},
		{"en", false},
		{"ja", false},
	}
	for _, tt := range tests {
		if got := isRTLLanguage(&cfg, tt.lang); got != tt.want {
			t.Errorf("isRTLLanguage(%q) = %v, want %v", tt.lang, got, tt.want)
		}
	}
}

func TestOutputBase(t *testing.T) {
	if got := outputBase("/media/discs/My Movie (2004).mkv"); got == "" || strings.Contains(got, "/") {
		t.Fatalf("outputBase = %q", got)
	}
	if got := outputBase("show.mkv"); got != "show" {
		t.Fatalf("outputBase = %q, want show", got)
	}
}
