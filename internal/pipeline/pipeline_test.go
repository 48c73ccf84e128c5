package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/config"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	input := filepath.Join(t.TempDir(), "in.mp4")
	if err := os.WriteFile(input, []byte("not really a video"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return Config{
		InputVideo:   input,
		Settings:     config.Default(),
		WhisperModel: "models/ggml-base.bin",
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := validConfig(t)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}

	t.Run("empty input", func(t *testing.T) {
		c := cfg
		c.InputVideo = ""
		if err := c.Validate(); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing input", func(t *testing.T) {
		c := cfg
		c.InputVideo = filepath.Join(t.TempDir(), "absent.mp4")
		if err := c.Validate(); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing whisper model", func(t *testing.T) {
		c := cfg
		c.WhisperModel = ""
		if err := c.Validate(); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("bad vllm url", func(t *testing.T) {
		c := cfg
		c.Settings.VLLMURL = "ftp://nope"
		if err := c.Validate(); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("bad vllm url ignored when not summarizing", func(t *testing.T) {
		c := cfg
		c.Settings.VLLMURL = "ftp://nope"
		c.Settings.SummarizeTranscript = false
		if err := c.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestExpandUser(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}

	got, err := expandUser("~/Documents")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, "Documents") {
		t.Fatalf("unexpected expansion: %q", got)
	}

	// Non-tilde paths pass through untouched.
	got, err = expandUser("/var/data")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != "/var/data" {
		t.Fatalf("unexpected expansion: %q", got)
	}

	// A tilde mid-path is not user shorthand.
	got, err = expandUser("out~dir")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if !strings.Contains(got, "~") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}
