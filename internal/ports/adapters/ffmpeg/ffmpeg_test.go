package ffmpeg

import (
	"testing"

	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/types"
)

func TestParseProbeOutput(t *testing.T) {
	out := "width=1920\nheight=1080\nr_frame_rate=30000/1001\nnb_frames=5400\nduration=180.120000\n"
	info, err := parseProbeOutput(out)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if info.Width != 1920 || info.Height != 1080 {
		t.Fatalf("unexpected dimensions: %dx%d", info.Width, info.Height)
	}
	if info.FrameCount != 5400 {
		t.Fatalf("unexpected frame count: %d", info.FrameCount)
	}
	if info.FPS < 29.9 || info.FPS > 30.0 {
		t.Fatalf("unexpected fps: %v", info.FPS)
	}
}

func TestParseProbeOutput_DerivesFrameCount(t *testing.T) {
	// Some containers report nb_frames as N/A; fall back to duration*fps.
	out := "width=1280\nheight=720\nr_frame_rate=25/1\nnb_frames=N/A\nduration=10.0\n"
	info, err := parseProbeOutput(out)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if info.FrameCount != 250 {
		t.Fatalf("unexpected derived frame count: %d", info.FrameCount)
	}
}

func TestParseProbeOutput_NoFrameRate(t *testing.T) {
	if _, err := parseProbeOutput("width=1280\n"); err == nil {
		t.Fatalf("expected error without frame rate")
	}
}

func TestCropFilter(t *testing.T) {
	got := cropFilter(types.RelCrop{X: 0.0, Y: 0.9, W: 0.2, H: 0.1})
	want := "crop=iw*0.2:ih*0.1:iw*0:ih*0.9"
	if got != want {
		t.Fatalf("cropFilter = %q, want %q", got, want)
	}
}
