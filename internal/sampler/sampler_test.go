package sampler

import (
	"context"
	"reflect"
	"testing"

	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/types"
)

func TestStep_CarryForward(t *testing.T) {
	var acc accumulator

	// Sample before any acceptance with unusable text is dropped.
	acc, _, ok := step(acc, 0, "hello world")
	if ok {
		t.Fatalf("expected sample to be dropped before first acceptance")
	}

	// A valid name is accepted and becomes the carry-forward label.
	acc, obs, ok := step(acc, 1, "Alice Smith")
	if !ok || obs.Label != "Alice Smith" || obs.Timestamp != 1 {
		t.Fatalf("expected acceptance, got %+v ok=%v", obs, ok)
	}

	// Invalid text inherits the last accepted label.
	acc, obs, ok = step(acc, 2, "garbled")
	if !ok || obs.Label != "Alice Smith" {
		t.Fatalf("expected inherited label, got %+v ok=%v", obs, ok)
	}

	// Missing text inherits too.
	acc, obs, ok = step(acc, 3, "")
	if !ok || obs.Label != "Alice Smith" {
		t.Fatalf("expected inherited label for empty text, got %+v ok=%v", obs, ok)
	}

	// A new valid name replaces the carry-forward label.
	_, obs, ok = step(acc, 4, "Bob Jones")
	if !ok || obs.Label != "Bob Jones" {
		t.Fatalf("expected new acceptance, got %+v ok=%v", obs, ok)
	}
}

func TestStep_OCRZeroFix(t *testing.T) {
	var acc accumulator
	_, obs, ok := step(acc, 0, "Brian 0'Connor")
	if !ok || obs.Label != "Brian O'Connor" {
		t.Fatalf("expected zero-for-O correction before validation, got %+v ok=%v", obs, ok)
	}
}

type fakeVideo struct {
	info  types.VideoInfo
	crops []types.RelCrop
}

func (f *fakeVideo) Probe(_ context.Context, _ string) (types.VideoInfo, error) {
	return f.info, nil
}

func (f *fakeVideo) ExtractFrameCrop(_ context.Context, _ string, _ float64, crop types.RelCrop, _ string) error {
	f.crops = append(f.crops, crop)
	return nil
}

func (f *fakeVideo) ExtractAudioMono16k(_ context.Context, _, _ string) error { return nil }

type fakeOCR struct {
	texts []string
	calls int
}

func (f *fakeOCR) RecognizeText(_ context.Context, _ string) (string, error) {
	if f.calls >= len(f.texts) {
		return "", nil
	}
	t := f.texts[f.calls]
	f.calls++
	return t, nil
}

type recordingSink struct {
	inits     int
	updates   []int
	completes int
}

func (r *recordingSink) Init(string)  { r.inits++ }
func (r *recordingSink) Update(p int) { r.updates = append(r.updates, p) }
func (r *recordingSink) Complete()    { r.completes++ }

func TestRun_TimestampOffsetAndClamp(t *testing.T) {
	video := &fakeVideo{info: types.VideoInfo{FPS: 1, FrameCount: 5}}
	ocr := &fakeOCR{texts: []string{
		"Alice Smith",
		"Alice Smith",
		"Alice Smith",
		"Alice Smith",
		"Alice Smith",
	}}
	sink := &recordingSink{}

	cfg := Config{
		PrimaryCrop: DefaultPrimaryCrop,
		Interval:    1,
		VoiceOffset: -1, // use the built-in default
	}
	got, err := New(video, ocr).Run(context.Background(), "in.mp4", t.TempDir(), cfg, sink)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// Frame timestamps 0..4s minus the 2.5s voice offset, floored at zero.
	wantTimes := []float64{0, 0, 0, 0.5, 1.5}
	gotTimes := make([]float64, 0, len(got))
	for _, o := range got {
		gotTimes = append(gotTimes, o.Timestamp)
	}
	if !reflect.DeepEqual(gotTimes, wantTimes) {
		t.Fatalf("timestamps = %v, want %v", gotTimes, wantTimes)
	}

	if sink.inits != 1 || sink.completes != 1 {
		t.Fatalf("expected one init and one complete, got %d/%d", sink.inits, sink.completes)
	}
	if len(sink.updates) != 5 || sink.updates[len(sink.updates)-1] != 100 {
		t.Fatalf("unexpected progress updates: %v", sink.updates)
	}
}

func TestRun_SecondaryCropFallback(t *testing.T) {
	video := &fakeVideo{info: types.VideoInfo{FPS: 1, FrameCount: 1}}
	// Primary crop yields nothing; secondary yields the name.
	ocr := &fakeOCR{texts: []string{"", "Alice Smith"}}
	sink := &recordingSink{}

	cfg := Config{
		PrimaryCrop:   DefaultPrimaryCrop,
		SecondaryCrop: DefaultSecondaryCrop,
		Interval:      1,
	}
	got, err := New(video, ocr).Run(context.Background(), "in.mp4", t.TempDir(), cfg, sink)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(got) != 1 || got[0].Label != "Alice Smith" {
		t.Fatalf("expected fallback observation, got %v", got)
	}
	if len(video.crops) != 2 || video.crops[1] != DefaultSecondaryCrop {
		t.Fatalf("expected secondary crop attempt, got %v", video.crops)
	}
}

func TestRun_DropsLeadingUnresolvedSamples(t *testing.T) {
	video := &fakeVideo{info: types.VideoInfo{FPS: 1, FrameCount: 3}}
	ocr := &fakeOCR{texts: []string{"noise", "Alice Smith", "noise"}}
	sink := &recordingSink{}

	cfg := Config{PrimaryCrop: DefaultPrimaryCrop, Interval: 1}
	got, err := New(video, ocr).Run(context.Background(), "in.mp4", t.TempDir(), cfg, sink)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{"Alice Smith", "Alice Smith"}
	gotLabels := make([]string, 0, len(got))
	for _, o := range got {
		gotLabels = append(gotLabels, o.Label)
	}
	if !reflect.DeepEqual(gotLabels, want) {
		t.Fatalf("labels = %v, want %v", gotLabels, want)
	}
}
