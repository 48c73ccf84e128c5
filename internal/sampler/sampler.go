// Package sampler implements the visual speaker sampling pass: it steps
// through the recording at a fixed cadence, OCRs the on-screen name badge
// and emits a raw, timestamp-shifted speaker timeline.
package sampler

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/domain/timeline"
	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/ports"
	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/types"
)

const (
	// FrameInterval is the sampling cadence: one OCR read per second of
	// footage.
	FrameInterval = 1.0

	// VoiceTimestampOffset is the observed lag (seconds) between a speaker
	// change and the Google Meet active-speaker highlight following it.
	VoiceTimestampOffset = 2.5
)

// Default crop regions for the speaker name badge, as fractions of the
// frame. The primary box is the lower-left corner; the secondary box covers
// the right-hand participant tile shown during screen sharing.
var (
	DefaultPrimaryCrop   = types.RelCrop{X: 0.0, Y: 0.9, W: 0.2, H: 0.1}
	DefaultSecondaryCrop = types.RelCrop{X: 0.7, Y: 0.5, W: 0.2, H: 0.2}
)

type Config struct {
	PrimaryCrop   types.RelCrop
	SecondaryCrop types.RelCrop

	// Interval is seconds of footage between samples; 0 means FrameInterval.
	Interval float64

	// VoiceOffset is subtracted from every sample timestamp (floored at 0);
	// negative means VoiceTimestampOffset.
	VoiceOffset float64
}

func (c Config) interval() float64 {
	if c.Interval <= 0 {
		return FrameInterval
	}
	return c.Interval
}

func (c Config) voiceOffset() float64 {
	if c.VoiceOffset < 0 {
		return VoiceTimestampOffset
	}
	return c.VoiceOffset
}

type Sampler struct {
	video ports.VideoSource
	ocr   ports.OCR
}

func New(video ports.VideoSource, ocr ports.OCR) *Sampler {
	return &Sampler{video: video, ocr: ocr}
}

// Run samples the recording and returns the raw speaker timeline. Samples
// whose text fails name validation inherit the most recent accepted label;
// samples before any acceptance are dropped. Progress events go to sink as
// the fraction of frames processed.
func (s *Sampler) Run(ctx context.Context, videoPath, workDir string, cfg Config, sink ports.ProgressSink) (types.SpeakerTimeline, error) {
	info, err := s.video.Probe(ctx, videoPath)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", videoPath, err)
	}
	if info.FPS <= 0 || info.FrameCount <= 0 {
		return nil, fmt.Errorf("probe %s: no usable video stream (fps=%v frames=%d)", videoPath, info.FPS, info.FrameCount)
	}

	frameSkip := int(info.FPS * cfg.interval())
	if frameSkip < 1 {
		frameSkip = 1
	}

	cropPNG := filepath.Join(workDir, "badge.png")
	sink.Init("OCR in progress...")

	var (
		acc accumulator
		out types.SpeakerTimeline
	)
	for idx := 0; idx < info.FrameCount; idx += frameSkip {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		atSec := float64(idx) / info.FPS
		text, err := s.readBadge(ctx, videoPath, atSec, cropPNG, cfg)
		if err != nil {
			return nil, err
		}

		ts := atSec - cfg.voiceOffset()
		if ts < 0 {
			ts = 0
		}

		var obs types.SpeakerObservation
		var ok bool
		acc, obs, ok = step(acc, ts, text)
		if ok {
			out = append(out, obs)
		}

		percent := int(float64(idx+frameSkip) / float64(info.FrameCount) * 100)
		if percent > 100 {
			percent = 100
		}
		sink.Update(percent)
	}
	sink.Complete()
	return out, nil
}

// readBadge OCRs the primary crop and falls back to the secondary crop when
// the primary yields no text.
func (s *Sampler) readBadge(ctx context.Context, videoPath string, atSec float64, cropPNG string, cfg Config) (string, error) {
	for _, crop := range []types.RelCrop{cfg.PrimaryCrop, cfg.SecondaryCrop} {
		if crop.W <= 0 || crop.H <= 0 {
			continue
		}
		if err := s.video.ExtractFrameCrop(ctx, videoPath, atSec, crop, cropPNG); err != nil {
			return "", fmt.Errorf("extract frame at %.1fs: %w", atSec, err)
		}
		text, err := s.ocr.RecognizeText(ctx, cropPNG)
		if err != nil {
			return "", fmt.Errorf("ocr frame at %.1fs: %w", atSec, err)
		}
		if text = strings.TrimSpace(text); text != "" {
			return text, nil
		}
	}
	return "", nil
}

// accumulator is the carry-forward state threaded through the sampling
// loop: the most recent label that passed name validation.
type accumulator struct {
	lastValid string
}

// step applies the carry-forward policy to one sample: accepted text emits
// an observation and updates the accumulator; anything else inherits the
// last accepted label, or drops the sample if there is none yet.
func step(acc accumulator, ts float64, text string) (accumulator, types.SpeakerObservation, bool) {
	if text != "" {
		text = timeline.FixOCRArtifacts(text)
		if timeline.IsValidName(text) {
			acc.lastValid = text
			return acc, types.SpeakerObservation{Timestamp: ts, Label: text}, true
		}
	}
	if acc.lastValid != "" {
		return acc, types.SpeakerObservation{Timestamp: ts, Label: acc.lastValid}, true
	}
	return acc, types.SpeakerObservation{}, false
}
