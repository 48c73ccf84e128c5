package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/artifact"
	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/config"
	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/domain/diarize"
	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/ports"
	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/ports/adapters/ffmpeg"
	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/ports/adapters/tesseract"
	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/ports/adapters/vllm"
	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/ports/adapters/whispercpp"
	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/sampler"
	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/types"
	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/usecase"
)

type Config struct {
	InputVideo string
	Settings   config.Settings

	// WorkDir holds per-run intermediates (crops, audio, transcript JSON).
	// Empty means a fresh temp dir, removed when the run ends.
	WorkDir string

	FFmpegPath    string
	FFprobePath   string
	TesseractPath string
	WhisperBin    string
	WhisperModel  string
	VLLMAPIKey    string

	PrimaryCrop    types.RelCrop
	SecondaryCrop  types.RelCrop
	SampleInterval float64
	VoiceOffset    float64 // negative means the built-in default

	Progress ports.ProgressSink
	Logger   zerolog.Logger
}

func (c Config) Validate() error {
	if c.InputVideo == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.InputVideo); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.WhisperModel == "" {
		return fmt.Errorf("whisper model path is required")
	}
	if err := c.Settings.Validate(); err != nil {
		return err
	}
	if c.Settings.SummarizeTranscript {
		return vllm.ValidateBaseURL(c.Settings.VLLMURL)
	}
	return nil
}

// Run processes one recording end to end: sample + transcribe + assemble,
// write the transcript artifact, then optionally summarize. A failed
// summarization is reported but never invalidates the written transcript.
func Run(ctx context.Context, cfg Config) error {
	log := cfg.Logger

	video := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)
	ocr := tesseract.New(cfg.TesseractPath)
	asr := whispercpp.New(cfg.WhisperBin, cfg.WhisperModel)

	workDir := cfg.WorkDir
	if workDir == "" {
		tmp, err := os.MkdirTemp("", "gmeetsummarizer-*")
		if err != nil {
			return fmt.Errorf("create work dir: %w", err)
		}
		defer os.RemoveAll(tmp)
		workDir = tmp
	}
	log.Debug().Str("work_dir", workDir).Msg("workspace ready")

	sampling := sampler.Config{
		PrimaryCrop:   cfg.PrimaryCrop,
		SecondaryCrop: cfg.SecondaryCrop,
		Interval:      cfg.SampleInterval,
		VoiceOffset:   cfg.VoiceOffset,
	}
	if sampling.PrimaryCrop == (types.RelCrop{}) {
		sampling.PrimaryCrop = sampler.DefaultPrimaryCrop
	}
	if sampling.SecondaryCrop == (types.RelCrop{}) {
		sampling.SecondaryCrop = sampler.DefaultSecondaryCrop
	}

	log.Info().Str("input", cfg.InputVideo).Msg("extracting speaker labels and transcribing audio")
	uc := usecase.New(usecase.Deps{Video: video, OCR: ocr, ASR: asr})
	res, err := uc.Run(ctx, usecase.Input{
		VideoPath: cfg.InputVideo,
		WorkDir:   workDir,
		Sampling:  sampling,
		Progress:  cfg.Progress,
	})
	if err != nil {
		return err
	}
	if len(res.Timeline) == 0 {
		log.Warn().Msg("no speaker was ever recognized; transcript will use a placeholder speaker")
	}
	for _, is := range res.IntervalSpeakers {
		log.Debug().
			Float64("start", is.Interval.Start).
			Float64("end", is.Interval.End).
			Str("speaker", is.Speaker).
			Bool("known", is.Known).
			Msg("interval speaker")
	}

	outDir, err := expandUser(cfg.Settings.OutputDir)
	if err != nil {
		return err
	}
	transcriptPath := filepath.Join(outDir, cfg.Settings.TranscriptFileName)
	if err := artifact.WriteText(transcriptPath, diarize.RenderTranscript(res.Lines)); err != nil {
		return err
	}
	log.Info().Str("path", transcriptPath).Msg("speaker-attributed transcript saved")

	if !cfg.Settings.SummarizeTranscript {
		return nil
	}

	log.Info().Str("model", cfg.Settings.VLLMModelID).Msg("generating transcript summary")
	summarizer := vllm.New(
		cfg.Settings.VLLMURL,
		cfg.Settings.VLLMModelID,
		cfg.Settings.SystemPrompt,
		cfg.Settings.SummaryPromptFormat,
		cfg.VLLMAPIKey,
	)
	summary, err := summarizer.Summarize(ctx, diarize.RenderPlain(res.Lines))
	if err != nil {
		return fmt.Errorf("summarize transcript (transcript at %s is intact): %w", transcriptPath, err)
	}

	summaryPath := filepath.Join(outDir, cfg.Settings.SummaryFileName)
	if err := artifact.WriteText(summaryPath, summary); err != nil {
		return err
	}
	log.Info().Str("path", summaryPath).Msg("summary saved")
	return nil
}

func expandUser(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir for %s: %w", path, err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

// ensure adapters implement ports
var _ ports.VideoSource = (*ffmpeg.Adapter)(nil)
var _ ports.OCR = (*tesseract.Adapter)(nil)
var _ ports.ASR = (*whispercpp.Adapter)(nil)
var _ ports.Summarizer = (*vllm.Adapter)(nil)
