package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/config"
	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/pipeline"
	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/ports"
	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/progress"
)

func run(cmd *cobra.Command, input string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	log := newLogger(debug)

	settings := config.Default()
	if path, _ := cmd.Flags().GetString("settings"); path != "" {
		if err := settings.LoadFile(path); err != nil {
			return err
		}
	}
	settings.ApplyEnv()

	// Flags win over file and environment, but only when explicitly set.
	if cmd.Flags().Changed("output-dir") {
		settings.OutputDir, _ = cmd.Flags().GetString("output-dir")
	}
	if cmd.Flags().Changed("transcript-name") {
		settings.TranscriptFileName, _ = cmd.Flags().GetString("transcript-name")
	}
	if cmd.Flags().Changed("summarize") {
		settings.SummarizeTranscript, _ = cmd.Flags().GetBool("summarize")
	}
	if cmd.Flags().Changed("summary-name") {
		settings.SummaryFileName, _ = cmd.Flags().GetString("summary-name")
	}
	if cmd.Flags().Changed("vllm-url") {
		settings.VLLMURL, _ = cmd.Flags().GetString("vllm-url")
	}
	if cmd.Flags().Changed("vllm-model") {
		settings.VLLMModelID, _ = cmd.Flags().GetString("vllm-model")
	}

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	noProgress, _ := cmd.Flags().GetBool("no-progress")
	var sink ports.ProgressSink = progress.NewBar()
	if noProgress {
		sink = progress.Nop{}
	}

	sampleInterval, _ := cmd.Flags().GetFloat64("sample-interval")
	voiceOffset, _ := cmd.Flags().GetFloat64("voice-offset")

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Hour)
	defer cancel()

	cfg := pipeline.Config{
		InputVideo: absIn,
		Settings:   settings,

		FFmpegPath:    getenvDefault("FFMPEG_PATH", "ffmpeg"),
		FFprobePath:   getenvDefault("FFPROBE_PATH", "ffprobe"),
		TesseractPath: getenvDefault("TESSERACT_PATH", "tesseract"),
		WhisperBin:    getenvDefault("WHISPER_BIN", ".cache/bin/whisper.cpp"),
		WhisperModel:  getenvDefault("WHISPER_MODEL", ".cache/models/ggml-base.bin"),
		VLLMAPIKey:    os.Getenv("VLLM_API_KEY"),

		SampleInterval: sampleInterval,
		VoiceOffset:    voiceOffset,

		Progress: sink,
		Logger:   log,
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log.Info().
		Str("output_dir", settings.OutputDir).
		Bool("summarize", settings.SummarizeTranscript).
		Str("vllm_model", settings.VLLMModelID).
		Msg("effective configuration")

	return pipeline.Run(ctx, cfg)
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
