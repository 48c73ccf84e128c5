package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "gmeetsummarizer <recording.mp4>",
		Short:        "Produce a speaker-attributed transcript (and summary) from a Google Meet recording",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("settings", "", "Path to a YAML settings file")
	root.Flags().String("output-dir", "", "Directory for the transcript and summary artifacts")
	root.Flags().String("transcript-name", "", "Transcript file name")
	root.Flags().Bool("summarize", true, "Summarize the transcript (requires a running vLLM instance)")
	root.Flags().String("summary-name", "", "Summary file name")
	root.Flags().String("vllm-url", "", "URL of a running vLLM instance")
	root.Flags().String("vllm-model", "", "Model ID to use for summarization")
	root.Flags().Bool("no-progress", false, "Disable the terminal progress bar")
	root.Flags().Bool("debug", false, "Enable debug logging")

	// Hidden tuning flags (internal)
	root.Flags().Float64("sample-interval", 0, "Seconds of footage between OCR samples")
	root.Flags().Float64("voice-offset", -1, "Voice-to-video latency offset in seconds")
	_ = root.Flags().MarkHidden("sample-interval")
	_ = root.Flags().MarkHidden("voice-offset")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
