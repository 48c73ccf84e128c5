// Package config holds the strongly-typed run settings: built-in defaults,
// an optional YAML settings file, and environment overrides, in that
// precedence order (CLI flags are applied on top by the cli package).
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Settings struct {
	OutputDir           string `yaml:"output_dir"`
	TranscriptFileName  string `yaml:"transcript_file_name"`
	SummarizeTranscript bool   `yaml:"summarize_transcript"`
	SummaryFileName     string `yaml:"summary_file_name"`
	VLLMURL             string `yaml:"vllm_url"`
	VLLMModelID         string `yaml:"vllm_model_id"`
	SystemPrompt        string `yaml:"system_prompt"`
	SummaryPromptFormat string `yaml:"summary_prompt_format"`
}

const defaultSystemPrompt = "You are an expert meeting assistant. Your job is to analyze meeting transcripts, " +
	"extract important insights, identify decisions, and list clear action items for the participants."

const defaultSummaryPromptFormat = `Please analyze the following meeting transcript:

TRANSCRIPT
%s
END OF TRANSCRIPT

Now, produce the following:
1. A concise summary of the meeting.
2. Key discussion points.
3. Notable decisions made.
4. Action items with responsible persons if mentioned.

Be accurate, structured, and clear. Use bullet points where helpful.
`

func Default() Settings {
	return Settings{
		OutputDir:           "~/Documents",
		TranscriptFileName:  "transcript.txt",
		SummarizeTranscript: true,
		SummaryFileName:     "summary.txt",
		VLLMURL:             "http://localhost:8000",
		VLLMModelID:         "granite32-8b",
		SystemPrompt:        defaultSystemPrompt,
		SummaryPromptFormat: defaultSummaryPromptFormat,
	}
}

// LoadFile merges a YAML settings file over the receiver. Absent keys keep
// their current values.
func (s *Settings) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read settings file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, s); err != nil {
		return fmt.Errorf("parse settings file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from upper-snake environment variables
// matching the field names (OUTPUT_DIR, VLLM_URL, ...).
func (s *Settings) ApplyEnv() {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setString("OUTPUT_DIR", &s.OutputDir)
	setString("TRANSCRIPT_FILE_NAME", &s.TranscriptFileName)
	setString("SUMMARY_FILE_NAME", &s.SummaryFileName)
	setString("VLLM_URL", &s.VLLMURL)
	setString("VLLM_MODEL_ID", &s.VLLMModelID)
	setString("SYSTEM_PROMPT", &s.SystemPrompt)
	setString("SUMMARY_PROMPT_FORMAT", &s.SummaryPromptFormat)
	if v, ok := os.LookupEnv("SUMMARIZE_TRANSCRIPT"); ok {
		s.SummarizeTranscript = parseBool(v)
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "t", "y", "yes":
		return true
	default:
		return false
	}
}

func (s Settings) Validate() error {
	if strings.TrimSpace(s.OutputDir) == "" {
		return fmt.Errorf("output dir is empty")
	}
	if strings.TrimSpace(s.TranscriptFileName) == "" {
		return fmt.Errorf("transcript file name is empty")
	}
	if !s.SummarizeTranscript {
		return nil
	}
	if strings.TrimSpace(s.SummaryFileName) == "" {
		return fmt.Errorf("summary file name is empty")
	}
	if strings.TrimSpace(s.VLLMModelID) == "" {
		return fmt.Errorf("vLLM model ID is empty")
	}
	if got := strings.Count(s.SummaryPromptFormat, "%s"); got != 1 {
		return fmt.Errorf("summary prompt format must contain exactly one %%s placeholder, found %d", got)
	}
	return nil
}
