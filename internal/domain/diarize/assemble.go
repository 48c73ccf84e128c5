package diarize

import (
	"fmt"
	"strings"

	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/types"
)

// UnknownSpeaker is the artifact placeholder for lines with no attributable
// speaker.
const UnknownSpeaker = "Unknown Speaker"

// AttributeSpeaker returns the label of the most recent observation whose
// timestamp is at or before ts. Words spoken before the first observation
// take the first observation's label; an empty timeline attributes nothing.
func AttributeSpeaker(ts float64, tl types.SpeakerTimeline) (string, bool) {
	if len(tl) == 0 {
		return "", false
	}
	last := tl[0].Label
	for _, obs := range tl {
		if obs.Timestamp > ts {
			break
		}
		last = obs.Label
	}
	return last, true
}

// AssembleLines walks the word stream in order, attributes each word to a
// speaker via the cleaned timeline, and merges consecutive same-speaker
// runs into transcript lines. A line's timestamp is the start of its first
// word; its text is the verbatim concatenation of the run's word texts
// (engine spacing preserved), trimmed at the edges.
func AssembleLines(words []types.Word, tl types.SpeakerTimeline) []types.TranscriptLine {
	var (
		out      []types.TranscriptLine
		started  bool
		speaker  string
		known    bool
		text     strings.Builder
		startSec float64
	)

	flush := func() {
		out = append(out, types.TranscriptLine{
			Timestamp: FormatTimestamp(startSec),
			Speaker:   speaker,
			Text:      strings.TrimSpace(text.String()),
		})
	}

	for _, w := range words {
		s, k := AttributeSpeaker(w.Start, tl)
		if !started || s != speaker || k != known {
			if started {
				flush()
			}
			started = true
			speaker, known = s, k
			startSec = w.Start
			text.Reset()
		}
		text.WriteString(w.Word)
	}
	if started {
		flush()
	}
	return out
}

// FormatTimestamp renders whole seconds as HH:MM:SS.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// RenderTranscript produces the persisted transcript artifact: one line per
// TranscriptLine, "[HH:MM:SS] <speaker>: <text>".
func RenderTranscript(lines []types.TranscriptLine) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", l.Timestamp, speakerOrPlaceholder(l), l.Text))
	}
	return b.String()
}

// RenderPlain produces the timestamp-free "<speaker>: <text>" form sent to
// the summarizer.
func RenderPlain(lines []types.TranscriptLine) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%s: %s", speakerOrPlaceholder(l), l.Text))
	}
	return strings.Join(parts, "\n")
}

func speakerOrPlaceholder(l types.TranscriptLine) string {
	if l.Speaker == "" {
		return UnknownSpeaker
	}
	return l.Speaker
}
