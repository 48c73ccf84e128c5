package diarize

import (
	"sort"

	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/types"
)

// SilenceThreshold is the minimum gap (seconds) between consecutive words
// that starts a new speech interval.
const SilenceThreshold = 2.0

// SwitchPoints merges two boundary sources into one deduplicated, ascending
// list of interval boundaries: silence gaps in the word stream (plus the
// first word's start and the last word's end) and every segment boundary.
// Zero words yield zero switch points.
func SwitchPoints(segments []types.Segment, words []types.Word) []float64 {
	if len(words) == 0 {
		return nil
	}

	seen := make(map[float64]struct{})
	var points []float64
	add := func(p float64) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		points = append(points, p)
	}

	prevEnd := 0.0
	for i, w := range words {
		if i == 0 || w.Start-prevEnd >= SilenceThreshold {
			add(w.Start)
		}
		prevEnd = w.End
	}
	add(prevEnd)

	for _, s := range segments {
		add(s.Start)
		add(s.End)
	}

	sort.Float64s(points)
	return points
}

// Intervals turns n sorted switch points into n-1 contiguous,
// non-overlapping speech intervals.
func Intervals(points []float64) []types.SpeechInterval {
	if len(points) < 2 {
		return nil
	}
	out := make([]types.SpeechInterval, 0, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		out = append(out, types.SpeechInterval{Start: points[i], End: points[i+1]})
	}
	return out
}

// SegmentSpeech is the full segmentation step: transcript in, ordered
// interval partition out.
func SegmentSpeech(tr types.Transcript) []types.SpeechInterval {
	return Intervals(SwitchPoints(tr.Segments, tr.AllWords()))
}
