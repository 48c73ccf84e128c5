package diarize

import "github.com/ilya-kolchinsky/GMeetSummarizer/internal/types"

// IntervalSpeaker is the interval-level view of diarization: one resolved
// speaker (or none) per speech interval. Not used for transcript assembly,
// which attributes per word, but computable independently for diagnostics.
type IntervalSpeaker struct {
	Interval types.SpeechInterval
	Speaker  string
	Known    bool
}

// AssignIntervalSpeakers resolves each interval to the majority label among
// the distinct observations falling inside it. Boundaries are inclusive on
// both ends, so an observation sitting exactly on a switch point counts for
// both adjacent intervals.
func AssignIntervalSpeakers(intervals []types.SpeechInterval, tl types.SpeakerTimeline) []IntervalSpeaker {
	out := make([]IntervalSpeaker, 0, len(intervals))
	for _, iv := range intervals {
		seen := make(map[string]struct{})
		var labels []string
		for _, obs := range tl {
			if obs.Timestamp < iv.Start || obs.Timestamp > iv.End {
				continue
			}
			if _, ok := seen[obs.Label]; ok {
				continue
			}
			seen[obs.Label] = struct{}{}
			labels = append(labels, obs.Label)
		}
		speaker, known := majoritySpeaker(labels)
		out = append(out, IntervalSpeaker{Interval: iv, Speaker: speaker, Known: known})
	}
	return out
}

// majoritySpeaker picks the most frequent label; ties resolve to the
// earliest-observed label. Input labels are distinct and in first-observed
// order, so after de-duplication ties are the common case and the earliest
// label wins.
func majoritySpeaker(labels []string) (string, bool) {
	if len(labels) == 0 {
		return "", false
	}
	if len(labels) == 1 {
		return labels[0], true
	}
	counts := make(map[string]int, len(labels))
	for _, l := range labels {
		counts[l]++
	}
	best := labels[0]
	for _, l := range labels[1:] {
		if counts[l] > counts[best] {
			best = l
		}
	}
	return best, true
}
