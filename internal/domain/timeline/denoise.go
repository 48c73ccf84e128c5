package timeline

import "github.com/ilya-kolchinsky/GMeetSummarizer/internal/types"

// Denoise removes isolated single-sample flickers from a raw speaker
// timeline: any observation whose label differs from both its immediate
// neighbors is assumed to be a misread rather than a genuine rapid speaker
// change. The first and last observations are always retained (no neighbor
// on one side to corroborate). One left-to-right pass; neighbor comparisons
// use the raw input, so runs of two or more samples survive intact.
func Denoise(raw types.SpeakerTimeline) types.SpeakerTimeline {
	if len(raw) == 0 {
		return nil
	}
	out := make(types.SpeakerTimeline, 0, len(raw))
	for i, obs := range raw {
		if i == 0 || i == len(raw)-1 {
			out = append(out, obs)
			continue
		}
		if obs.Label != raw[i-1].Label && obs.Label != raw[i+1].Label {
			continue
		}
		out = append(out, obs)
	}
	return out
}
