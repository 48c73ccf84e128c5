package types

// Transcript is the speech engine's output: ordered, non-overlapping
// segments, each carrying word-level timestamps.
type Transcript struct {
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}

// AllWords flattens the per-segment word lists into one ordered sequence.
func (t Transcript) AllWords() []Word {
	var out []Word
	for _, s := range t.Segments {
		out = append(out, s.Words...)
	}
	return out
}

// SpeakerObservation is one resolved visual sample: at Timestamp (seconds,
// already shifted by the voice-to-video latency offset) the on-screen name
// badge read Label.
type SpeakerObservation struct {
	Timestamp float64
	Label     string
}

// SpeakerTimeline is a time-ordered sequence of observations. It exists in
// two states: raw (as sampled) and cleaned (after denoising).
type SpeakerTimeline []SpeakerObservation

// SpeechInterval is a span between two consecutive switch points. The full
// interval sequence is contiguous and non-overlapping.
type SpeechInterval struct {
	Start float64
	End   float64
}

// TranscriptLine is one rendered line of the final transcript. Speaker is
// empty when no visual observation could be attributed to the line.
type TranscriptLine struct {
	Timestamp string
	Speaker   string
	Text      string
}

// RelCrop is a frame crop region expressed as fractions of the frame size,
// each component in [0,1].
type RelCrop struct {
	X float64
	Y float64
	W float64
	H float64
}

// VideoInfo describes the probed properties of an input video.
type VideoInfo struct {
	FPS        float64
	FrameCount int
	Width      int
	Height     int
	Duration   float64
}
