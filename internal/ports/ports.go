package ports

import (
	"context"

	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/types"
)

// VideoSource exposes the input recording: stream properties, single-frame
// crops for OCR, and audio extraction for transcription.
type VideoSource interface {
	Probe(ctx context.Context, videoPath string) (types.VideoInfo, error)
	ExtractFrameCrop(ctx context.Context, videoPath string, atSec float64, crop types.RelCrop, outPNG string) error
	ExtractAudioMono16k(ctx context.Context, videoPath, outWav string) error
}

// OCR recognizes text in a cropped frame image. An empty string (with nil
// error) means no usable text was detected; only engine failures are errors.
type OCR interface {
	RecognizeText(ctx context.Context, imagePath string) (string, error)
}

// ASR transcribes extracted audio into a word-timestamped transcript.
type ASR interface {
	Transcribe(ctx context.Context, wavPath, workDir string) (types.Transcript, error)
}

// Summarizer performs one synchronous request/response exchange against an
// external language model and returns the response text verbatim.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

// ProgressSink receives ordered, fire-and-forget progress events. Delivery
// may be lossy; losing an event never affects correctness.
type ProgressSink interface {
	Init(label string)
	Update(percent int)
	Complete()
}
