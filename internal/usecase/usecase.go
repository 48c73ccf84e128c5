package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/domain/diarize"
	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/domain/timeline"
	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/ports"
	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/sampler"
	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/types"
)

type Deps struct {
	Video ports.VideoSource
	OCR   ports.OCR
	ASR   ports.ASR
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	VideoPath string
	WorkDir   string
	Sampling  sampler.Config
	Progress  ports.ProgressSink
}

type Result struct {
	Transcript       types.Transcript
	Timeline         types.SpeakerTimeline // cleaned
	Intervals        []types.SpeechInterval
	IntervalSpeakers []diarize.IntervalSpeaker
	Lines            []types.TranscriptLine
}

// Run fuses the two input signals into a speaker-attributed transcript.
// Visual sampling and audio transcription share no state, so they run side
// by side and join before assembly.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	sink := in.Progress
	if sink == nil {
		sink = nopSink{}
	}

	var (
		wg        sync.WaitGroup
		raw       types.SpeakerTimeline
		tr        types.Transcript
		sampleErr error
		asrErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		raw, sampleErr = sampler.New(u.d.Video, u.d.OCR).Run(ctx, in.VideoPath, in.WorkDir, in.Sampling, sink)
	}()
	go func() {
		defer wg.Done()
		wav := filepath.Join(in.WorkDir, "audio.wav")
		if err := u.d.Video.ExtractAudioMono16k(ctx, in.VideoPath, wav); err != nil {
			asrErr = err
			return
		}
		tr, asrErr = u.d.ASR.Transcribe(ctx, wav, in.WorkDir)
	}()
	wg.Wait()

	if sampleErr != nil {
		return Result{}, fmt.Errorf("extract speaker labels: %w", sampleErr)
	}
	if asrErr != nil {
		return Result{}, fmt.Errorf("transcribe audio: %w", asrErr)
	}

	cleaned := timeline.Denoise(raw)
	words := tr.AllWords()
	intervals := diarize.Intervals(diarize.SwitchPoints(tr.Segments, words))

	return Result{
		Transcript:       tr,
		Timeline:         cleaned,
		Intervals:        intervals,
		IntervalSpeakers: diarize.AssignIntervalSpeakers(intervals, cleaned),
		Lines:            diarize.AssembleLines(words, cleaned),
	}, nil
}

type nopSink struct{}

func (nopSink) Init(string) {}
func (nopSink) Update(int)  {}
func (nopSink) Complete()   {}
