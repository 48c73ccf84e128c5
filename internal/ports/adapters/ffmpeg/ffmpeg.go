package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ilya-kolchinsky/GMeetSummarizer/internal/types"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

func (a *Adapter) Probe(ctx context.Context, videoPath string) (types.VideoInfo, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate,nb_frames:format=duration",
		"-of", "default=noprint_wrappers=1",
		videoPath,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return types.VideoInfo{}, fmt.Errorf("ffprobe %s: %w\n%s", videoPath, err, string(b))
	}
	info, err := parseProbeOutput(string(b))
	if err != nil {
		return types.VideoInfo{}, fmt.Errorf("ffprobe %s: %w", videoPath, err)
	}
	return info, nil
}

func (a *Adapter) ExtractFrameCrop(ctx context.Context, videoPath string, atSec float64, crop types.RelCrop, outPNG string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-ss", fmtSeconds(atSec),
		"-i", videoPath,
		"-frames:v", "1",
		"-vf", cropFilter(crop),
		outPNG,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract frame: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) ExtractAudioMono16k(ctx context.Context, videoPath, outWav string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", videoPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		outWav,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w\n%s", err, string(b))
	}
	return nil
}

func parseProbeOutput(out string) (types.VideoInfo, error) {
	var info types.VideoInfo
	for _, line := range strings.Split(out, "\n") {
		k, v, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok || v == "N/A" {
			continue
		}
		switch k {
		case "width":
			info.Width, _ = strconv.Atoi(v)
		case "height":
			info.Height, _ = strconv.Atoi(v)
		case "r_frame_rate":
			fps, err := parseRational(v)
			if err != nil {
				return types.VideoInfo{}, fmt.Errorf("parse frame rate %q: %w", v, err)
			}
			info.FPS = fps
		case "nb_frames":
			info.FrameCount, _ = strconv.Atoi(v)
		case "duration":
			info.Duration, _ = strconv.ParseFloat(v, 64)
		}
	}
	if info.FPS <= 0 {
		return types.VideoInfo{}, fmt.Errorf("no frame rate in probe output")
	}
	// Some containers omit nb_frames; derive it from the duration.
	if info.FrameCount <= 0 && info.Duration > 0 {
		info.FrameCount = int(info.Duration * info.FPS)
	}
	return info, nil
}

func parseRational(s string) (float64, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return strconv.ParseFloat(s, 64)
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, err
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, fmt.Errorf("zero denominator")
	}
	return n / d, nil
}

// cropFilter renders a relative crop as an ffmpeg crop expression; iw/ih
// resolve to the input frame size, so no separate probe is needed here.
func cropFilter(c types.RelCrop) string {
	return fmt.Sprintf("crop=iw*%s:ih*%s:iw*%s:ih*%s",
		fmtFraction(c.W), fmtFraction(c.H), fmtFraction(c.X), fmtFraction(c.Y))
}

func fmtFraction(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
