package tesseract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

type Adapter struct {
	bin string
}

func New(binPath string) *Adapter {
	if binPath == "" {
		binPath = "tesseract"
	}
	return &Adapter{bin: binPath}
}

// RecognizeText runs the engine over a cropped badge image in single-line
// mode and returns the first detected text span, or "" when the crop holds
// no usable text.
func (a *Adapter) RecognizeText(ctx context.Context, imagePath string) (string, error) {
	cmd := exec.CommandContext(ctx, a.bin,
		imagePath,
		"stdout",
		"--psm", "7",
		"-l", "eng",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("tesseract failed: %w\n%s", err, stderr.String())
		}
		return "", fmt.Errorf("tesseract failed: %w", err)
	}
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}
	return "", nil
}
