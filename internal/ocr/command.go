package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// CommandDetector invokes an external OCR process once per frame. The
// process receives the region image (PNG) on stdin and must print a JSON
// array of detections on stdout:
//
//	[{"text":"...","confidence":0.98,"box":{"x":0,"y":0,"w":100,"h":24}}]
//
// Anything on stderr is reported in the error when the process fails.
type CommandDetector struct {
	binary              string
	args                []string
	confidenceThreshold float64
}

// NewCommandDetector builds a detector around the given executable.
// Detections scored below confidenceThreshold are discarded.
func NewCommandDetector(binary string, args []string, confidenceThreshold float64) (*CommandDetector, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, fmt.Errorf("ocr command: binary is required")
	}
	return &CommandDetector{
		binary:              binary,
		args:                args,
		confidenceThreshold: confidenceThreshold,
	}, nil
}

// Detect runs the OCR process for one frame region.
func (d *CommandDetector) Detect(ctx context.Context, image []byte) ([]Detection, error) {
	cmd := commandContext(ctx, d.binary, d.args...) //nolint:gosec
	cmd.Stdin = bytes.NewReader(image)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("ocr command: %w: %s", err, detail)
		}
		return nil, fmt.Errorf("ocr command: %w", err)
	}

	detections, err := decodeDetections(stdout.Bytes())
	if err != nil {
		return nil, err
	}
	return FilterConfidence(detections, d.confidenceThreshold), nil
}

func decodeDetections(data []byte) ([]Detection, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	var detections []Detection
	if err := json.Unmarshal(data, &detections); err != nil {
		return nil, fmt.Errorf("parse ocr output: %w", err)
	}
	return detections, nil
}
