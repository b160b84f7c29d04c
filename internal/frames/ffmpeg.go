package frames

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// Sampler extracts cropped subtitle-region frames from a video file with
// ffmpeg and streams them back in timestamp order.
type Sampler struct {
	ffmpegBinary string
	source       string
	fps          float64
	roiMode      string
	roiRect      []int
	workDir      string

	files []string
	pos   int
}

// NewSampler configures an ffmpeg-backed sampler. Start must be called before
// Next. workDir receives the dumped frame images and is owned by the caller.
func NewSampler(ffmpegBinary, source string, fps float64, roiMode string, roiRect []int, workDir string) *Sampler {
	return &Sampler{
		ffmpegBinary: ffmpegBinary,
		source:       source,
		fps:          fps,
		roiMode:      roiMode,
		roiRect:      roiRect,
		workDir:      workDir,
	}
}

// Start probes the source dimensions, runs the ffmpeg extraction pass, and
// indexes the dumped frames.
func (s *Sampler) Start(ctx context.Context) error {
	if s.fps <= 0 {
		return fmt.Errorf("invalid sample rate %.3f", s.fps)
	}
	width, height, err := probeDimensions(ctx, s.ffprobeBinary(), s.source)
	if err != nil {
		return err
	}
	region, err := ComputeRegion(s.roiMode, s.roiRect, width, height)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.workDir, 0o755); err != nil {
		return fmt.Errorf("create frame directory: %w", err)
	}
	filter := fmt.Sprintf("fps=%g,crop=%d:%d:%d:%d", s.fps, region.W, region.H, region.X, region.Y)
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", s.source,
		"-vf", filter,
		"-vsync", "vfr",
		filepath.Join(s.workDir, "frame_%08d.png"),
	}
	cmd := commandContext(ctx, s.ffmpegBinary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg frame extraction: %w: %s", err, strings.TrimSpace(string(output)))
	}
	files, err := filepath.Glob(filepath.Join(s.workDir, "frame_*.png"))
	if err != nil {
		return fmt.Errorf("index extracted frames: %w", err)
	}
	sort.Strings(files)
	s.files = files
	s.pos = 0
	return nil
}

func (s *Sampler) Next(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	if s.pos >= len(s.files) {
		return Frame{}, io.EOF
	}
	path := s.files[s.pos]
	image, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return Frame{}, fmt.Errorf("read frame %s: %w", filepath.Base(path), err)
	}
	frame := Frame{
		TimestampMS: int64(float64(s.pos) / s.fps * 1000.0),
		Image:       image,
	}
	s.pos++
	return frame, nil
}

// FrameCount reports how many frames the extraction pass produced. Only valid
// after Start.
func (s *Sampler) FrameCount() int {
	return len(s.files)
}

func (s *Sampler) ffprobeBinary() string {
	dir := filepath.Dir(s.ffmpegBinary)
	if dir == "." && !strings.ContainsRune(s.ffmpegBinary, os.PathSeparator) {
		return "ffprobe"
	}
	return filepath.Join(dir, "ffprobe")
}

func probeDimensions(ctx context.Context, ffprobeBinary, source string) (int, int, error) {
	args := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=p=0",
		source,
	}
	cmd := commandContext(ctx, ffprobeBinary, args...) //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		return 0, 0, fmt.Errorf("ffprobe %s: %w", source, err)
	}
	fields := strings.Split(strings.TrimSpace(string(output)), ",")
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("ffprobe %s: unexpected output %q", source, strings.TrimSpace(string(output)))
	}
	width, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("ffprobe %s: parse width: %w", source, err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("ffprobe %s: parse height: %w", source, err)
	}
	return width, height, nil
}
