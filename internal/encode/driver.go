package encode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"reelforge/internal/config"
	"reelforge/internal/logging"
	"reelforge/internal/timeline"
)

const (
	defaultCRF    = 21
	defaultPreset = "medium"
)

// Job names the filesystem locations for one render.
type Job struct {
	// StagingDir receives intermediate artifacts such as the subtitle file.
	StagingDir string
	// OutputPath is the final video destination.
	OutputPath string
}

// Driver runs ffmpeg and ffprobe for the renderer. It owns translating a
// composition into process invocations; everything time-dependent stays in
// the timeline package.
type Driver struct {
	ffmpegBin  string
	ffprobeBin string
	params     graphParams
	logger     *slog.Logger
}

// NewDriver builds a driver from the render configuration.
func NewDriver(cfg *config.Config, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = logging.NewNop()
	}
	params := graphParams{
		Width:  cfg.Render.Width,
		Height: cfg.Render.Height,
		FPS:    cfg.Render.FPS,
		CRF:    cfg.Render.CRF,
		Preset: cfg.Render.Preset,
	}
	if params.FPS <= 0 {
		params.FPS = timeline.DefaultFPS
	}
	if params.CRF <= 0 {
		params.CRF = defaultCRF
	}
	if params.Preset == "" {
		params.Preset = defaultPreset
	}
	return &Driver{
		ffmpegBin:  cfg.FFmpegBinary(),
		ffprobeBin: cfg.FFprobeBinary(),
		params:     params,
		logger:     logger,
	}
}

// Available reports whether the ffmpeg binary can be resolved.
func (d *Driver) Available() error {
	if _, err := exec.LookPath(d.ffmpegBin); err != nil {
		return fmt.Errorf("locate ffmpeg: %w", err)
	}
	return nil
}

// Render encodes the composition to job.OutputPath. The subtitle file is
// written into job.StagingDir before ffmpeg runs and left in place for
// debugging failed encodes.
func (d *Driver) Render(ctx context.Context, comp *timeline.Composition, job Job) error {
	if comp.TotalFrames() == 0 {
		return fmt.Errorf("render: composition has no frames")
	}
	if job.OutputPath == "" {
		return fmt.Errorf("render: output path is required")
	}

	params := d.params
	if ass := BuildASS(comp, params.Width, params.Height); ass != "" {
		assPath := filepath.Join(job.StagingDir, "captions.ass")
		if err := os.MkdirAll(job.StagingDir, 0o755); err != nil {
			return fmt.Errorf("render: create staging dir: %w", err)
		}
		if err := os.WriteFile(assPath, []byte(ass), 0o644); err != nil {
			return fmt.Errorf("render: write subtitles: %w", err)
		}
		params.ASSPath = assPath
	}

	if err := os.MkdirAll(filepath.Dir(job.OutputPath), 0o755); err != nil {
		return fmt.Errorf("render: create output dir: %w", err)
	}

	args := buildRenderArgs(comp, params)
	args = append(args, job.OutputPath)

	d.logger.Info("starting ffmpeg render",
		"output", job.OutputPath,
		"frames", comp.TotalFrames(),
		"scenes", len(comp.Spans()),
	)

	cmd := exec.CommandContext(ctx, d.ffmpegBin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("render: %w", ctx.Err())
		}
		return fmt.Errorf("render: ffmpeg failed: %w: %s", err, tailLines(stderr.String(), 8))
	}

	info, err := os.Stat(job.OutputPath)
	if err != nil {
		return fmt.Errorf("render: output missing after encode: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("render: ffmpeg produced an empty file")
	}

	d.logger.Info("render complete", "output", job.OutputPath, "bytes", info.Size())
	return nil
}

// ProbeDuration returns the container duration of a media file in seconds.
func (d *Driver) ProbeDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, d.ffprobeBin,
		"-v", "quiet",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("probe duration: ffprobe failed: %w", err)
	}
	var payload struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		return 0, fmt.Errorf("probe duration: parse ffprobe output: %w", err)
	}
	dur, err := strconv.ParseFloat(payload.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("probe duration: parse %q: %w", payload.Format.Duration, err)
	}
	return dur, nil
}

// tailLines returns the last n non-empty lines of s joined for error
// reporting. ffmpeg puts the useful diagnostics at the end of a long stderr
// stream.
func tailLines(s string, n int) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "; ")
}
