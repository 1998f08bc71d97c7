package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog"
)

// Prober extracts media metadata with ffprobe
type Prober struct {
	logger      zerolog.Logger
	ffprobePath string
}

// NewProber locates ffprobe and returns a prober
func NewProber(logger zerolog.Logger, ffprobePath string) (*Prober, error) {
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}

	resolved, err := exec.LookPath(ffprobePath)
	if err != nil {
		return nil, fmt.Errorf("ffprobe not found in PATH: %w", err)
	}

	return &Prober{
		logger:      logger.With().Str("component", "prober").Logger(),
		ffprobePath: resolved,
	}, nil
}

// Duration resolves the playable length of an audio source in seconds
func (p *Prober) Duration(ctx context.Context, source string) (float64, error) {
	if source == "" {
		return 0, fmt.Errorf("source is required")
	}

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		source,
	}

	cmd := exec.CommandContext(ctx, p.ffprobePath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe probeResult
	if err := json.Unmarshal(output, &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	dur, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("no duration in ffprobe output for %s", source)
	}

	p.logger.Debug().Str("source", source).Float64("duration", dur).Msg("probed duration")
	return dur, nil
}

// probeResult matches ffprobe JSON output structure
type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}
