package media

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// FFplayPlayer creates playback elements backed by ffplay processes
type FFplayPlayer struct {
	logger     zerolog.Logger
	ffplayPath string
}

// NewFFplayPlayer locates ffplay and returns an element factory
func NewFFplayPlayer(logger zerolog.Logger, ffplayPath string) (*FFplayPlayer, error) {
	if ffplayPath == "" {
		ffplayPath = "ffplay"
	}

	resolved, err := exec.LookPath(ffplayPath)
	if err != nil {
		return nil, fmt.Errorf("ffplay not found in PATH: %w", err)
	}

	return &FFplayPlayer{
		logger:     logger.With().Str("component", "ffplay").Logger(),
		ffplayPath: resolved,
	}, nil
}

// NewElement binds a playback element to one audio source
func (p *FFplayPlayer) NewElement(source string) Element {
	return &ffplayElement{
		logger: p.logger.With().Str("source", source).Logger(),
		binary: p.ffplayPath,
		source: source,
		volume: 1,
	}
}

// ffplayElement plays one audio source through a child ffplay process.
// A running process means the element is sounding; pausing kills it.
type ffplayElement struct {
	mu       sync.Mutex
	logger   zerolog.Logger
	binary   string
	source   string
	position float64
	volume   float64
	ready    bool
	closed   bool
	playing  bool
	gen      uint64
	cancel   context.CancelFunc
}

func (e *ffplayElement) Preload() {
	go func() {
		err := checkSource(e.source)

		e.mu.Lock()
		defer e.mu.Unlock()
		if err != nil {
			e.logger.Warn().Err(err).Msg("audio source not reachable")
			return
		}
		e.ready = true
	}()
}

func (e *ffplayElement) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

func (e *ffplayElement) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrAborted
	}
	if e.playing {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, e.binary,
		"-ss", strconv.FormatFloat(e.position, 'f', 3, 64),
		"-volume", strconv.Itoa(int(e.volume*100)),
		"-autoexit",
		"-nodisp",
		"-loglevel", "quiet",
		e.source)

	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("ffplay start failed: %w", err)
	}

	e.gen++
	gen := e.gen
	e.cancel = cancel
	e.playing = true

	// The waiter only settles state it still owns: a Pause/Play cycle
	// can install a newer process before a killed one is reaped.
	go func() {
		_ = cmd.Wait()
		cancel()
		e.mu.Lock()
		if e.gen == gen {
			e.cancel = nil
			e.playing = false
		}
		e.mu.Unlock()
	}()

	return nil
}

func (e *ffplayElement) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

func (e *ffplayElement) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.playing
}

func (e *ffplayElement) SetPosition(seconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if seconds < 0 {
		seconds = 0
	}
	e.position = seconds
}

// SetVolume stores the level for the next playback start; ffplay has
// no live volume control on a running process
func (e *ffplayElement) SetVolume(volume float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = volume
}

func (e *ffplayElement) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
	e.closed = true
	e.ready = false
	e.source = ""
}

func (e *ffplayElement) stopLocked() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.playing = false
}

// checkSource verifies a source is reachable before declaring an
// element ready to play
func checkSource(source string) error {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Head(source)
		if err != nil {
			return err
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("status %s", resp.Status)
		}
		return nil
	}

	if _, err := os.Stat(source); err != nil {
		return err
	}
	return nil
}
