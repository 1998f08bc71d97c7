package player

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/wrenlowe/storyreel/internal/media"
	"github.com/wrenlowe/storyreel/internal/timeline"
)

// Surface is the 2D drawable preview target the scheduler clears and
// draws into each tick
type Surface interface {
	Clear()
	Draw(img image.Image)
}

// FullscreenHost is the platform primitive for fullscreen presentation.
// State is observed through the change notification, never assumed
// from the request itself.
type FullscreenHost interface {
	Request() error
	Exit()
	Notify(func(active bool))
}

// Notifier surfaces user-facing failure notifications to the UI shell
type Notifier interface {
	Notify(title, message string)
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(title, message string)

func (f NotifierFunc) Notify(title, message string) { f(title, message) }

// DurationProber resolves the playable length of an audio source
type DurationProber interface {
	Duration(ctx context.Context, source string) (float64, error)
}

// ImageLoader decodes an image source into pixels
type ImageLoader func(ctx context.Context, source string) (image.Image, error)

// Deps carries the collaborators a session needs
type Deps struct {
	Logger   zerolog.Logger
	Timeline *timeline.Timeline
	Surface  Surface
	Player   media.Player
	Prober   DurationProber
	Images   ImageLoader

	// Optional
	Fullscreen FullscreenHost
	Notifier   Notifier

	// Loop tuning; zero TickRate and AudioDebounce take defaults.
	// Volume is clamped to [0,1]; zero means muted.
	TickRate      int
	AudioDebounce time.Duration
	Volume        float64
}

// Session is one editor session: the shared playhead, playback state,
// per-clip playback elements, and the render loop that keeps them all
// in step. All shared state is guarded by a single mutex; async load
// completions and debounce timers re-enter under that lock.
type Session struct {
	logger   zerolog.Logger
	tl       *timeline.Timeline
	surface  Surface
	player   media.Player
	prober   DurationProber
	loadImg  ImageLoader
	fsHost   FullscreenHost
	notifier Notifier

	tickRate int
	debounce time.Duration

	mu         sync.Mutex
	current    float64
	playing    bool
	volume     float64
	fullscreen bool

	// Debounced audio reconciliation: a single pending task that
	// transport actions replace-and-cancel, never stack
	pending   *time.Timer
	opPending bool

	elements map[string]media.Element
	images   map[string]image.Image
	closed   bool
}

// NewSession wires an editor session from its collaborators
func NewSession(deps Deps) (*Session, error) {
	if deps.Timeline == nil {
		return nil, fmt.Errorf("timeline is required")
	}
	if deps.Surface == nil {
		return nil, fmt.Errorf("surface is required")
	}
	if deps.Player == nil {
		return nil, fmt.Errorf("audio player is required")
	}

	if deps.TickRate <= 0 {
		deps.TickRate = 60
	}
	if deps.AudioDebounce <= 0 {
		deps.AudioDebounce = 100 * time.Millisecond
	}
	deps.Volume = clamp(deps.Volume, 0, 1)
	if deps.Images == nil {
		deps.Images = media.LoadImage
	}

	s := &Session{
		logger:   deps.Logger.With().Str("component", "player").Logger(),
		tl:       deps.Timeline,
		surface:  deps.Surface,
		player:   deps.Player,
		prober:   deps.Prober,
		loadImg:  deps.Images,
		fsHost:   deps.Fullscreen,
		notifier: deps.Notifier,
		tickRate: deps.TickRate,
		debounce: deps.AudioDebounce,
		volume:   deps.Volume,
		elements: make(map[string]media.Element),
		images:   make(map[string]image.Image),
	}

	if s.fsHost != nil {
		s.fsHost.Notify(func(active bool) {
			s.mu.Lock()
			s.fullscreen = active
			s.mu.Unlock()
		})
	}

	return s, nil
}

// Run drives the render loop until the context is cancelled. Teardown
// cancels any pending debounced reconciliation and forces all audio
// to pause.
func (s *Session) Run(ctx context.Context) {
	interval := time.Second / time.Duration(s.tickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.teardown()
			return
		case now := <-ticker.C:
			s.Tick(now.Sub(last).Seconds())
			last = now
		}
	}
}

// Tick runs one evaluation of the loop: advance the playhead if
// playing, redraw the preview, reconcile audio. A failure inside one
// tick never stops subsequent ticks.
func (s *Session) Tick(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.advanceLocked(delta)
	s.ensureElementsLocked()
	s.drawLocked()

	// Skip the per-tick reconcile while a debounced batch is pending
	// so the two never race against the same elements
	if !s.opPending {
		s.reconcileLocked()
	}
}

// advanceLocked moves the playhead at wall-clock rate and wraps back
// to the start when the end is reached: the preview loops.
func (s *Session) advanceLocked(delta float64) {
	if !s.playing {
		return
	}

	total := s.tl.TotalDuration()
	if total <= 0 {
		s.current = 0
		return
	}

	s.current += delta
	if s.current > total {
		s.current = 0
	}
}

// drawLocked clears the surface and draws the image clip under the
// playhead, if any. A gap leaves the surface cleared.
func (s *Session) drawLocked() {
	s.surface.Clear()

	c := s.tl.ImageAt(s.current)
	if c == nil {
		return
	}
	if img, ok := s.images[c.ID]; ok {
		s.surface.Draw(img)
	}
}

func (s *Session) teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelPendingLocked()
	s.playing = false
	for _, el := range s.elements {
		el.Close()
	}
	s.elements = make(map[string]media.Element)
	s.closed = true

	s.logger.Debug().Msg("session torn down")
}

func (s *Session) notify(title, message string) {
	s.logger.Warn().Str("title", title).Msg(message)
	if s.notifier != nil {
		s.notifier.Notify(title, message)
	}
}

// CurrentTime returns the playhead position in seconds
func (s *Session) CurrentTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// TotalDuration returns the authoritative composition length
func (s *Session) TotalDuration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tl.TotalDuration()
}

// IsPlaying reports whether the playhead is advancing
func (s *Session) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Volume returns the current volume in [0,1]
func (s *Session) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// IsFullscreen reports the last observed fullscreen state
func (s *Session) IsFullscreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fullscreen
}
