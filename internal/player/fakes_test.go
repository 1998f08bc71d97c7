package player

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/wrenlowe/storyreel/internal/media"
)

type fakeElement struct {
	mu        sync.Mutex
	source    string
	ready     bool
	paused    bool
	closed    bool
	volume    float64
	playErr   error
	playCalls int
	positions []float64
}

func (e *fakeElement) Preload() {}

func (e *fakeElement) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

func (e *fakeElement) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.playCalls++
	if e.playErr != nil {
		return e.playErr
	}
	e.paused = false
	return nil
}

func (e *fakeElement) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paused = true
}

func (e *fakeElement) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

func (e *fakeElement) SetPosition(seconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.positions = append(e.positions, seconds)
}

func (e *fakeElement) SetVolume(volume float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = volume
}

func (e *fakeElement) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paused = true
	e.closed = true
}

func (e *fakeElement) snapshot() (playCalls int, positions []float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playCalls, append([]float64(nil), e.positions...)
}

type fakePlayer struct {
	mu       sync.Mutex
	ready    bool
	elements map[string]*fakeElement
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{ready: true, elements: make(map[string]*fakeElement)}
}

func (p *fakePlayer) NewElement(source string) media.Element {
	p.mu.Lock()
	defer p.mu.Unlock()
	el := &fakeElement{source: source, ready: p.ready, paused: true, volume: 1}
	p.elements[source] = el
	return el
}

func (p *fakePlayer) element(source string) *fakeElement {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.elements[source]
}

type fakeSurface struct {
	mu         sync.Mutex
	clearCalls int
	drawCalls  int
	lastDrawn  image.Image
}

func (s *fakeSurface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearCalls++
	s.lastDrawn = nil
}

func (s *fakeSurface) Draw(img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawCalls++
	s.lastDrawn = img
}

func (s *fakeSurface) drawn() (int, image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawCalls, s.lastDrawn
}

type fakeProber struct {
	mu        sync.Mutex
	durations map[string]float64
	errs      map[string]error
}

func (p *fakeProber) Duration(_ context.Context, source string) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err, ok := p.errs[source]; ok {
		return 0, err
	}
	if d, ok := p.durations[source]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("unknown source %s", source)
}

func fakeImageLoader(images map[string]image.Image, errs map[string]error) ImageLoader {
	return func(_ context.Context, source string) (image.Image, error) {
		if err, ok := errs[source]; ok {
			return nil, err
		}
		if img, ok := images[source]; ok {
			return img, nil
		}
		return nil, fmt.Errorf("unknown source %s", source)
	}
}

type fakeNotifier struct {
	mu     sync.Mutex
	titles []string
}

func (n *fakeNotifier) Notify(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.titles = append(n.titles, title)
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.titles)
}

type fakeFullscreen struct {
	mu       sync.Mutex
	active   bool
	onChange func(bool)
}

func (f *fakeFullscreen) Request() error {
	f.mu.Lock()
	f.active = true
	fn := f.onChange
	f.mu.Unlock()
	if fn != nil {
		fn(true)
	}
	return nil
}

func (f *fakeFullscreen) Exit() {
	f.mu.Lock()
	f.active = false
	fn := f.onChange
	f.mu.Unlock()
	if fn != nil {
		fn(false)
	}
}

func (f *fakeFullscreen) Notify(fn func(bool)) {
	f.onChange = fn
}
