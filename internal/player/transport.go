package player

import (
	"errors"
	"fmt"
)

// ErrNotReady is returned by Play when some audio element has not yet
// buffered enough data to start without stalling
var ErrNotReady = errors.New("audio not ready for playback")

// Play starts the transport. Refused with ErrNotReady unless every
// audio clip's backing element reports sufficient buffered data; the
// playhead state is left untouched on refusal.
func (s *Session) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playing {
		return nil
	}

	for _, c := range s.tl.Audio() {
		el, ok := s.elements[c.ID]
		if !ok || !el.Ready() {
			s.logger.Warn().Str("clip", c.ID).Msg("audio clip not ready for playback")
			return fmt.Errorf("%w: %s", ErrNotReady, c.Title)
		}
	}

	s.playing = true
	s.scheduleSyncLocked()
	return nil
}

// Pause stops the playhead; the audio follows through the debounced
// reconciliation
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.playing {
		return
	}
	s.playing = false
	s.scheduleSyncLocked()
}

// TogglePlay flips between playing and paused
func (s *Session) TogglePlay() error {
	if s.IsPlaying() {
		s.Pause()
		return nil
	}
	return s.Play()
}

// Seek moves the playhead, clamped to [0, totalDuration], and arms the
// debounced reconciliation regardless of playback state so scrubbing
// while paused still repositions the audio elements
func (s *Session) Seek(t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = clamp(t, 0, s.tl.TotalDuration())
	s.scheduleSyncLocked()
}

// SkipToStart is an unconditional stop at the head of the timeline:
// the audio pause is immediate, not debounced
func (s *Session) SkipToStart() {
	s.skipTo(0)
}

// SkipToEnd is an unconditional stop at the tail of the timeline
func (s *Session) SkipToEnd() {
	s.mu.Lock()
	total := s.tl.TotalDuration()
	s.mu.Unlock()
	s.skipTo(total)
}

func (s *Session) skipTo(t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelPendingLocked()
	s.current = clamp(t, 0, s.tl.TotalDuration())
	s.playing = false
	s.pauseAllLocked()
}

// SetVolume clamps to [0,1] and applies immediately to every tracked
// element, including ones not currently sounding
func (s *Session) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.volume = clamp(v, 0, 1)
	for _, el := range s.elements {
		el.SetVolume(s.volume)
	}
}

// ToggleFullscreen requests or exits fullscreen presentation. The
// observed state flips only when the host delivers its change
// notification.
func (s *Session) ToggleFullscreen() {
	s.mu.Lock()
	host := s.fsHost
	active := s.fullscreen
	s.mu.Unlock()

	if host == nil {
		return
	}

	if active {
		host.Exit()
		return
	}
	if err := host.Request(); err != nil {
		s.logger.Error().Err(err).Msg("fullscreen request failed")
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
