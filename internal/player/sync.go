package player

import (
	"fmt"
	"time"

	"github.com/wrenlowe/storyreel/internal/clip"
	"github.com/wrenlowe/storyreel/internal/media"
)

// ensureElementsLocked keeps one preloaded playback element per audio
// clip, creating elements the first time a clip is seen and releasing
// elements whose clip is no longer on the timeline.
func (s *Session) ensureElementsLocked() {
	live := make(map[string]bool, len(s.tl.Audio()))

	for _, c := range s.tl.Audio() {
		live[c.ID] = true
		if _, ok := s.elements[c.ID]; ok {
			continue
		}

		el := s.player.NewElement(c.Source)
		el.SetVolume(s.volume)
		el.Preload()
		s.elements[c.ID] = el
		s.logger.Debug().Str("clip", c.ID).Msg("audio element created")
	}

	for id, el := range s.elements {
		if !live[id] {
			el.Close()
			delete(s.elements, id)
			s.logger.Debug().Str("clip", id).Msg("audio element released")
		}
	}

	for id := range s.images {
		found := false
		for _, c := range s.tl.Images() {
			if c.ID == id {
				found = true
				break
			}
		}
		if !found {
			delete(s.images, id)
		}
	}
}

// reconcileLocked is the per-tick rule: every audio element whose clip
// contains the playhead should be sounding while playing, and silent
// otherwise. Elements already in the right state are left alone.
func (s *Session) reconcileLocked() {
	for _, c := range s.tl.Audio() {
		el, ok := s.elements[c.ID]
		if !ok {
			continue
		}

		if c.Contains(s.current) && s.playing {
			if el.Paused() {
				el.SetPosition(s.current - c.StartTime)
				if err := el.Play(); err != nil {
					s.reportPlayFailure(c, err)
				}
			}
		} else if !el.Paused() {
			el.Pause()
		}
	}
}

// scheduleSyncLocked arms the debounced reconciliation. A still-pending
// task is cancelled and replaced, never queued behind, so a rapid burst
// of transport actions collapses into a single pass.
func (s *Session) scheduleSyncLocked() {
	s.cancelPendingLocked()
	s.opPending = true
	s.pending = time.AfterFunc(s.debounce, s.applySync)
}

func (s *Session) applySync() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.opPending = false
	s.pending = nil
	if s.closed {
		return
	}
	s.syncLocked()
}

// syncLocked is the full reconciliation pass: positions every element
// at the playhead and starts or stops it as the transport state
// implies. Scrubbing while paused repositions without sounding.
func (s *Session) syncLocked() {
	for _, c := range s.tl.Audio() {
		el, ok := s.elements[c.ID]
		if !ok {
			continue
		}

		if !el.Paused() {
			el.Pause()
		}

		if !c.Contains(s.current) {
			continue
		}

		el.SetPosition(s.current - c.StartTime)
		if s.playing {
			if err := el.Play(); err != nil {
				s.reportPlayFailure(c, err)
			}
		}
	}
}

// pauseAllLocked silences every element immediately, outside the
// debounce discipline. Used for unconditional stops and teardown.
func (s *Session) pauseAllLocked() {
	for _, el := range s.elements {
		if !el.Paused() {
			el.Pause()
		}
	}
}

func (s *Session) cancelPendingLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.opPending = false
}

// reportPlayFailure discriminates preempted play requests, which are
// benign, from real start failures, which are surfaced with the clip
// title and the underlying reason
func (s *Session) reportPlayFailure(c *clip.Clip, err error) {
	if media.IsAborted(err) {
		s.logger.Debug().Str("clip", c.ID).Msg("play request preempted")
		return
	}
	s.notify("Audio Playback Error", fmt.Sprintf("Failed to play audio: %s. Error: %v", c.Title, err))
}
