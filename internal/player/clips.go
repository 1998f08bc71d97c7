package player

import (
	"context"
	"fmt"
	"time"

	"github.com/wrenlowe/storyreel/internal/clip"
	"github.com/wrenlowe/storyreel/internal/media"
	"github.com/wrenlowe/storyreel/internal/script"
)

// loadTimeout bounds a single media load or probe
const loadTimeout = 30 * time.Second

// AddMedia uploads one file onto the timeline. The clip's track follows
// from its MIME type; loading is asynchronous, and the clip appears at
// the end of its track only once its media has loaded. Load failures
// drop the clip and surface a notification, never a retry.
func (s *Session) AddMedia(source, title string) error {
	mimeType := media.TypeForPath(source)

	s.mu.Lock()
	c, err := s.tl.NewUpload(title, mimeType, source)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	go s.loadUpload(c)
	return nil
}

func (s *Session) loadUpload(c *clip.Clip) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	switch c.Kind {
	case clip.KindAudio:
		dur, err := s.probeDuration(ctx, c.Source)
		if err != nil {
			s.reportLoadFailure(c, err)
			return
		}

		s.mu.Lock()
		c.Duration = clip.Resolved(dur)
		s.tl.Append(c)
		s.mu.Unlock()

	default:
		img, err := s.loadImg(ctx, c.Source)
		if err != nil {
			s.reportLoadFailure(c, err)
			return
		}

		s.mu.Lock()
		s.images[c.ID] = img
		s.tl.Append(c)
		s.mu.Unlock()
	}

	s.logger.Info().Str("clip", c.ID).Str("kind", c.Kind.String()).Str("title", c.Title).Msg("clip loaded")
}

// ImportSections rebuilds the whole timeline from an ordered script
// snapshot and resets the playhead. Audio durations resolve
// asynchronously; each resolution restacks the audio track and refits
// the image track, converging to the same layout whatever the
// resolution order.
func (s *Session) ImportSections(sections []script.Section) {
	s.mu.Lock()
	s.cancelPendingLocked()
	s.pauseAllLocked()
	created := s.tl.Import(sections)
	s.current = 0
	s.playing = false
	s.mu.Unlock()

	for _, c := range created {
		go s.loadImported(c)
	}
}

func (s *Session) loadImported(c *clip.Clip) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	switch c.Kind {
	case clip.KindAudio:
		dur, err := s.probeDuration(ctx, c.Source)
		if err != nil {
			// The clip stays on the track, degraded to zero length
			s.reportLoadFailure(c, err)
			return
		}

		s.mu.Lock()
		s.tl.ResolveDuration(c.ID, dur)
		s.mu.Unlock()

	default:
		img, err := s.loadImg(ctx, c.Source)
		if err != nil {
			s.reportLoadFailure(c, err)
			return
		}

		s.mu.Lock()
		s.images[c.ID] = img
		s.mu.Unlock()
	}
}

// DeleteClip removes a clip from its track; unknown ids are a no-op.
// The playhead is clamped in case the composition shrank under it.
func (s *Session) DeleteClip(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.tl.Delete(id) {
		return
	}
	s.current = clamp(s.current, 0, s.tl.TotalDuration())
}

// ImageClips returns the image track for timeline rendering
func (s *Session) ImageClips() []*clip.Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*clip.Clip(nil), s.tl.Images()...)
}

// AudioClips returns the audio track for timeline rendering
func (s *Session) AudioClips() []*clip.Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*clip.Clip(nil), s.tl.Audio()...)
}

func (s *Session) probeDuration(ctx context.Context, source string) (float64, error) {
	if s.prober == nil {
		return 0, fmt.Errorf("no duration prober configured")
	}
	return s.prober.Duration(ctx, source)
}

func (s *Session) reportLoadFailure(c *clip.Clip, err error) {
	loadErr := &media.LoadError{Title: c.Title, Source: c.Source, Err: err}
	s.logger.Error().Err(err).Str("clip", c.ID).Str("title", c.Title).Msg("media load failed")
	if s.notifier != nil {
		kind := "image"
		if c.Kind == clip.KindAudio {
			kind = "audio"
		}
		s.notifier.Notify(fmt.Sprintf("%s Load Error", titleCase(kind)), loadErr.Error())
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
