package timeline

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wrenlowe/storyreel/internal/clip"
	"github.com/wrenlowe/storyreel/internal/script"
)

// Timeline is the two-track composition under edit. The audio track is
// authoritative for total duration; the image track is fitted to it.
type Timeline struct {
	logger zerolog.Logger

	images clip.Track
	audio  clip.Track

	// Provisional length for clips whose real duration is unknown
	defaultClipDuration float64
}

// New creates an empty timeline
func New(logger zerolog.Logger, defaultClipDuration float64) *Timeline {
	if defaultClipDuration <= 0 {
		defaultClipDuration = 5
	}
	return &Timeline{
		logger:              logger.With().Str("component", "timeline").Logger(),
		defaultClipDuration: defaultClipDuration,
	}
}

// Images returns the image track clips in order
func (t *Timeline) Images() []*clip.Clip {
	return t.images.Clips()
}

// Audio returns the audio track clips in order
func (t *Timeline) Audio() []*clip.Clip {
	return t.audio.Clips()
}

// TotalDuration is the authoritative composition length: the union of
// the contiguous audio intervals
func (t *Timeline) TotalDuration() float64 {
	return t.audio.TotalDuration()
}

// ImageAt resolves the image clip visible at the given playhead time
func (t *Timeline) ImageAt(time float64) *clip.Clip {
	return t.images.At(time)
}

// NewUpload constructs a clip for a manually uploaded file. The clip is
// not on a track yet; callers append it once its media has loaded.
func (t *Timeline) NewUpload(title, mimeType, source string) (*clip.Clip, error) {
	kind, ok := clip.KindForMIME(mimeType)
	if !ok {
		return nil, fmt.Errorf("unsupported media type %q for %s", mimeType, title)
	}
	return clip.New(kind, source, title, t.defaultClipDuration), nil
}

// Append places a loaded clip at the end of its track
func (t *Timeline) Append(c *clip.Clip) {
	switch c.Kind {
	case clip.KindAudio:
		t.audio.Append(c)
	default:
		t.images.Append(c)
	}

	t.logger.Debug().
		Str("clip", c.ID).
		Str("kind", c.Kind.String()).
		Float64("start", c.StartTime).
		Float64("duration", c.Duration.Seconds()).
		Msg("clip appended")
}

// Delete removes a clip from whichever track holds it and restacks the
// remaining clips of that track contiguously from zero
func (t *Timeline) Delete(id string) bool {
	if t.images.Remove(id) {
		t.logger.Debug().Str("clip", id).Msg("image clip deleted")
		return true
	}
	if t.audio.Remove(id) {
		t.logger.Debug().Str("clip", id).Msg("audio clip deleted")
		return true
	}
	return false
}

// Import replaces the timeline contents from an ordered section list.
// Audio durations are unknown at this point; callers resolve each one
// via ResolveDuration as metadata loads, which refits the image track.
func (t *Timeline) Import(sections []script.Section) []*clip.Clip {
	t.images.Reset()
	t.audio.Reset()

	var created []*clip.Clip

	for _, section := range sections {
		for i, url := range section.ImageURLs {
			c := clip.New(clip.KindImage, url, fmt.Sprintf("%s (Image %d)", section.Title, i+1), 0)
			c.Duration = clip.Unresolved()
			c.SectionID = section.ID
			t.images.Append(c)
			created = append(created, c)
		}

		if section.AudioURL != "" {
			c := clip.New(clip.KindAudio, section.AudioURL, fmt.Sprintf("%s (Audio)", section.Title), 0)
			c.Duration = clip.Unresolved()
			c.SectionID = section.ID
			t.audio.Append(c)
			created = append(created, c)
		}
	}

	t.logger.Info().
		Int("sections", len(sections)).
		Int("images", t.images.Len()).
		Int("audio", t.audio.Len()).
		Msg("imported sections")

	return created
}

// ResolveDuration records the real duration of a clip once its media
// metadata has loaded, restacks its track, and refits the image track
// when the audio total changed
func (t *Timeline) ResolveDuration(id string, seconds float64) {
	if c := t.audio.Get(id); c != nil {
		c.Duration = clip.Resolved(seconds)
		t.audio.Restack()
		t.RefitImages()
		return
	}

	if c := t.images.Get(id); c != nil && !c.Duration.IsResolved() {
		c.Duration = clip.Resolved(seconds)
		t.images.Restack()
	}
}

// RefitImages redistributes the image track evenly across the total
// audio duration known so far. Repeatable: running it again with the
// same resolved durations yields the same layout. With no images it is
// a no-op; with no audio, images fall back to the default duration.
func (t *Timeline) RefitImages() {
	imageCount := t.images.Len()
	if imageCount == 0 {
		return
	}

	totalAudio := t.audio.TotalDuration()
	perImage := t.defaultClipDuration
	if totalAudio > 0 {
		perImage = totalAudio / float64(imageCount)
	}

	for _, c := range t.images.Clips() {
		c.Duration = clip.Resolved(perImage)
	}
	t.images.Restack()

	t.logger.Debug().
		Float64("total_audio", totalAudio).
		Float64("per_image", perImage).
		Msg("image track refitted")
}

// Reset drops all clips from both tracks
func (t *Timeline) Reset() {
	t.images.Reset()
	t.audio.Reset()
}
