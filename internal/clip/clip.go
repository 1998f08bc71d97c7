package clip

import (
	"strings"

	"github.com/google/uuid"
)

// Kind distinguishes the two media capabilities a clip can have
type Kind int

const (
	KindImage Kind = iota
	KindAudio
)

func (k Kind) String() string {
	if k == KindAudio {
		return "audio"
	}
	return "image"
}

// KindForMIME infers the clip kind from a media MIME type
func KindForMIME(mimeType string) (Kind, bool) {
	switch {
	case strings.HasPrefix(mimeType, "audio"):
		return KindAudio, true
	case strings.HasPrefix(mimeType, "image"):
		return KindImage, true
	default:
		return 0, false
	}
}

// Duration is a clip length that may not be known yet. Audio lengths
// resolve asynchronously from media metadata; until then the clip is
// tracked as unresolved rather than carrying a sentinel value.
type Duration struct {
	seconds  float64
	resolved bool
}

// Unresolved returns a duration whose real value is still loading
func Unresolved() Duration {
	return Duration{}
}

// Resolved returns a known duration, clamped to non-negative
func Resolved(seconds float64) Duration {
	if seconds < 0 {
		seconds = 0
	}
	return Duration{seconds: seconds, resolved: true}
}

// Seconds returns the duration in seconds; zero while unresolved
func (d Duration) Seconds() float64 {
	return d.seconds
}

// IsResolved reports whether the real duration is known
func (d Duration) IsResolved() bool {
	return d.resolved
}

// Clip is a placed unit of image or audio media on a track
type Clip struct {
	ID        string
	Kind      Kind
	Source    string
	Duration  Duration
	StartTime float64
	Title     string

	// SectionID links back to the originating script section when
	// the clip came in through a bulk import. Traceability only.
	SectionID string
}

// New creates a clip with a fresh id and a provisional duration.
// StartTime is assigned when the clip is appended to a track.
func New(kind Kind, source, title string, provisional float64) *Clip {
	return &Clip{
		ID:       uuid.NewString(),
		Kind:     kind,
		Source:   source,
		Duration: Resolved(provisional),
		Title:    title,
	}
}

// End returns the exclusive end of the clip's interval
func (c *Clip) End() float64 {
	return c.StartTime + c.Duration.Seconds()
}

// Contains reports whether t falls within [StartTime, End)
func (c *Clip) Contains(t float64) bool {
	return t >= c.StartTime && t < c.End()
}
