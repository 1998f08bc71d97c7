package media

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// Element is one audio playback element bound to a single clip source.
// The synchronizer is the sole caller; it never issues Play against an
// element it believes is already sounding.
type Element interface {
	// Preload begins buffering the source; Ready flips once enough
	// data is available for playback to start without stalling.
	Preload()
	Ready() bool

	// Play starts playback from the last set position. The start is
	// asynchronous; a preempting Pause may abort it, which surfaces
	// as an error satisfying IsAborted.
	Play() error
	Pause()
	Paused() bool

	SetPosition(seconds float64)
	SetVolume(volume float64)

	// Close pauses the element and releases its source
	Close()
}

// Player creates playback elements for clip sources
type Player interface {
	NewElement(source string) Element
}

// ErrAborted marks a playback start that was preempted by a newer
// pause or seek before it completed. Benign, never user-visible.
var ErrAborted = errors.New("playback start aborted")

// IsAborted reports whether a play failure was caused by preemption
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled)
}

// LoadError is a media load failure carrying the clip title and the
// underlying reason, for user-facing reporting
type LoadError struct {
	Title  string
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Title, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// mediaTypes covers the audio extensions the stdlib table omits
var mediaTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".flac": "audio/flac",
	".bmp":  "image/bmp",
}

// TypeForPath guesses the MIME type of a media source from its name
func TypeForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := mediaTypes[ext]; ok {
		return t
	}
	return mime.TypeByExtension(ext)
}
