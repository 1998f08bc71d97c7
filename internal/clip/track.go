package clip

// Track is one of the two parallel clip sequences sharing the timeline.
// Clips are kept contiguous: each clip starts where the previous one ends.
type Track struct {
	clips []*Clip
}

// Append places a clip at the current end of the track
func (t *Track) Append(c *Clip) {
	c.StartTime = t.End()
	t.clips = append(t.clips, c)
}

// End returns the end of the last clip, or 0 for an empty track
func (t *Track) End() float64 {
	end := 0.0
	for _, c := range t.clips {
		if c.End() > end {
			end = c.End()
		}
	}
	return end
}

// TotalDuration sums the durations of all clips on the track
func (t *Track) TotalDuration() float64 {
	total := 0.0
	for _, c := range t.clips {
		total += c.Duration.Seconds()
	}
	return total
}

// At returns the clip whose interval contains the given time, or nil.
// Intervals never overlap, so the first match is the only match.
func (t *Track) At(time float64) *Clip {
	for _, c := range t.clips {
		if c.Contains(time) {
			return c
		}
	}
	return nil
}

// Get returns the clip with the given id, or nil
func (t *Track) Get(id string) *Clip {
	for _, c := range t.clips {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Remove deletes the clip with the given id and restacks the remaining
// clips contiguously from zero. Unknown ids are a no-op.
func (t *Track) Remove(id string) bool {
	idx := -1
	for i, c := range t.clips {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	t.clips = append(t.clips[:idx], t.clips[idx+1:]...)
	t.Restack()
	return true
}

// Restack recomputes contiguous start times from zero, preserving order
func (t *Track) Restack() {
	start := 0.0
	for _, c := range t.clips {
		c.StartTime = start
		start += c.Duration.Seconds()
	}
}

// Clips returns the clips in track order
func (t *Track) Clips() []*Clip {
	return t.clips
}

// Len returns the number of clips on the track
func (t *Track) Len() int {
	return len(t.clips)
}

// Reset drops every clip from the track
func (t *Track) Reset() {
	t.clips = nil
}
