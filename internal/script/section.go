package script

import (
	"encoding/json"
	"fmt"
	"os"
)

// Section is one part of a generated script: narration text plus the
// media sources produced for it. Supplied wholesale at import time;
// the editor treats the list as a snapshot, not a live subscription.
type Section struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content,omitempty"`
	ImageURLs []string `json:"imageUrls,omitempty"`
	AudioURL  string   `json:"audioUrl,omitempty"`
}

// LoadSections reads an ordered section list from a JSON file
func LoadSections(path string) ([]Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sections file: %w", err)
	}

	var sections []Section
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("failed to parse sections file: %w", err)
	}

	return sections, nil
}
