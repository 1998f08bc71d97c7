package script

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sections.json")
	data := []byte(`[
  {"id": "s1", "title": "Opening", "content": "...", "imageUrls": ["i1.png", "i2.png"], "audioUrl": "a1.mp3"},
  {"id": "s2", "title": "Closing", "imageUrls": ["i3.png"]}
]`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	sections, err := LoadSections(path)
	if err != nil {
		t.Fatalf("LoadSections failed: %v", err)
	}

	if len(sections) != 2 {
		t.Fatalf("loaded %d sections, want 2", len(sections))
	}
	if sections[0].ID != "s1" || sections[0].Title != "Opening" {
		t.Errorf("first section = %+v", sections[0])
	}
	if len(sections[0].ImageURLs) != 2 {
		t.Errorf("first section has %d images, want 2", len(sections[0].ImageURLs))
	}
	if sections[0].AudioURL != "a1.mp3" {
		t.Errorf("first section audio = %q", sections[0].AudioURL)
	}
	if sections[1].AudioURL != "" {
		t.Errorf("second section audio = %q, want empty", sections[1].AudioURL)
	}
}

func TestLoadSectionsFailures(t *testing.T) {
	if _, err := LoadSections("nonexistent.json"); err == nil {
		t.Error("LoadSections should fail for missing files")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(bad, []byte("{not json"), 0644)
	if _, err := LoadSections(bad); err == nil {
		t.Error("LoadSections should fail for malformed JSON")
	}
}
