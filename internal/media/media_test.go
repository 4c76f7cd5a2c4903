package media

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseProbeDuration(t *testing.T) {
	out := `{
  "streams": [],
  "format": {
    "filename": "episode.mkv",
    "duration": "1425.376000",
    "format_name": "matroska,webm"
  }
}`
	got, err := parseProbeDuration([]byte(out))
	if err != nil {
		t.Fatalf("parseProbeDuration returned error: %v", err)
	}
	want := 23*time.Minute + 45*time.Second + 376*time.Millisecond
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseProbeDurationErrors(t *testing.T) {
	tests := map[string]string{
		"not json":         "ffprobe: error",
		"missing duration": `{"format": {}}`,
		"negative":         `{"format": {"duration": "-1"}}`,
	}
	for name, out := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := parseProbeDuration([]byte(out)); err == nil {
				t.Errorf("expected error for %q", out)
			}
		})
	}
}

func TestDurationMissingFile(t *testing.T) {
	_, err := Duration(filepath.Join(t.TempDir(), "missing.mkv"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got: %v", err)
	}
}
