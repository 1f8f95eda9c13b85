package journal

import (
	"path/filepath"
	"testing"
	"time"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name    string
		day     string
		ordinal int
		want    string
	}{
		{name: "first entry of day", day: "2024-03-09", ordinal: 0, want: "2024-03-09.md"},
		{name: "second entry of day", day: "2024-03-09", ordinal: 1, want: "2024-03-09a.md"},
		{name: "third entry of day", day: "2024-03-09", ordinal: 2, want: "2024-03-09b.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileName(tt.day, tt.ordinal); got != tt.want {
				t.Errorf("FileName(%q, %d) = %q, want %q", tt.day, tt.ordinal, got, tt.want)
			}
		})
	}
}

func TestSubDir(t *testing.T) {
	entry := &Entry{CreationDate: time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)}

	want := filepath.Join("2024", "2024-03")
	if got := SubDir(entry); got != want {
		t.Errorf("SubDir() = %q, want %q", got, want)
	}
}
