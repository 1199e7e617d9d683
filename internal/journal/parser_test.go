package journal

import (
	"errors"
	"strings"
	"testing"
)

func TestParseMonth_SplitsOnDateHeadings(t *testing.T) {
	src := `# December 2025

## 2025-12-02
tags: outdoors, family

Went for a long walk.

## 2025-12-05

Quiet day.
`
	entries, err := ParseMonth("content/2025/2025-12.md", []byte(src))
	if err != nil {
		t.Fatalf("ParseMonth() unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ParseMonth() got %d entries, want 2", len(entries))
	}
	if entries[0].DateString != "2025-12-02" || entries[1].DateString != "2025-12-05" {
		t.Errorf("dates = %q, %q", entries[0].DateString, entries[1].DateString)
	}
	if got := entries[0].MetaLines; len(got) != 1 || got[0] != "tags: outdoors, family" {
		t.Errorf("meta lines = %q", got)
	}
	if entries[0].Body != "Went for a long walk." {
		t.Errorf("body = %q", entries[0].Body)
	}
	if entries[1].Body != "Quiet day." {
		t.Errorf("body = %q", entries[1].Body)
	}
}

func TestParseMonth_DiscardsTextBeforeFirstHeading(t *testing.T) {
	src := "# December 2025\n\nstray prose\n\n## 2025-12-02\n\nBody.\n"
	entries, err := ParseMonth("m.md", []byte(src))
	if err != nil {
		t.Fatalf("ParseMonth() unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if strings.Contains(entries[0].Body, "stray prose") {
		t.Errorf("pre-heading text leaked into body: %q", entries[0].Body)
	}
}

func TestParseMonth_RejectsMalformedDates(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"wrong digit counts", "## 2025-1-2\n\nBody.\n"},
		{"impossible month", "## 2025-13-01\n\nBody.\n"},
		{"impossible day", "## 2025-02-30\n\nBody.\n"},
		{"not a date at all", "## Thoughts\n\nBody.\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMonth("content/2025/2025-01.md", []byte(tt.src))
			if err == nil {
				t.Fatal("ParseMonth() expected error, got nil")
			}
			var srcErr *SourceError
			if !errors.As(err, &srcErr) {
				t.Fatalf("error type = %T, want *SourceError", err)
			}
			if srcErr.Path != "content/2025/2025-01.md" {
				t.Errorf("error path = %q", srcErr.Path)
			}
			if srcErr.Text == "" {
				t.Error("error does not carry the offending line")
			}
		})
	}
}

func TestParseMonth_DeeperHeadingsAreBody(t *testing.T) {
	src := "## 2025-12-02\n\nIntro.\n\n### 2025-12-03\n\nStill the same entry.\n"
	entries, err := ParseMonth("m.md", []byte(src))
	if err != nil {
		t.Fatalf("ParseMonth() unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if !strings.Contains(entries[0].Body, "### 2025-12-03") {
		t.Errorf("level-3 heading not kept in body: %q", entries[0].Body)
	}
}

func TestParseMonth_MetadataZone(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantMeta []string
		wantBody string
	}{
		{
			name:     "zone ends at blank line",
			src:      "## 2025-12-02\ntags: a\ndraft: true\n\ntags: x is body now\n",
			wantMeta: []string{"tags: a", "draft: true"},
			wantBody: "tags: x is body now",
		},
		{
			name:     "unrecognized key stays in zone",
			src:      "## 2025-12-02\ntags: a\nmood: good\n\nBody.\n",
			wantMeta: []string{"tags: a", "mood: good"},
			wantBody: "Body.",
		},
		{
			name:     "missing blank line, body starts at first non-meta line",
			src:      "## 2025-12-02\ntags: a\nJust started writing.\n",
			wantMeta: []string{"tags: a"},
			wantBody: "Just started writing.",
		},
		{
			name:     "no metadata at all",
			src:      "## 2025-12-02\n\nBody only.\n",
			wantMeta: nil,
			wantBody: "Body only.",
		},
		{
			name:     "bare url is not metadata",
			src:      "## 2025-12-02\nhttps://example.com/a\n",
			wantMeta: nil,
			wantBody: "https://example.com/a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ParseMonth("m.md", []byte(tt.src))
			if err != nil {
				t.Fatalf("ParseMonth() unexpected error: %v", err)
			}
			if len(entries) != 1 {
				t.Fatalf("got %d entries, want 1", len(entries))
			}
			e := entries[0]
			if len(e.MetaLines) != len(tt.wantMeta) {
				t.Fatalf("meta lines = %q, want %q", e.MetaLines, tt.wantMeta)
			}
			for i := range tt.wantMeta {
				if e.MetaLines[i] != tt.wantMeta[i] {
					t.Errorf("meta line %d = %q, want %q", i, e.MetaLines[i], tt.wantMeta[i])
				}
			}
			if e.Body != tt.wantBody {
				t.Errorf("body = %q, want %q", e.Body, tt.wantBody)
			}
		})
	}
}

func TestParseMonth_StripsFrontmatter(t *testing.T) {
	src := "---\neditor: obsidian\n---\n\n## 2025-12-02\n\nBody.\n"
	entries, err := ParseMonth("m.md", []byte(src))
	if err != nil {
		t.Fatalf("ParseMonth() unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Body != "Body." {
		t.Errorf("body = %q", entries[0].Body)
	}
	if entries[0].Line < 5 {
		t.Errorf("heading line %d does not account for stripped frontmatter", entries[0].Line)
	}
}

func TestParseMonth_EmptyFile(t *testing.T) {
	entries, err := ParseMonth("m.md", nil)
	if err != nil {
		t.Fatalf("ParseMonth() unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries from empty file, want 0", len(entries))
	}
}
