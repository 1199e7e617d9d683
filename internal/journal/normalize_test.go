package journal

import (
	"errors"
	"testing"
)

// stubRenderer stands in for the markdown renderer where only metadata
// handling is under test.
type stubRenderer struct{}

func (stubRenderer) Render(src []byte) (string, string, error) {
	return "<p>" + string(src) + "</p>", string(src), nil
}

func rawEntry(date string, meta ...string) RawEntry {
	return RawEntry{
		DateString: date,
		MetaLines:  meta,
		Body:       "Body.",
		SourcePath: "content/2025/2025-12.md",
		Line:       3,
	}
}

func TestNormalize_Defaults(t *testing.T) {
	e, err := Normalize(rawEntry("2025-12-02"), 2025, stubRenderer{})
	if err != nil {
		t.Fatalf("Normalize() unexpected error: %v", err)
	}
	if e.Draft {
		t.Error("draft should default to false")
	}
	if len(e.Tags) != 0 {
		t.Errorf("tags = %v, want none", e.Tags)
	}
	if e.Year != 2025 || e.DateString != "2025-12-02" {
		t.Errorf("year/date = %d/%q", e.Year, e.DateString)
	}
	if e.BodyHTML != "<p>Body.</p>" {
		t.Errorf("body html = %q", e.BodyHTML)
	}
}

func TestNormalize_Tags(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		wantSlugs  []string
		wantLabels []string
	}{
		{
			name:       "trims and preserves source order",
			value:      "tags:  outdoors , family",
			wantSlugs:  []string{"outdoors", "family"},
			wantLabels: []string{"outdoors", "family"},
		},
		{
			name:       "dedupes by slug keeping first spelling",
			value:      "tags: Coding, coding,  CODING",
			wantSlugs:  []string{"coding"},
			wantLabels: []string{"Coding"},
		},
		{
			name:       "drops empty items",
			value:      "tags: , ,",
			wantSlugs:  nil,
			wantLabels: nil,
		},
		{
			name:       "multi-word tags slug with hyphens",
			value:      "tags: My Tag",
			wantSlugs:  []string{"my-tag"},
			wantLabels: []string{"My Tag"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Normalize(rawEntry("2025-12-02", tt.value), 2025, stubRenderer{})
			if err != nil {
				t.Fatalf("Normalize() unexpected error: %v", err)
			}
			if len(e.Tags) != len(tt.wantSlugs) {
				t.Fatalf("tags = %v, want %d", e.Tags, len(tt.wantSlugs))
			}
			for i := range tt.wantSlugs {
				if e.Tags[i].Slug != tt.wantSlugs[i] {
					t.Errorf("slug %d = %q, want %q", i, e.Tags[i].Slug, tt.wantSlugs[i])
				}
				if e.Tags[i].Label != tt.wantLabels[i] {
					t.Errorf("label %d = %q, want %q", i, e.Tags[i].Label, tt.wantLabels[i])
				}
			}
		})
	}
}

func TestNormalize_DraftTokens(t *testing.T) {
	truthy := []string{"true", "TRUE", "Yes", "1", "y", "on"}
	falsy := []string{"false", "No", "0", "n", "OFF"}

	for _, tok := range truthy {
		e, err := Normalize(rawEntry("2025-12-02", "draft: "+tok), 2025, stubRenderer{})
		if err != nil {
			t.Fatalf("draft %q: unexpected error: %v", tok, err)
		}
		if !e.Draft {
			t.Errorf("draft %q parsed as false", tok)
		}
	}
	for _, tok := range falsy {
		e, err := Normalize(rawEntry("2025-12-02", "draft: "+tok), 2025, stubRenderer{})
		if err != nil {
			t.Fatalf("draft %q: unexpected error: %v", tok, err)
		}
		if e.Draft {
			t.Errorf("draft %q parsed as true", tok)
		}
	}
}

func TestNormalize_BadDraftTokenIsFatal(t *testing.T) {
	_, err := Normalize(rawEntry("2025-12-02", "draft: maybe"), 2025, stubRenderer{})
	if err == nil {
		t.Fatal("Normalize() expected error for bad draft token, got nil")
	}
	var srcErr *SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("error type = %T, want *SourceError", err)
	}
	if srcErr.Text != "draft: maybe" {
		t.Errorf("error text = %q, want the raw line", srcErr.Text)
	}
}

func TestNormalize_YearMismatchIsFatal(t *testing.T) {
	_, err := Normalize(rawEntry("2025-12-02"), 2024, stubRenderer{})
	if err == nil {
		t.Fatal("Normalize() expected error for year mismatch, got nil")
	}
	var srcErr *SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("error type = %T, want *SourceError", err)
	}
}

func TestNormalize_UnknownMetaKeysIgnored(t *testing.T) {
	e, err := Normalize(rawEntry("2025-12-02", "mood: good", "tags: a"), 2025, stubRenderer{})
	if err != nil {
		t.Fatalf("Normalize() unexpected error: %v", err)
	}
	if len(e.Tags) != 1 || e.Tags[0].Slug != "a" {
		t.Errorf("tags = %v", e.Tags)
	}
}
