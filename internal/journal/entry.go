package journal

import (
	"fmt"
	"html/template"
	"time"
)

// Entry represents a single dated journal post after normalization.
type Entry struct {
	Date       time.Time
	DateString string // canonical YYYY-MM-DD form, doubles as the page anchor
	Year       int
	Tags       []Tag
	Draft      bool
	BodyHTML   template.HTML
	BodyText   string // whitespace-collapsed plain text, used for search only
	SourcePath string
}

// Tag is one tag as it appears on an entry: the raw spelling from the
// source plus its normalized slug.
type Tag struct {
	Label string
	Slug  string
}

// RawEntry is one entry block as cut out of a month file, before any
// validation beyond the date heading itself.
type RawEntry struct {
	DateString string
	MetaLines  []string
	Body       string
	SourcePath string
	Line       int // 1-based line of the date heading
}

// Order controls how year views are sorted.
type Order string

const (
	// OrderReverse lists entries newest first.
	OrderReverse Order = "reverse"
	// OrderChronological lists entries oldest first.
	OrderChronological Order = "chronological"
)

// SearchDocument is one flat record of the offline search index.
type SearchDocument struct {
	ID      string   `json:"id"`
	Year    int      `json:"year"`
	Date    string   `json:"date"`
	URL     string   `json:"url"`
	FullURL string   `json:"full_url"`
	Title   string   `json:"title"`
	Text    string   `json:"text"`
	Tags    []string `json:"tags"`
}

// SourceError is a fatal parse or validation error tied to a location in
// the content tree. The build stops on the first one.
type SourceError struct {
	Path string
	Line int
	Text string // the offending heading or metadata line, verbatim
	Msg  string
}

func (e *SourceError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s (%q)", e.Path, e.Line, e.Msg, e.Text)
	}
	if e.Text != "" {
		return fmt.Sprintf("%s: %s (%q)", e.Path, e.Msg, e.Text)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}
