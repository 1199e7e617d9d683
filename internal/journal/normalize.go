package journal

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// BodyRenderer turns an entry body's Markdown into HTML plus the plain-text
// projection used for search indexing.
type BodyRenderer interface {
	Render(src []byte) (html string, text string, err error)
}

// draftTokens is the full set of accepted draft spellings. Anything outside
// the table is a validation error: a typo'd flag could silently publish or
// hide an entry, so the build fails loud instead of guessing.
var draftTokens = map[string]bool{
	"true": true, "yes": true, "1": true, "y": true, "on": true,
	"false": false, "no": false, "0": false, "n": false, "off": false,
}

// Normalize validates one raw entry block against the year of the folder it
// was read from and produces the finished Entry.
func Normalize(raw RawEntry, folderYear int, r BodyRenderer) (Entry, error) {
	date, err := time.Parse(dateLayout, raw.DateString)
	if err != nil {
		return Entry{}, &SourceError{Path: raw.SourcePath, Line: raw.Line, Text: raw.DateString, Msg: "invalid entry date"}
	}
	if date.Year() != folderYear {
		return Entry{}, &SourceError{
			Path: raw.SourcePath,
			Line: raw.Line,
			Text: raw.DateString,
			Msg:  fmt.Sprintf("entry year %d does not match its %d folder", date.Year(), folderYear),
		}
	}

	var tags []Tag
	draft := false
	for _, line := range raw.MetaLines {
		key, value, _ := strings.Cut(line, ":")
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "tags":
			tags = ParseTags(value)
		case "draft":
			flag, ok := draftTokens[strings.ToLower(value)]
			if !ok {
				return Entry{}, &SourceError{Path: raw.SourcePath, Line: raw.Line, Text: line, Msg: "unrecognized draft value"}
			}
			draft = flag
		default:
			// Unknown keys in the metadata zone are skipped, so new keys
			// can be introduced without breaking older builds.
		}
	}

	html, text, err := r.Render([]byte(raw.Body))
	if err != nil {
		return Entry{}, &SourceError{Path: raw.SourcePath, Line: raw.Line, Msg: fmt.Sprintf("render body: %v", err)}
	}

	return Entry{
		Date:       date,
		DateString: raw.DateString,
		Year:       date.Year(),
		Tags:       tags,
		Draft:      draft,
		BodyHTML:   template.HTML(html),
		BodyText:   text,
		SourcePath: raw.SourcePath,
	}, nil
}

// ParseTags splits a raw comma-separated tag list, trims each item, drops
// empties, and deduplicates by slug while keeping the first spelling and
// the source order for display.
func ParseTags(value string) []Tag {
	var tags []Tag
	seen := map[string]bool{}
	for _, part := range strings.Split(value, ",") {
		label := strings.TrimSpace(part)
		if label == "" {
			continue
		}
		slug := Slugify(label)
		if seen[slug] {
			continue
		}
		seen[slug] = true
		tags = append(tags, Tag{Label: label, Slug: slug})
	}
	return tags
}
