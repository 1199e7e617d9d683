package journal

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

const dateLayout = "2006-01-02"

var (
	// Entries start at level-2 headings like "## 2025-12-02". Deeper
	// headings belong to entry bodies and never split.
	dateHeadingRe = regexp.MustCompile(`^##\s+(.*?)\s*$`)
	dateShapeRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	// A metadata line is "key: value" (or a bare "key:") with a single-word
	// key. Anything else ends the metadata zone and starts the body.
	metaLineRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*:(\s.*)?$`)
)

// ParseMonth splits the raw text of one month file into ordered raw entry
// blocks. Any level-2 heading must carry a strictly valid YYYY-MM-DD date;
// a malformed one rejects the whole file rather than producing a partial
// month. Text before the first date heading (month titles, stray prose) is
// discarded.
func ParseMonth(path string, src []byte) ([]RawEntry, error) {
	body, offset := stripFrontmatter(src)
	lines := splitLines(body)

	var entries []RawEntry
	var current *RawEntry
	var collected []string

	flush := func() {
		if current == nil {
			return
		}
		meta, bodyText := splitMeta(collected)
		current.MetaLines = meta
		current.Body = bodyText
		entries = append(entries, *current)
		current = nil
		collected = nil
	}

	for i, line := range lines {
		m := dateHeadingRe.FindStringSubmatch(line)
		if m == nil {
			if current != nil {
				collected = append(collected, line)
			}
			continue
		}

		heading := m[1]
		if !dateShapeRe.MatchString(heading) {
			return nil, &SourceError{
				Path: path,
				Line: offset + i + 1,
				Text: line,
				Msg:  "date heading must be YYYY-MM-DD",
			}
		}
		if _, err := time.Parse(dateLayout, heading); err != nil {
			return nil, &SourceError{
				Path: path,
				Line: offset + i + 1,
				Text: line,
				Msg:  "date heading is not a real calendar date",
			}
		}

		flush()
		current = &RawEntry{
			DateString: heading,
			SourcePath: path,
			Line:       offset + i + 1,
		}
	}
	flush()

	return entries, nil
}

// stripFrontmatter removes an optional YAML frontmatter block from the top
// of a month file. Editors like Obsidian add these; the keys are not part
// of the journal format and are not interpreted. Returns the remaining
// content and the number of lines removed, so error positions still point
// into the original file.
func stripFrontmatter(src []byte) ([]byte, int) {
	var ignored map[string]any
	rest, err := frontmatter.Parse(bytes.NewReader(src), &ignored)
	if err != nil || len(rest) == len(src) {
		return src, 0
	}
	return rest, len(splitLines(src)) - len(splitLines(rest))
}

// splitMeta separates the metadata zone from the body of one entry block.
// The zone is the contiguous run of "key: value" lines directly under the
// date heading; it ends at the first blank line or the first line that is
// not metadata-shaped. A metadata-shaped line past that point is ordinary
// body text.
func splitMeta(lines []string) (meta []string, body string) {
	i := 0
	for ; i < len(lines); i++ {
		s := strings.TrimSpace(lines[i])
		if s == "" {
			i++
			break
		}
		if !metaLineRe.MatchString(s) {
			break
		}
		meta = append(meta, s)
	}
	return meta, strings.TrimSpace(strings.Join(lines[i:], "\n"))
}

func splitLines(b []byte) []string {
	s := strings.ReplaceAll(string(b), "\r\n", "\n")
	return strings.Split(s, "\n")
}
