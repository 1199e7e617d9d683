package journal

import (
	"fmt"
	"sort"
	"time"
)

// TagInfo is one row of the tag index: the canonical display label for a
// slug and how many visible entries carry it.
type TagInfo struct {
	Label string
	Count int
}

// Repository holds every normalized entry from the whole content tree.
// It is built once per run and read-only afterwards; all views are derived
// projections that filter and sort copies, never the stored slice.
type Repository struct {
	entries       []Entry
	order         Order
	includeDrafts bool
	tagLabels     map[string]string
}

// NewRepository builds the repository from entries in deterministic
// file-processing order (years sorted, then filenames). The first spelling
// seen for a tag slug in that order becomes its display label everywhere.
// Two entries sharing a date anywhere in the corpus is a fatal error.
func NewRepository(entries []Entry, order Order, includeDrafts bool) (*Repository, error) {
	byDate := make(map[string]string, len(entries))
	labels := make(map[string]string)
	for _, e := range entries {
		if prev, ok := byDate[e.DateString]; ok {
			return nil, &SourceError{
				Path: e.SourcePath,
				Text: e.DateString,
				Msg:  fmt.Sprintf("duplicate entry date, first seen in %s", prev),
			}
		}
		byDate[e.DateString] = e.SourcePath
		for _, t := range e.Tags {
			if _, ok := labels[t.Slug]; !ok {
				labels[t.Slug] = t.Label
			}
		}
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	return &Repository{
		entries:       sorted,
		order:         order,
		includeDrafts: includeDrafts,
		tagLabels:     labels,
	}, nil
}

func (r *Repository) visible(e Entry) bool {
	return r.includeDrafts || !e.Draft
}

// ByYear returns the visible entries of one year, sorted per the configured
// order.
func (r *Repository) ByYear(year int) []Entry {
	var out []Entry
	for _, e := range r.entries {
		if e.Year == year && r.visible(e) {
			out = append(out, e)
		}
	}
	if r.order == OrderReverse {
		reverseEntries(out)
	}
	return out
}

// Years lists every year with at least one visible entry, ascending.
func (r *Repository) Years() []int {
	seen := map[int]bool{}
	var years []int
	for _, e := range r.entries {
		if r.visible(e) && !seen[e.Year] {
			seen[e.Year] = true
			years = append(years, e.Year)
		}
	}
	sort.Ints(years)
	return years
}

// LatestYear returns the most recent year with visible entries. The second
// return is false when the corpus has none.
func (r *Repository) LatestYear() (int, bool) {
	years := r.Years()
	if len(years) == 0 {
		return 0, false
	}
	return years[len(years)-1], true
}

// ByTag returns the visible entries carrying a tag slug, newest first. Tag
// pages are defined as newest-first regardless of the configured order.
func (r *Repository) ByTag(slug string) []Entry {
	var out []Entry
	for _, e := range r.entries {
		if !r.visible(e) {
			continue
		}
		for _, t := range e.Tags {
			if t.Slug == slug {
				out = append(out, e)
				break
			}
		}
	}
	reverseEntries(out)
	return out
}

// TagIndex maps every tag slug with at least one visible entry to its
// display label and count. Iteration order is the caller's concern.
func (r *Repository) TagIndex() map[string]TagInfo {
	index := map[string]TagInfo{}
	for _, e := range r.entries {
		if !r.visible(e) {
			continue
		}
		for _, t := range e.Tags {
			info := index[t.Slug]
			info.Label = r.tagLabels[t.Slug]
			info.Count++
			index[t.Slug] = info
		}
	}
	return index
}

// TagLabel resolves the canonical display label for a slug.
func (r *Repository) TagLabel(slug string) (string, bool) {
	label, ok := r.tagLabels[slug]
	return label, ok
}

// OnThisDay returns visible entries from any year whose date matches the
// given month and day, newest first. The caller passes the build-time date
// once, so a run that straddles midnight stays internally consistent.
func (r *Repository) OnThisDay(month time.Month, day int) []Entry {
	var out []Entry
	for _, e := range r.entries {
		if r.visible(e) && e.Date.Month() == month && e.Date.Day() == day {
			out = append(out, e)
		}
	}
	reverseEntries(out)
	return out
}

// SearchDocuments flattens every visible entry into one search index
// record. IDs are the entry dates, unique by construction.
func (r *Repository) SearchDocuments(siteURL string) []SearchDocument {
	var docs []SearchDocument
	for _, e := range r.entries {
		if !r.visible(e) {
			continue
		}
		url := fmt.Sprintf("%d.html#%s", e.Year, e.DateString)
		fullURL := url
		if siteURL != "" {
			fullURL = siteURL + "/" + url
		}
		tags := make([]string, 0, len(e.Tags))
		for _, t := range e.Tags {
			tags = append(tags, t.Label)
		}
		docs = append(docs, SearchDocument{
			ID:      e.DateString,
			Year:    e.Year,
			Date:    e.DateString,
			URL:     url,
			FullURL: fullURL,
			Title:   e.DateString,
			Text:    e.BodyText,
			Tags:    tags,
		})
	}
	return docs
}

func reverseEntries(entries []Entry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}
