package site

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/rohitfarmer/journal/internal/journal"
)

// page carries the fields every template needs: the chrome around the
// content. Prefix is "" on root pages and "../" on tag pages.
type page struct {
	SiteTitle   string
	SiteTagline string
	PageTitle   string
	Prefix      string
	Years       []int
	ActiveYear  int
	OnThisDay   bool
	ShowSearch  bool
	ExtraHead   []template.HTML
	ExtraFooter []template.HTML
}

type tagPill struct {
	Label string
	Slug  string
}

type entryView struct {
	Date     string
	Tags     []tagPill
	Body     template.HTML
	Prefix   string
	LinkTags bool
}

type yearPage struct {
	page
	Year      int
	IsIndex   bool
	OrderText string
	Entries   []entryView
}

type tagPage struct {
	page
	TagLabel string
	Entries  []entryView
}

type tagIndexItem struct {
	Label string
	Slug  string
	Count int
}

type tagIndexPage struct {
	page
	Tags []tagIndexItem
}

type onThisDayPage struct {
	page
	TodayLabel string
	Entries    []entryView
}

func (b *Builder) basePage(title, prefix string) page {
	head := make([]template.HTML, 0, len(b.cfg.ExtraHead))
	for _, h := range b.cfg.ExtraHead {
		head = append(head, template.HTML(h))
	}
	footer := make([]template.HTML, 0, len(b.cfg.ExtraFooter))
	for _, f := range b.cfg.ExtraFooter {
		footer = append(footer, template.HTML(f))
	}
	// Sidebar lists years newest first.
	years := b.repo.Years()
	for i, j := 0, len(years)-1; i < j; i, j = i+1, j-1 {
		years[i], years[j] = years[j], years[i]
	}
	return page{
		SiteTitle:   b.cfg.SiteTitle,
		SiteTagline: b.cfg.SiteTagline,
		PageTitle:   title,
		Prefix:      prefix,
		Years:       years,
		ExtraHead:   head,
		ExtraFooter: footer,
	}
}

// entryViews projects entries for templating. Tag pills show the canonical
// label for each slug so a tag reads the same on every page, while the
// pill order stays the entry's own source order.
func (b *Builder) entryViews(entries []journal.Entry, prefix string, linkTags bool) []entryView {
	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		pills := make([]tagPill, 0, len(e.Tags))
		for _, t := range e.Tags {
			label := t.Label
			if canonical, ok := b.repo.TagLabel(t.Slug); ok {
				label = canonical
			}
			pills = append(pills, tagPill{Label: label, Slug: t.Slug})
		}
		views = append(views, entryView{
			Date:     e.DateString,
			Tags:     pills,
			Body:     e.BodyHTML,
			Prefix:   prefix,
			LinkTags: linkTags,
		})
	}
	return views
}

func (b *Builder) renderPage(name, relPath string, data any) error {
	var buf bytes.Buffer
	if err := b.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", relPath, err)
	}
	return b.writeFile(relPath, buf.Bytes())
}

func (b *Builder) writeYearPage(year int, isIndex bool) error {
	title := fmt.Sprintf("%s – %d", b.cfg.SiteTitle, year)
	if isIndex {
		title = b.cfg.SiteTitle
	}
	orderText := "reverse chronological"
	if b.cfg.Order == "chronological" {
		orderText = "chronological"
	}

	data := yearPage{
		page:      b.basePage(title, ""),
		Year:      year,
		IsIndex:   isIndex,
		OrderText: orderText,
		Entries:   b.entryViews(b.repo.ByYear(year), "", true),
	}
	data.ActiveYear = year
	data.ShowSearch = b.cfg.EnableSearch

	relPath := fmt.Sprintf("%d.html", year)
	if isIndex {
		relPath = "index.html"
	}
	return b.renderPage("year.html", relPath, data)
}

func (b *Builder) writeTagPages() error {
	index := b.repo.TagIndex()
	slugs := make([]string, 0, len(index))
	for slug := range index {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	for _, slug := range slugs {
		data := tagPage{
			page:     b.basePage(fmt.Sprintf("%s – Tag: %s", b.cfg.SiteTitle, index[slug].Label), "../"),
			TagLabel: index[slug].Label,
			Entries:  b.entryViews(b.repo.ByTag(slug), "../", false),
		}
		if err := b.renderPage("tag.html", "tag/"+slug+".html", data); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) writeTagIndexPage() error {
	index := b.repo.TagIndex()
	items := make([]tagIndexItem, 0, len(index))
	for slug, info := range index {
		items = append(items, tagIndexItem{Label: info.Label, Slug: slug, Count: info.Count})
	}
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Label) < strings.ToLower(items[j].Label)
	})

	data := tagIndexPage{
		page: b.basePage(b.cfg.SiteTitle+" – Tags", ""),
		Tags: items,
	}
	return b.renderPage("tags.html", "tags.html", data)
}

func (b *Builder) writeOnThisDay() error {
	matches := b.repo.OnThisDay(b.now.Month(), b.now.Day())
	data := onThisDayPage{
		page:       b.basePage(b.cfg.SiteTitle+" – On this day", ""),
		TodayLabel: b.now.Format("January 2"),
		Entries:    b.entryViews(matches, "", true),
	}
	data.OnThisDay = true
	return b.renderPage("on-this-day.html", "on-this-day.html", data)
}
