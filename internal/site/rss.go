package site

import (
	"encoding/xml"
	"fmt"
	"sort"
	"time"
)

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        string   `xml:"guid"`
	PubDate     string   `xml:"pubDate"`
	Description rssCDATA `xml:"description"`
}

type rssCDATA struct {
	Text string `xml:",cdata"`
}

// writeFeed emits rss.xml for the latest year. Feed items are always
// newest first, whatever order the year pages use.
func (b *Builder) writeFeed(latestYear int) error {
	entries := b.repo.ByYear(latestYear)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date.After(entries[j].Date) })

	channelLink := fmt.Sprintf("%d.html", latestYear)
	if b.cfg.SiteURL != "" {
		channelLink = fmt.Sprintf("%s/%d.html", b.cfg.SiteURL, latestYear)
	}

	items := make([]rssItem, 0, len(entries))
	for _, e := range entries {
		link := fmt.Sprintf("%d.html#%s", latestYear, e.DateString)
		if b.cfg.SiteURL != "" {
			link = b.cfg.SiteURL + "/" + link
		}
		items = append(items, rssItem{
			Title:       fmt.Sprintf("%s – %s", e.DateString, b.cfg.SiteTitle),
			Link:        link,
			GUID:        link,
			PubDate:     e.Date.Format(time.RFC1123Z),
			Description: rssCDATA{Text: string(e.BodyHTML)},
		})
	}

	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:         fmt.Sprintf("%s – %d", b.cfg.SiteTitle, latestYear),
			Link:          channelLink,
			Description:   b.cfg.SiteTagline,
			LastBuildDate: b.now.Format(time.RFC1123Z),
			Items:         items,
		},
	}

	out, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal rss feed: %w", err)
	}
	return b.writeFile("rss.xml", append([]byte(xml.Header), append(out, '\n')...))
}
