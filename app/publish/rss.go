package publish

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/cuiamaster/comunistando/app/news"
)

// WriteFeeds renders rss/index.xml with every item plus one rss/<slug>.xml
// per country, all in collection order.
func (p *Publisher) WriteFeeds(items []news.Item, countries []string) error {
	general := buildRSS(
		"Comunistando — Feed Geral",
		"Breaking News do mundo socialista (feed geral)",
		p.baseURL+"/",
		items,
	)
	if err := p.writeFile(filepath.Join("rss", "index.xml"), []byte(general)); err != nil {
		return err
	}

	for _, country := range countries {
		filtered := make([]news.Item, 0, len(items))
		for _, item := range items {
			if item.Country == country {
				filtered = append(filtered, item)
			}
		}

		feed := buildRSS(
			"Comunistando — "+country,
			"Breaking News — "+country,
			p.baseURL+"/categoria/"+Slugify(country)+"/",
			filtered,
		)
		name := filepath.Join("rss", Slugify(country)+".xml")
		if err := p.writeFile(name, []byte(feed)); err != nil {
			return err
		}
	}
	return nil
}

func buildRSS(title, description, link string, items []news.Item) string {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0">`)
	buf.WriteString("\n  <channel>\n")

	writeCDATA(&buf, "title", title, 4)
	writeElement(&buf, "link", link, 4)
	writeCDATA(&buf, "description", description, 4)
	writeElement(&buf, "language", "pt-BR", 4)
	writeElement(&buf, "lastBuildDate", rfc822(time.Now()), 4)

	for _, item := range items {
		writeRSSItem(&buf, item)
	}

	buf.WriteString("  </channel>\n</rss>\n")
	return buf.String()
}

func writeRSSItem(buf *bytes.Buffer, item news.Item) {
	buf.WriteString("    <item>\n")

	writeCDATA(buf, "title", item.Title, 6)
	writeElement(buf, "link", item.SourceURL, 6)
	writeCDATA(buf, "description", item.Summary, 6)
	writeElement(buf, "pubDate", rfc822(parseTime(item.PublishedAt)), 6)

	if item.SourceName != "" {
		buf.WriteString(fmt.Sprintf("      <source url=\"%s\">", html.EscapeString(item.SourceURL)))
		xml.EscapeText(buf, []byte(item.SourceName))
		buf.WriteString("</source>\n")
	}

	buf.WriteString("    </item>\n")
}

func writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func writeCDATA(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString("><![CDATA[")
	buf.WriteString(cdataSafe(content))
	buf.WriteString("]]></")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

// cdataSafe splits an embedded "]]>" so the section cannot terminate early.
func cdataSafe(s string) string {
	return strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>")
}

// rfc822 renders the RSS 2.0 pubDate format with an explicit GMT zone.
func rfc822(t time.Time) string {
	return t.UTC().Format("Mon, 02 Jan 2006 15:04:05") + " GMT"
}

func parseTime(s string) time.Time {
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Now()
	}
	return t
}
