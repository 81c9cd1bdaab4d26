package publish

import (
	"bytes"
	"encoding/xml"
)

// WriteSitemap renders sitemap.xml covering the site root, one category page
// per country and every rendered article page.
func (p *Publisher) WriteSitemap(countries, permalinks []string) error {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	buf.WriteString("\n")

	writeSitemapURL(&buf, p.baseURL+"/")
	for _, country := range countries {
		writeSitemapURL(&buf, p.baseURL+"/categoria/"+Slugify(country)+"/")
	}
	for _, permalink := range permalinks {
		writeSitemapURL(&buf, p.baseURL+"/"+permalink)
	}

	buf.WriteString("</urlset>\n")
	return p.writeFile("sitemap.xml", buf.Bytes())
}

func writeSitemapURL(buf *bytes.Buffer, loc string) {
	buf.WriteString("  <url>\n    <loc>")
	xml.EscapeText(buf, []byte(loc))
	buf.WriteString("</loc>\n  </url>\n")
}
