package publish

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/cuiamaster/comunistando/app/news"
)

var pageTemplate = template.Must(template.New("article").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}} | Comunistando</title>
  <meta name="description" content="{{.Summary}}">
  <link rel="canonical" href="{{.Canonical}}">
</head>
<body>
  <article>
    <h1>{{.Title}}</h1>
    <p class="meta">{{.Country}} | {{.PublishedAt}}</p>
{{- if .ImageURL}}
    <img src="{{.ImageURL}}" alt="">
{{- end}}
{{.Body}}
    <p class="fonte">Fonte original: <a href="{{.SourceURL}}" rel="noopener">{{.SourceName}}</a></p>
  </article>
</body>
</html>
`))

type articlePage struct {
	Title       string
	Summary     string
	Country     string
	PublishedAt string
	SourceName  string
	SourceURL   string
	ImageURL    string
	Canonical   string
	Body        template.HTML
}

// WritePage renders the article page at the item's permalink. The body is the
// already-escaped paragraph markup produced by the translation pipeline.
func (p *Publisher) WritePage(item news.Item, body string) error {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, articlePage{
		Title:       item.Title,
		Summary:     item.Summary,
		Country:     item.Country,
		PublishedAt: item.PublishedAt,
		SourceName:  item.SourceName,
		SourceURL:   item.SourceURL,
		ImageURL:    item.ImageURL,
		Canonical:   p.baseURL + "/" + item.Permalink,
		Body:        template.HTML(body),
	})
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", item.Permalink, err)
	}
	return p.writeFile(item.Permalink, buf.Bytes())
}
