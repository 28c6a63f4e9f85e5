package export

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"radarchart/internal/radar"
)

// PageInput describes a standalone chart page.
type PageInput struct {
	Title string
	// Caption is markdown shown under the chart.
	Caption  string
	Chart    *radar.Chart
	Filename string
}

// markdownToHTML converts markdown to HTML. Captions come from untrusted
// definitions, so raw HTML in them is dropped.
func markdownToHTML(markdownText string) string {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(markdownText))

	htmlFlags := mdhtml.CommonFlags | mdhtml.HrefTargetBlank | mdhtml.SkipHTML
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: htmlFlags})

	return string(markdown.Render(doc, renderer))
}

// BuildPage renders a complete HTML document with the inline SVG chart, a
// download link and, when the chart has data, an interactive ECharts view.
func BuildPage(in PageInput) (string, error) {
	if in.Chart == nil {
		return "", fmt.Errorf("page input has no chart")
	}
	filename := in.Filename
	if filename == "" {
		filename = "radar-chart.svg"
	}

	interactive := ""
	snippet, err := RadarSnippet(in.Chart, "radar-interactive", in.Title)
	switch {
	case err == nil:
		interactive = snippet.HTML
	case errors.Is(err, ErrEmptyChart):
		interactive = "<p>Interactive chart unavailable: no data</p>"
	default:
		return "", err
	}

	caption := ""
	if strings.TrimSpace(in.Caption) != "" {
		caption = fmt.Sprintf("<div class=\"caption\">%s</div>", markdownToHTML(in.Caption))
	}

	title := html.EscapeString(in.Title)
	page := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: sans-serif; margin: 2rem auto; max-width: 960px; color: #222; }
        .chart-static svg { display: block; margin: 0 auto; }
        .caption { margin: 1rem 0; }
        .download { display: inline-block; margin: 1rem 0; }
    </style>
</head>
<body>
    <h1>%s</h1>
    <div class="chart-static">%s</div>
    <a class="download" href="%s" download="%s">Download SVG</a>
    %s
    %s
</body>
</html>
`, title, title, stripXMLProlog(string(in.Chart.SVG())),
		html.EscapeString(in.Chart.ToImageDataURI()), html.EscapeString(filename),
		caption, interactive)

	return page, nil
}

// stripXMLProlog drops the <?xml ...?> declaration so the document can be
// inlined into HTML.
func stripXMLProlog(doc string) string {
	if strings.HasPrefix(doc, "<?xml") {
		if i := strings.Index(doc, "?>"); i >= 0 {
			return strings.TrimLeft(doc[i+2:], "\r\n")
		}
	}
	return doc
}
