package resume

import (
	"fmt"
	"html/template"
	"strings"
)

// documentTemplate is the export HTML. It must stay self-contained: no
// external stylesheets, fonts or images, so the headless browser performs no
// network fetches while printing. The page margin is pinned to 0.4in on every
// export; the margin_size enum only widens the inner body padding.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Name}}</title>
<style>
  @page {
    size: A4;
    margin: 0.4in;
  }
  body {
    margin: 0;
    padding: {{printf "%.2fin" .Typography.MarginIn}};
    font-family: {{fontStack .Typography.FontStack}};
    font-size: {{.Typography.FontSizePt}}pt;
    line-height: {{.Typography.LineHeight}};
    color: #1a1a1a;
    background: white;
  }
  header h1 {
    margin: 0 0 2pt 0;
    font-size: {{headingPt .Typography.FontSizePt}}pt;
  }
  header p.description {
    margin: 0 0 10pt 0;
    color: #555;
  }
  section {
    margin-bottom: 10pt;
  }
  section h2 {
    margin: 0 0 4pt 0;
    font-size: {{subheadingPt .Typography.FontSizePt}}pt;
    text-transform: uppercase;
    letter-spacing: 0.08em;
    border-bottom: 1pt solid #ccc;
    padding-bottom: 2pt;
  }
  section p {
    margin: 0 0 4pt 0;
  }
</style>
</head>
<body>
  <header>
    <h1>{{.Name}}</h1>
    {{if .Description}}<p class="description">{{.Description}}</p>{{end}}
  </header>
  {{range .Sections}}
  <section data-section-type="{{.Type}}">
    <h2>{{.Title}}</h2>
    {{range .Paragraphs}}<p>{{.}}</p>
    {{end}}
  </section>
  {{end}}
</body>
</html>`

var documentTmpl = template.Must(template.New("resume").Funcs(template.FuncMap{
	"headingPt":    func(base int) int { return base + 9 },
	"subheadingPt": func(base int) int { return base + 2 },
	// Font stacks come from the closed enum table in types.go, never from
	// user input, so they are safe to emit as raw CSS.
	"fontStack": func(s string) template.CSS { return template.CSS(s) },
}).Parse(documentTemplate))

// RenderHTML produces the export document for a layout.
func RenderHTML(layout Layout) (string, error) {
	var sb strings.Builder
	if err := documentTmpl.Execute(&sb, layout); err != nil {
		return "", fmt.Errorf("execute resume template: %w", err)
	}
	return sb.String(), nil
}
