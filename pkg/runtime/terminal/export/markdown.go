package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
)

// MarkdownReporter renders a report as GitHub-flavored Markdown tables.
type MarkdownReporter struct {
	writer io.Writer
}

func NewMarkdownReporter(writer io.Writer) *MarkdownReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &MarkdownReporter{writer: writer}
}

func (m *MarkdownReporter) Handle(out Output) error {
	if out.Report == nil {
		return fmt.Errorf("nothing to report")
	}

	funcMap := template.FuncMap{
		"cell": func(v interface{}) string {
			return strings.ReplaceAll(fmt.Sprint(v), "|", `\|`)
		},
	}

	tmpl := `# {{.Title}}
{{if .TotalAmount}}
**Total Amount:** {{.Currency}} {{printf "%.2f" .TotalAmount}}
{{end}}{{if .Inputs}}
## Inputs

{{range .Inputs}}- **{{.Name}}:** {{cell .Value}}{{if .Unit}} {{.Unit}}{{end}}
{{end}}{{end}}{{range .Sections}}
## {{.Title}}
{{range $key, $value := .Summary}}
**{{$key}}:** {{$value}}
{{end}}
| Name | Value | Unit | Description |
|---|---|---|---|
{{range .Details}}| {{cell .Name}} | {{cell .Value}} | {{.Unit}} | {{cell .Description}} |
{{end}}{{end}}`

	t, err := template.New("markdown").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(m.writer, out.Report)
}
