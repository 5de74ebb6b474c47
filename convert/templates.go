package convert

import (
	"bytes"
	"fmt"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"vbhc/config"
	"vbhc/content"
)

// Values is a struct that holds variables we make available for template
// expansion.
type Values struct {
	Context   string
	Name      string // stem of the original source name
	Suffix    string
	Title     string
	Mode      string
	Paper     string
	Pages     int
	Landscape int // number of landscape pages
}

func expandTemplate(c *content.Content, name config.TemplateFieldName, field string, cfg *config.DocumentConfig) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context: string(name),
		Name:    sourceStem(c.SrcName),
		Suffix:  cfg.OutputSuffix,
		Title:   c.Title,
		Mode:    cfg.OutputMode.String(),
		Paper:   c.Paper.String(),
		Pages:   len(c.Pages),
	}
	for _, p := range c.Pages {
		if p.Orientation.IsLandscape() {
			values.Landscape++
		}
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand template field %s: %w", name, err)
	}
	return buf.String(), nil
}
