package api

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/lysyi3m/chapter-web/app/content"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = []string{"listing", "post", "error"}

// Templates holds one parsed set per page, each sharing the layout and
// partials.
type Templates struct {
	pages map[string]*template.Template
}

func LoadTemplates() (*Templates, error) {
	t := &Templates{pages: make(map[string]*template.Template, len(pageTemplates))}

	for _, name := range pageTemplates {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		t.pages[name] = tmpl
	}

	return t, nil
}

func (t *Templates) Render(c *gin.Context, status int, page string, data any) {
	tmpl, ok := t.pages[page]
	if !ok {
		panic(fmt.Sprintf("template %q not loaded", page))
	}
	c.Render(status, render.HTML{Template: tmpl, Name: "layout", Data: data})
}

var templateFuncs = template.FuncMap{
	// Post bodies come from the CMS and are rendered as-is.
	"rawHTML": func(s string) template.HTML {
		return template.HTML(s)
	},
	"formatDate": func(date string) string {
		return content.FormatDate(date)
	},
	"tocProgress": content.TOCProgress,
	"add": func(a, b int) int {
		return a + b
	},
	"withQuery": func(path string, values url.Values) string {
		if len(values) == 0 {
			return path
		}
		return path + "?" + values.Encode()
	},
}
