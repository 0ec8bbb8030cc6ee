package notifications

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer рендерит HTML-тела писем с контекстным экранированием
type Renderer struct {
	templates *template.Template
}

// NewRenderer парсит встроенные шаблоны
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("notifications").
		Option("missingkey=error").
		ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("%w: parse templates: %v", ErrRender, err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render рендерит шаблон типа уведомления
func (r *Renderer) Render(kind Kind, data *templateData) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, kind.templateName(), data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, kind, err)
	}
	return buf.String(), nil
}
