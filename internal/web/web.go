package web

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type LoginPage struct {
	Error string
}

type KeuzehulpPage struct {
	FirstQuestion string
}

func RenderLogin(page LoginPage) ([]byte, error) {
	return render("login.html", page)
}

func RenderKeuzehulp(page KeuzehulpPage) ([]byte, error) {
	return render("keuzehulp.html", page)
}

func render(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
