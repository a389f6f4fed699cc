package server

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed meal_page.html
var mealPageHTML string

var mealPageTmpl = template.Must(template.New("meal_page").Parse(mealPageHTML))

type mealPageData struct {
	Title    string
	ImageURL string
	AudioURL string
	Body     template.HTML
}

// renderMealPage renders a persisted recipe as a standalone HTML page.
// The image and audio URLs are request-relative so the page works behind
// any deployment host.
func renderMealPage(name, recipeText string) (string, error) {
	data := mealPageData{
		Title:    capitalize(name),
		ImageURL: "/static/images/" + name + ".png",
		AudioURL: "/static/audio/" + name + ".mp3",
		Body:     renderMarkdown(recipeText),
	}

	var buf bytes.Buffer
	if err := mealPageTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderMarkdown converts the model's loosely-markdown recipe text to HTML.
func renderMarkdown(text string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(text), p, renderer))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
