package handlers

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
)

//go:embed views/*.html
var viewsFS embed.FS

// Views parses the embedded page templates.
func Views() *template.Template {
	return template.Must(template.New("").ParseFS(viewsFS, "views/*.html"))
}

// LoadViews installs the page templates on the engine.
func LoadViews(engine *gin.Engine) {
	engine.SetHTMLTemplate(Views())
}
