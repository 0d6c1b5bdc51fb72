package http

import (
	"embed"
	"html/template"

	"github.com/couchcryptid/market-prices-dashboard/internal/dashboard"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"price": dashboard.FormatPrice,
}).ParseFS(templateFS, "templates/index.html"))
