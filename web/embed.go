package web

import (
	"embed"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"
)

//go:embed templates/*.html
var templates embed.FS

// Templates 解析全部页面模板
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(templates, "templates/*.html")
}

// Funcs 模板中可用的函数
var Funcs = template.FuncMap{
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"preview": func(s string, n int) string {
		if utf8.RuneCountInString(s) <= n {
			return s
		}
		return string([]rune(s)[:n]) + "..."
	},
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"yesno": func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	},
	"lines": func(s string) []string {
		return strings.Split(s, "\n")
	},
}
