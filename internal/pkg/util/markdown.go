package util

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// 不开启 html.WithUnsafe，正文中的原始 HTML 会被丢弃
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// RenderMarkdown 把帖子正文渲染为 HTML
func RenderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
