package content

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Article bodies come from an LLM or an admin form, so raw HTML in the
// markdown is escaped rather than passed through.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// tagClasses maps element names to the presentational classes applied to them
var tagClasses = map[string]string{
	"h1":         "text-4xl font-bold mb-4 mt-6",
	"h2":         "text-3xl font-bold mb-3 mt-5",
	"h3":         "text-2xl font-bold mb-2 mt-4",
	"h4":         "text-xl font-bold mb-2 mt-3",
	"p":          "mb-4 leading-relaxed",
	"ul":         "list-disc list-inside mb-4 ml-4 space-y-2",
	"ol":         "list-decimal list-inside mb-4 ml-4 space-y-2",
	"blockquote": "border-l-4 border-primary pl-4 italic mb-4",
	"table":      "table w-full mb-4",
	"code":       "px-2 py-1 rounded text-sm font-mono",
	"pre":        "p-4 rounded-lg mb-4 overflow-x-auto",
	"a":          "link link-primary",
}

var openTag = regexp.MustCompile(`<([a-z][a-z0-9]*)((?:\s[^>]*)?)>`)

// RenderMarkdown converts article markdown into HTML with classes applied
func RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return ProcessHTMLContent(buf.String()), nil
}

// ProcessHTMLContent adds classes to known HTML elements that have none
func ProcessHTMLContent(html string) string {
	return openTag.ReplaceAllStringFunc(html, func(tag string) string {
		m := openTag.FindStringSubmatch(tag)
		classes, ok := tagClasses[m[1]]
		if !ok || strings.Contains(m[2], "class=") {
			return tag
		}
		return "<" + m[1] + m[2] + ` class="` + classes + `">`
	})
}
