package content

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(),
	),
)

// Markdown renders src to HTML. Raw HTML in src is dropped by goldmark's
// default renderer, so the result is safe to embed.
func Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// render fills the pre-rendered HTML fields of the bundle.
func (b *Bundle) render() error {
	b.Profile.BioHTML = make([]template.HTML, 0, len(b.Profile.Bio))
	for i, p := range b.Profile.Bio {
		h, err := Markdown(p)
		if err != nil {
			return fmt.Errorf("profile bio paragraph %d: %w", i, err)
		}
		b.Profile.BioHTML = append(b.Profile.BioHTML, h)
	}
	if b.Profile.Closing != "" {
		h, err := Markdown(b.Profile.Closing)
		if err != nil {
			return fmt.Errorf("profile closing: %w", err)
		}
		b.Profile.ClosingHTML = h
	}
	for i := range b.Posts {
		h, err := Markdown(b.Posts[i].Excerpt)
		if err != nil {
			return fmt.Errorf("post %q: %w", b.Posts[i].Title, err)
		}
		b.Posts[i].ExcerptHTML = h
	}
	return nil
}
