package parser

import "strings"

// markdownWriter renders extracted structure (headings and paragraphs) as
// markdown so the chunker can cut at the headings of converted documents.
type markdownWriter struct {
	b strings.Builder
}

func (w *markdownWriter) block(s string) {
	if w.b.Len() > 0 {
		w.b.WriteString("\n\n")
	}
	w.b.WriteString(s)
}

func (w *markdownWriter) Heading(level int, title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	level = min(max(level, 1), 6)
	w.block(strings.Repeat("#", level) + " " + title)
}

func (w *markdownWriter) Paragraph(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	w.block(text)
}

func (w *markdownWriter) String() string {
	return w.b.String()
}
