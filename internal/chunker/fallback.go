package chunker

import (
	"strings"
	"unicode/utf8"
)

// Fallback accumulates blank-line separated paragraphs into chunks of at most
// maxSize runes. A paragraph longer than maxSize becomes its own chunk unsplit.
func Fallback(text string, maxSize int) []string {
	var chunks []string
	var current strings.Builder
	currentLen := 0

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		paraLen := utf8.RuneCountInString(para)

		if currentLen > 0 && currentLen+paraLen+2 > maxSize {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}

		if currentLen > 0 {
			current.WriteString("\n\n")
			currentLen += 2
		}
		current.WriteString(para)
		currentLen += paraLen
	}

	if currentLen > 0 {
		chunks = append(chunks, current.String())
	}
	if len(chunks) == 0 {
		if t := strings.TrimSpace(text); t != "" {
			return []string{t}
		}
	}
	return chunks
}
