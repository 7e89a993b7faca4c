package parser

import (
	"io"
	"path/filepath"

	"github.com/dgallion1/cutit/internal/chunker"
)

// TextParser reads UTF-8 files as they are. Mode tells the chunker how the
// text is structured (plain text, markdown or source code).
type TextParser struct {
	Mode chunker.Mode
}

func (p *TextParser) Parse(r io.Reader, filename string) (*Source, error) {
	text, err := readText(r)
	if err != nil {
		return nil, err
	}
	return &Source{
		Title: filepath.Base(filename),
		Text:  text,
		Mode:  p.Mode,
	}, nil
}
