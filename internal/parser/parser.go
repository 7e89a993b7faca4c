// Package parser reads input files into plain text ready for chunking.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/cutit/internal/chunker"
	"golang.org/x/text/encoding/unicode"
)

// ErrEncoding is returned when a text input is not valid UTF-8.
var ErrEncoding = errors.New("input is not valid UTF-8")

// Source is the text extracted from one input file.
type Source struct {
	Title string       // base filename
	Text  string       // extracted text
	Mode  chunker.Mode // splitting strategy suited to Text
}

// Parser converts raw document bytes into a Source.
type Parser interface {
	Parse(r io.Reader, filename string) (*Source, error)
}

var codeExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".jsx": true, ".tsx": true,
	".java": true, ".cpp": true, ".c": true, ".h": true, ".cs": true,
	".php": true, ".rb": true, ".go": true, ".rs": true, ".swift": true,
	".kt": true, ".scala": true, ".clj": true, ".hs": true, ".ml": true,
	".fs": true, ".elm": true, ".dart": true, ".lua": true, ".r": true,
	".sql": true, ".sh": true, ".bash": true, ".zsh": true, ".fish": true,
	".ps1": true, ".bat": true, ".cmd": true,
}

// DetectMode returns the splitting mode for a filename based on its extension.
func DetectMode(filename string) chunker.Mode {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case ext == ".md" || ext == ".markdown":
		return chunker.ModeMarkdown
	case ext == ".html" || ext == ".htm" || ext == ".csv" || ext == ".docx":
		return chunker.ModeMarkdown
	case codeExtensions[ext]:
		return chunker.ModeCode
	default:
		return chunker.ModeText
	}
}

// ForFile returns the appropriate parser for a filename. Unknown extensions
// are read as plain text.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return &CSVParser{}
	case ".html", ".htm":
		return &HTMLParser{}
	case ".pdf":
		return &PDFParser{FallbackPdftotext: true}
	case ".docx":
		return &DOCXParser{}
	default:
		return &TextParser{Mode: DetectMode(filename)}
	}
}

// ReadFile opens path and parses it with the parser chosen by ForFile.
// A missing file yields an error matching os.ErrNotExist.
func ReadFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	src, err := ForFile(path).Parse(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return src, nil
}

// decodeText validates data as UTF-8, drops a leading byte order mark and
// normalizes line endings to "\n".
func decodeText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrEncoding
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	out = bytes.ReplaceAll(out, []byte("\r\n"), []byte("\n"))
	return string(out), nil
}

func readText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return decodeText(data)
}
