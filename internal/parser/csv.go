package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/cutit/internal/chunker"
)

const csvBatchSize = 20

// CSVParser renders a CSV file as markdown sections of csvBatchSize rows,
// each row written as "header: value" pairs.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*Source, error) {
	text, err := readText(r)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	src := &Source{Title: filepath.Base(filename), Mode: chunker.ModeMarkdown}
	if len(records) == 0 {
		return src, nil
	}

	headers := records[0]
	dataRows := records[1:]

	var w markdownWriter
	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := min(i+csvBatchSize, len(dataRows))

		var b strings.Builder
		b.WriteString("Headers: " + strings.Join(headers, ", ") + "\n")
		for _, row := range dataRows[i:end] {
			b.WriteString("\n")
			for j, cell := range row {
				if j > 0 {
					b.WriteString(", ")
				}
				if j < len(headers) {
					b.WriteString(headers[j] + ": ")
				}
				b.WriteString(cell)
			}
		}

		// Row numbers are 1-indexed and count the header line.
		w.Heading(2, fmt.Sprintf("Rows %d-%d", i+2, end+1))
		w.Paragraph(b.String())
	}
	src.Text = w.String()
	return src, nil
}
