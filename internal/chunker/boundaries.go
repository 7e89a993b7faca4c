package chunker

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// boundaryFunc returns the cut offsets strictly inside [start, end), ascending.
type boundaryFunc func(src string, start, end int) []int

var blankLines = regexp.MustCompile(`\n(?:[ \t]*\n)+`)

// levelsFor returns the boundary levels for a mode, coarsest first.
// Plain text and code share one strategy.
func levelsFor(mode Mode, src string) []boundaryFunc {
	fine := []boundaryFunc{lineCuts, sentenceCuts, wordCuts, runeCuts}
	if mode == ModeMarkdown {
		sections, blocks := markdownCuts(src)
		return append([]boundaryFunc{within(sections), within(blocks)}, fine...)
	}
	return append([]boundaryFunc{paragraphCuts}, fine...)
}

// paragraphCuts cuts after each run of blank lines.
func paragraphCuts(src string, start, end int) []int {
	var cuts []int
	for _, m := range blankLines.FindAllStringIndex(src[start:end], -1) {
		cuts = addCut(cuts, start+m[1], start, end)
	}
	return cuts
}

func lineCuts(src string, start, end int) []int {
	var cuts []int
	for i := start; i < end; i++ {
		if src[i] == '\n' {
			cuts = addCut(cuts, i+1, start, end)
		}
	}
	return cuts
}

// sentenceCuts cuts after terminal punctuation that is followed by whitespace.
func sentenceCuts(src string, start, end int) []int {
	var cuts []int
	for i := start; i < end; {
		r, w := utf8.DecodeRuneInString(src[i:end])
		i += w
		if !isTerminal(r) || i >= end {
			continue
		}
		if next, _ := utf8.DecodeRuneInString(src[i:end]); unicode.IsSpace(next) {
			cuts = addCut(cuts, i, start, end)
		}
	}
	return cuts
}

func isTerminal(r rune) bool {
	switch r {
	case '.', '!', '?', '…', '。', '！', '？':
		return true
	}
	return false
}

// wordCuts cuts at the first rune of every word that follows whitespace.
func wordCuts(src string, start, end int) []int {
	var cuts []int
	prevSpace := false
	for i := start; i < end; {
		r, w := utf8.DecodeRuneInString(src[i:end])
		space := unicode.IsSpace(r)
		if prevSpace && !space {
			cuts = addCut(cuts, i, start, end)
		}
		prevSpace = space
		i += w
	}
	return cuts
}

func runeCuts(src string, start, end int) []int {
	var cuts []int
	for i := start; i < end; {
		_, w := utf8.DecodeRuneInString(src[i:end])
		i += w
		cuts = addCut(cuts, i, start, end)
	}
	return cuts
}

func addCut(cuts []int, at, start, end int) []int {
	if at <= start || at >= end {
		return cuts
	}
	if n := len(cuts); n > 0 && cuts[n-1] >= at {
		return cuts
	}
	return append(cuts, at)
}

// within restricts precomputed document-wide cuts to a span.
func within(all []int) boundaryFunc {
	return func(_ string, start, end int) []int {
		var cuts []int
		for _, c := range all {
			cuts = addCut(cuts, c, start, end)
		}
		return cuts
	}
}

// markdownCuts returns the line offsets where top-level blocks start, and the
// subset of those that are headings. Lists, block quotes and fenced code stay
// whole at this level.
func markdownCuts(src string) (sections, blocks []int) {
	b := []byte(src)
	doc := goldmark.New().Parser().Parse(text.NewReader(b))

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		off, ok := blockStart(n, b)
		if !ok || off == 0 {
			continue
		}
		if len(blocks) > 0 && blocks[len(blocks)-1] >= off {
			continue
		}
		blocks = append(blocks, off)
		if n.Kind() == ast.KindHeading {
			sections = append(sections, off)
		}
	}
	return sections, blocks
}

func blockStart(n ast.Node, src []byte) (int, bool) {
	if fenced, ok := n.(*ast.FencedCodeBlock); ok {
		// Lines exclude the opening fence; the info string sits on it.
		if fenced.Info != nil {
			return lineStart(src, fenced.Info.Segment.Start), true
		}
		if fenced.Lines().Len() > 0 {
			return previousLineStart(src, fenced.Lines().At(0).Start), true
		}
		return 0, false
	}
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return lineStart(src, n.Lines().At(0).Start), true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if off, ok := blockStart(c, src); ok {
			return off, true
		}
	}
	return 0, false
}

func lineStart(src []byte, pos int) int {
	if pos > len(src) {
		pos = len(src)
	}
	for pos > 0 && src[pos-1] != '\n' {
		pos--
	}
	return pos
}

func previousLineStart(src []byte, pos int) int {
	ls := lineStart(src, pos)
	if ls == 0 {
		return 0
	}
	return lineStart(src, ls-1)
}
