package tasklist

import (
	"strconv"
	"strings"
)

// The operations below work on the canonical text directly. Each one scans
// only the region between a task header and the next header or divider, so
// every other line of the document is left byte-identical.

// CountTasks returns the number of task header lines.
func (f *Formatter) CountTasks(doc string) int {
	n := 0
	for _, line := range strings.Split(doc, "\n") {
		if _, ok := f.parseHeader(line); ok {
			n++
		}
	}
	return n
}

// HasTask reports whether the document has a header for task n.
func (f *Formatter) HasTask(doc string, n int) bool {
	return f.findHeader(strings.Split(doc, "\n"), n) >= 0
}

// TaskContent returns the trimmed body of task n, or "" when there is no
// such task.
func (f *Formatter) TaskContent(doc string, n int) string {
	lines := strings.Split(doc, "\n")
	idx := f.findHeader(lines, n)
	if idx < 0 {
		return ""
	}

	var body []string
	progressDone, checklistDone, started := false, false, false
	for i := idx + 1; i < len(lines); i++ {
		line := lines[i]
		if f.endsTask(line) {
			break
		}
		if !started {
			switch {
			case f.isProgress(line) && !progressDone && !checklistDone:
				progressDone = true
				continue
			case isChecklist(line) && !checklistDone:
				for i+1 < len(lines) && isChecklist(lines[i+1]) {
					i++
				}
				checklistDone = true
				continue
			case isBlank(line):
				continue
			}
			started = true
		}
		body = append(body, line)
	}
	return strings.TrimSpace(strings.Join(body, "\n"))
}

// TaskStatus reads the progress line of task n back.
func (f *Formatter) TaskStatus(doc string, n int) (Status, bool) {
	lines := strings.Split(doc, "\n")
	idx := f.findHeader(lines, n)
	if idx < 0 {
		return Pending, false
	}

	for _, line := range lines[idx+1:] {
		switch {
		case f.endsTask(line):
			return Pending, false
		case f.isProgress(line):
			name := strings.TrimSpace(strings.TrimPrefix(line, f.progressPrefix()))
			st, err := f.labels.ParseStatus(name)
			if err != nil {
				return Pending, false
			}
			return st, true
		case isBlank(line):
			continue
		default:
			return Pending, false
		}
	}
	return Pending, false
}

// Tasks lists every task of the document in order.
func (f *Formatter) Tasks(doc string) []Task {
	var tasks []Task
	seen := make(map[int]bool)
	for _, line := range strings.Split(doc, "\n") {
		n, ok := f.parseHeader(line)
		if !ok || seen[n] {
			continue
		}
		seen[n] = true
		st, _ := f.TaskStatus(doc, n)
		tasks = append(tasks, Task{
			Ordinal: n,
			Content: f.TaskContent(doc, n),
			Status:  st,
		})
	}
	return tasks
}

// SetStatus rewrites the progress line and the checklist block of task n.
// The document is returned unchanged when task n does not exist.
func (f *Formatter) SetStatus(doc string, n int, s Status) string {
	lines := strings.Split(doc, "\n")
	idx := f.findHeader(lines, n)
	if idx < 0 {
		return doc
	}

	out := make([]string, 0, len(lines))
	out = append(out, lines[:idx+1]...)

	progressDone, checklistDone := false, false
	i := idx + 1
scan:
	for ; i < len(lines); i++ {
		line := lines[i]
		switch {
		case f.endsTask(line):
			break scan
		case f.isProgress(line) && !progressDone && !checklistDone:
			out = append(out, f.progressLine(s)+lineEnding(line))
			progressDone = true
		case isChecklist(line) && !checklistDone:
			// Replace the whole run, whatever its length, with a fresh block.
			eol := lineEnding(line)
			for i+1 < len(lines) && isChecklist(lines[i+1]) {
				i++
			}
			for _, c := range f.checklist(s) {
				out = append(out, c+eol)
			}
			checklistDone = true
		case isBlank(line):
			out = append(out, line)
		default:
			break scan
		}
	}
	out = append(out, lines[i:]...)

	return strings.Join(out, "\n")
}

func (f *Formatter) findHeader(lines []string, n int) int {
	for i, line := range lines {
		if got, ok := f.parseHeader(line); ok && got == n {
			return i
		}
	}
	return -1
}

func (f *Formatter) parseHeader(line string) (int, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), f.headerPrefix())
	if !ok || rest == "" {
		return 0, false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func (f *Formatter) endsTask(line string) bool {
	if strings.TrimSpace(line) == Divider {
		return true
	}
	_, ok := f.parseHeader(line)
	return ok
}

func (f *Formatter) isProgress(line string) bool {
	return strings.HasPrefix(line, f.progressPrefix())
}

func isChecklist(line string) bool {
	return strings.HasPrefix(line, "- "+Unchecked) || strings.HasPrefix(line, "- "+Checked)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// lineEnding keeps a CRLF document CRLF after a line is rewritten.
func lineEnding(line string) string {
	if strings.HasSuffix(line, "\r") {
		return "\r"
	}
	return ""
}
