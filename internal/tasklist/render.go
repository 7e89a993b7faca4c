package tasklist

import (
	"strconv"
	"strings"
)

// Fixed structural vocabulary of the canonical encoding.
const (
	Divider   = "---"
	NoContent = "No content to process."
	Checked   = "☑"
	Unchecked = "☐"
)

// Task is one numbered entry of a task document.
type Task struct {
	Ordinal int
	Content string
	Status  Status
}

// Formatter renders and edits task documents in one vocabulary.
type Formatter struct {
	labels Labels
}

func NewFormatter(labels Labels) *Formatter {
	return &Formatter{labels: labels}
}

func (f *Formatter) Labels() Labels {
	return f.labels
}

// Render encodes chunks as a task document titled with the source filename.
// Every task starts Pending.
func (f *Formatter) Render(chunks []string, title string) string {
	if len(chunks) == 0 {
		return "# " + title + "\n\n" + Divider + "\n\n" + NoContent + "\n\n" + Divider + "\n"
	}

	lines := []string{"# " + title, ""}
	for i, chunk := range chunks {
		lines = append(lines,
			Divider,
			"",
			f.header(i+1),
			f.progressLine(Pending),
			"",
		)
		lines = append(lines, f.checklist(Pending)...)
		lines = append(lines, "", strings.TrimSpace(chunk), "")
	}
	lines = append(lines, Divider)

	return strings.Join(lines, "\n")
}

func (f *Formatter) header(n int) string {
	return f.headerPrefix() + strconv.Itoa(n)
}

func (f *Formatter) headerPrefix() string {
	return "## " + f.labels.Task + " "
}

func (f *Formatter) progressPrefix() string {
	return "**" + f.labels.Progress + ":**"
}

func (f *Formatter) progressLine(s Status) string {
	return f.progressPrefix() + " " + f.labels.StatusName(s)
}

// checklist marks every position up to and including s.
func (f *Formatter) checklist(s Status) []string {
	out := make([]string, 0, len(Statuses))
	for _, st := range Statuses {
		mark := Unchecked
		if st <= s {
			mark = Checked
		}
		out = append(out, "- "+mark+" "+f.labels.StatusName(st))
	}
	return out
}
