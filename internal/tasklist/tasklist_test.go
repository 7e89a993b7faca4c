package tasklist

import (
	"strings"
	"testing"

	"github.com/dgallion1/cutit/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func english() *Formatter {
	return NewFormatter(EnglishLabels())
}

func TestRender_Empty(t *testing.T) {
	doc := english().Render(nil, "x.txt")
	assert.Equal(t, "# x.txt\n\n---\n\nNo content to process.\n\n---\n", doc)
	assert.NotContains(t, doc, "## TASK")
	assert.Equal(t, 0, english().CountTasks(doc))
}

func TestRender_TwoChunks(t *testing.T) {
	f := english()
	doc := f.Render([]string{"First chunk", "Second chunk"}, "test.txt")

	want := strings.Join([]string{
		"# test.txt",
		"",
		"---",
		"",
		"## TASK 1",
		"**Progress:** Pending",
		"",
		"- ☑ Pending",
		"- ☐ Started",
		"- ☐ Completed",
		"",
		"First chunk",
		"",
		"---",
		"",
		"## TASK 2",
		"**Progress:** Pending",
		"",
		"- ☑ Pending",
		"- ☐ Started",
		"- ☐ Completed",
		"",
		"Second chunk",
		"",
		"---",
	}, "\n")
	assert.Equal(t, want, doc)
	assert.Equal(t, 2, f.CountTasks(doc))
}

func TestRender_TrimsContent(t *testing.T) {
	f := english()
	doc := f.Render([]string{"  padded content \n\n"}, "a.md")
	assert.Contains(t, doc, "\npadded content\n")
	assert.Equal(t, "padded content", f.TaskContent(doc, 1))
}

func TestRender_Portuguese(t *testing.T) {
	f := NewFormatter(LabelsFrom(i18n.For(true)))
	doc := f.Render([]string{"Primeiro bloco"}, "teste.txt")

	assert.Contains(t, doc, "## TAREFA 1")
	assert.Contains(t, doc, "**Progresso:** Pendente")
	assert.Contains(t, doc, "- ☑ Pendente")
	assert.Contains(t, doc, "- ☐ Iniciado")
	assert.Contains(t, doc, "- ☐ Concluído")
	assert.Equal(t, 1, f.CountTasks(doc))
	assert.Equal(t, "Primeiro bloco", f.TaskContent(doc, 1))

	// A document in another vocabulary has no tasks for this one.
	assert.Equal(t, 0, english().CountTasks(doc))
}

func TestChecklist(t *testing.T) {
	f := english()
	tests := []struct {
		status Status
		want   []string
	}{
		{Pending, []string{"- ☑ Pending", "- ☐ Started", "- ☐ Completed"}},
		{Started, []string{"- ☑ Pending", "- ☑ Started", "- ☐ Completed"}},
		{Completed, []string{"- ☑ Pending", "- ☑ Started", "- ☑ Completed"}},
	}
	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, f.checklist(tt.status))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	f := english()
	chunks := []string{
		"Single line.",
		"Multi line\nparagraph one.\n\nParagraph two\nwith more text.",
		"  Leading and trailing whitespace.  ",
		"- a list item\n- ☐ looks like a checkbox",
		"**Progress:** a first line shaped like a progress line",
	}
	doc := f.Render(chunks, "round.txt")

	require.Equal(t, len(chunks), f.CountTasks(doc))
	for i, c := range chunks {
		assert.Equal(t, strings.TrimSpace(c), f.TaskContent(doc, i+1), "task %d", i+1)
	}

	tasks := f.Tasks(doc)
	require.Len(t, tasks, len(chunks))
	for i, task := range tasks {
		assert.Equal(t, i+1, task.Ordinal)
		assert.Equal(t, Pending, task.Status)
		assert.Equal(t, strings.TrimSpace(chunks[i]), task.Content)
	}
}

func TestSetStatus_CompletedOnSecondTask(t *testing.T) {
	f := english()
	doc := f.Render([]string{"First chunk", "Second chunk"}, "test.txt")

	updated := f.SetStatus(doc, 2, Completed)

	before := strings.Split(doc, "\n")
	after := strings.Split(updated, "\n")
	require.Len(t, after, len(before))

	// TASK 1 block: lines 0..14 untouched.
	assert.Equal(t, before[:15], after[:15])
	assert.Equal(t, "## TASK 2", after[15])
	assert.Equal(t, "**Progress:** Completed", after[16])
	assert.Equal(t, []string{"- ☑ Pending", "- ☑ Started", "- ☑ Completed"}, after[18:21])
	assert.Equal(t, before[21:], after[21:])

	st, ok := f.TaskStatus(updated, 2)
	require.True(t, ok)
	assert.Equal(t, Completed, st)
	st, ok = f.TaskStatus(updated, 1)
	require.True(t, ok)
	assert.Equal(t, Pending, st)
}

func TestSetStatus_SameStatusIsIdempotent(t *testing.T) {
	f := english()
	doc := f.Render([]string{"a", "b", "c"}, "t.txt")

	assert.Equal(t, doc, f.SetStatus(doc, 2, Pending))

	started := f.SetStatus(doc, 3, Started)
	assert.Equal(t, started, f.SetStatus(started, 3, Started))
}

func TestSetStatus_IsolatesOtherLines(t *testing.T) {
	f := english()
	doc := f.Render([]string{"alpha", "beta", "gamma"}, "iso.txt")

	for n := 1; n <= 3; n++ {
		for _, s := range Statuses {
			updated := f.SetStatus(doc, n, s)
			before := strings.Split(doc, "\n")
			after := strings.Split(updated, "\n")
			require.Len(t, after, len(before))

			hdr := f.findHeader(before, n)
			for i := range before {
				if i >= hdr+1 && i <= hdr+5 {
					continue // progress line, blank, checklist
				}
				assert.Equal(t, before[i], after[i], "task %d status %s line %d", n, s, i)
			}
			for m := 1; m <= 3; m++ {
				assert.Equal(t, f.TaskContent(doc, m), f.TaskContent(updated, m))
			}
		}
	}
}

func TestSetStatus_BackwardsTransitionAllowed(t *testing.T) {
	f := english()
	doc := f.Render([]string{"only task"}, "t.txt")

	done := f.SetStatus(doc, 1, Completed)
	back := f.SetStatus(done, 1, Pending)

	// No forced monotonicity: moving back restores the rendered text.
	assert.Equal(t, doc, back)
	st, ok := f.TaskStatus(back, 1)
	require.True(t, ok)
	assert.Equal(t, Pending, st)
}

func TestMissingOrdinal(t *testing.T) {
	f := english()
	doc := f.Render([]string{"a", "b", "c"}, "t.txt")

	assert.True(t, f.HasTask(doc, 3))
	assert.False(t, f.HasTask(doc, 99))
	assert.Equal(t, doc, f.SetStatus(doc, 99, Started))
	assert.Equal(t, "", f.TaskContent(doc, 99))
	_, ok := f.TaskStatus(doc, 99)
	assert.False(t, ok)
	assert.Equal(t, doc, f.SetStatus(doc, 0, Started))
	assert.Equal(t, "", f.TaskContent(doc, -1))
}

func TestForeignText_NoPanic(t *testing.T) {
	f := english()
	inputs := []string{
		"",
		"\n\n\n",
		"## TASK",
		"## TASK abc\nsomething",
		"## TASK 1",
		"## TASK 1\n**Progress:**",
		"## TASK 1\n- ☑\n- ☐",
		"random\ntext\n---\n## TASK 1\n---",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			f.CountTasks(in)
			f.TaskContent(in, 1)
			f.TaskStatus(in, 1)
			f.SetStatus(in, 1, Completed)
			f.Tasks(in)
		}, "input %q", in)
	}

	assert.Equal(t, 0, f.CountTasks("## TASK abc"))
	assert.Equal(t, "## TASK abc\nsomething", f.SetStatus("## TASK abc\nsomething", 1, Started))
}

func TestSetStatus_ContentChecklistUntouched(t *testing.T) {
	f := english()
	doc := f.Render([]string{"- ☐ a checkbox in the content"}, "t.md")

	updated := f.SetStatus(doc, 1, Completed)
	assert.Contains(t, updated, "\n- ☐ a checkbox in the content\n")
	assert.Equal(t, "- ☐ a checkbox in the content", f.TaskContent(updated, 1))
}

func TestTaskContent_StopsAtThematicBreak(t *testing.T) {
	f := english()
	doc := f.Render([]string{"intro\n\n---\n\nafter rule", "next"}, "rule.md")

	// A "---" line inside a chunk reads as the task divider.
	assert.Equal(t, "intro", f.TaskContent(doc, 1))
	assert.Equal(t, 2, f.CountTasks(doc))
	assert.Equal(t, "next", f.TaskContent(doc, 2))

	updated := f.SetStatus(doc, 1, Completed)
	assert.Contains(t, updated, "\n---\n\nafter rule\n")
}

func TestSetStatus_PreservesCRLF(t *testing.T) {
	f := english()
	doc := strings.ReplaceAll(f.Render([]string{"one", "two"}, "crlf.txt"), "\n", "\r\n")

	updated := f.SetStatus(doc, 1, Started)
	assert.Contains(t, updated, "**Progress:** Started\r\n")
	assert.Contains(t, updated, "- ☑ Started\r\n")
	assert.NotContains(t, strings.ReplaceAll(updated, "\r\n", ""), "\n")
	assert.Equal(t, "two", f.TaskContent(updated, 2))
}

func TestParseStatus(t *testing.T) {
	l := LabelsFrom(i18n.For(true))

	tests := []struct {
		in   string
		want Status
	}{
		{"pending", Pending},
		{"Started", Started},
		{"COMPLETED", Completed},
		{"Iniciado", Started},
		{"concluído", Completed},
	}
	for _, tt := range tests {
		got, err := l.ParseStatus(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := l.ParseStatus("blocked")
	require.ErrorIs(t, err, ErrUnknownStatus)
}
