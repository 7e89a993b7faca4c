package pipeline

import "testing"

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_DifferentInputs(t *testing.T) {
	h1 := ContentHashHex([]byte("aaa"))
	h2 := ContentHashHex([]byte("bbb"))
	if h1 == h2 {
		t.Error("expected different hashes for different inputs")
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestPhase_MessageKeys(t *testing.T) {
	want := map[Phase]string{
		PhaseReading:    "reading_file",
		PhaseSplitting:  "splitting_text",
		PhaseFormatting: "formatting_tasks",
		PhaseSaving:     "saving_file",
	}
	for _, p := range Phases {
		if got := p.MessageKey(); got != want[p] {
			t.Errorf("%s: expected key %q, got %q", p, want[p], got)
		}
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"notes.txt", "notes.tasks.md"},
		{"dir/README.md", "dir/README.tasks.md"},
		{"archive.tar.gz", "archive.tar.tasks.md"},
		{"Makefile", "Makefile.tasks.md"},
	}
	for _, tt := range tests {
		if got := DefaultOutputPath(tt.in); got != tt.want {
			t.Errorf("DefaultOutputPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
