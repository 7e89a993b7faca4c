package pipeline

import (
	"crypto/sha256"
	"fmt"
)

// Phase is a step of processing one input file.
type Phase string

const (
	PhaseReading    Phase = "reading"
	PhaseSplitting  Phase = "splitting"
	PhaseFormatting Phase = "formatting"
	PhaseSaving     Phase = "saving"
)

// Phases lists the phases in execution order.
var Phases = []Phase{PhaseReading, PhaseSplitting, PhaseFormatting, PhaseSaving}

// MessageKey is the localization key announcing the phase.
func (p Phase) MessageKey() string {
	switch p {
	case PhaseReading:
		return "reading_file"
	case PhaseSplitting:
		return "splitting_text"
	case PhaseFormatting:
		return "formatting_tasks"
	case PhaseSaving:
		return "saving_file"
	}
	return string(p)
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
