package tasklist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgallion1/cutit/internal/i18n"
)

var ErrUnknownStatus = errors.New("unknown task status")

// Status is the progress of a task. Values are ordered; any transition,
// including a backwards one, is allowed.
type Status int

const (
	Pending Status = iota
	Started
	Completed
)

// Statuses lists every status in checklist order.
var Statuses = []Status{Pending, Started, Completed}

// Key is the language-independent name, also used as the message key.
func (s Status) Key() string {
	switch s {
	case Started:
		return "started"
	case Completed:
		return "completed"
	default:
		return "pending"
	}
}

func (s Status) String() string {
	switch s {
	case Started:
		return "Started"
	case Completed:
		return "Completed"
	default:
		return "Pending"
	}
}

func (s Status) valid() bool {
	return s >= Pending && s <= Completed
}

// Labels is the localized vocabulary of a task document.
type Labels struct {
	Task     string
	Progress string
	Statuses [3]string // display names indexed by Status
}

// LabelsFrom picks the document vocabulary out of a message table.
func LabelsFrom(m i18n.Messages) Labels {
	l := Labels{
		Task:     m.Get("task"),
		Progress: m.Get("progress"),
	}
	for _, s := range Statuses {
		l.Statuses[s] = m.Get(s.Key())
	}
	return l
}

// EnglishLabels is the default vocabulary.
func EnglishLabels() Labels {
	return LabelsFrom(i18n.For(false))
}

func (l Labels) StatusName(s Status) string {
	if !s.valid() {
		s = Pending
	}
	return l.Statuses[s]
}

// ParseStatus accepts a status key (pending, started, completed) or one of the
// localized display names, case-insensitively.
func (l Labels) ParseStatus(name string) (Status, error) {
	name = strings.TrimSpace(name)
	for _, s := range Statuses {
		if strings.EqualFold(name, s.Key()) || strings.EqualFold(name, l.Statuses[s]) {
			return s, nil
		}
	}
	return Pending, fmt.Errorf("%w: %q", ErrUnknownStatus, name)
}
