package pipeline

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgallion1/cutit/internal/fileutil"
	"github.com/dgallion1/cutit/internal/tasklist"
)

// ErrTaskNotFound is returned when a task file has no task with the ordinal.
var ErrTaskNotFound = errors.New("task not found")

// ReadTaskFile returns the contents of an existing task document.
func ReadTaskFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read task file: %w", err)
	}
	return string(data), nil
}

// UpdateTaskFile sets the status of task n in the document at path and
// writes it back atomically. The file is not rewritten when it already
// carries that status.
func UpdateTaskFile(path string, f *tasklist.Formatter, n int, s tasklist.Status) error {
	doc, err := ReadTaskFile(path)
	if err != nil {
		return err
	}
	if !f.HasTask(doc, n) {
		return fmt.Errorf("%w: %d", ErrTaskNotFound, n)
	}

	updated := f.SetStatus(doc, n, s)
	if updated == doc {
		return nil
	}
	if err := fileutil.WriteAtomic(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	return nil
}
