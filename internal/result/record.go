// Package result carries the outcome of one elevated PATH update back to
// the process that requested it.
//
// The channel is a single file holding at most one record. Every helper run
// overwrites it, so a reader must check the record's id against the id it
// handed to the helper before trusting anything else in it.
package result

import (
	"errors"
	"fmt"
	"strings"
)

type Outcome string

const (
	OK  Outcome = "OK"
	ERR Outcome = "ERR"
)

const idPrefix = "ID: "

var (
	ErrNotFound   = errors.New("update result not found")
	ErrPending    = errors.New("update still in progress")
	ErrIDMismatch = errors.New("target update result not found")
	ErrFormat     = errors.New("unsupported update result")
)

// Record is one helper outcome. An empty Outcome means the helper has
// stamped its id but not finished yet.
type Record struct {
	ID      string
	Outcome Outcome
	Message string
}

func (r Record) Pending() bool {
	return r.Outcome == ""
}

// FormatError reports a result file that could not be parsed.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s", ErrFormat, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// OperationError is a failure reported by the helper itself. Its text is the
// helper's message, unchanged.
type OperationError struct {
	Message string
}

func (e *OperationError) Error() string {
	return e.Message
}

// Format renders r in the line-oriented result file layout:
//
//	ID: <id>
//	OK | ERR
//	<message, ERR only>
func Format(r Record) []byte {
	var b strings.Builder
	if r.ID != "" {
		b.WriteString(idPrefix + r.ID + "\n")
	}
	switch r.Outcome {
	case OK:
		b.WriteString("OK\n")
	case ERR:
		b.WriteString("ERR\n")
		b.WriteString(singleLine(r.Message) + "\n")
	}
	return []byte(b.String())
}

// Parse reads a result file. The id line is optional because a helper run
// without --id still reports its outcome.
func Parse(data []byte) (Record, error) {
	lines := splitLines(string(data))
	if len(lines) == 0 {
		return Record{}, &FormatError{Reason: "empty update result"}
	}

	var r Record
	if id, ok := strings.CutPrefix(lines[0], idPrefix); ok {
		r.ID = strings.TrimSpace(id)
		lines = lines[1:]
	}
	if len(lines) == 0 {
		if r.ID == "" {
			return Record{}, &FormatError{Reason: "missing id"}
		}
		return r, nil
	}

	switch Outcome(strings.TrimSpace(lines[0])) {
	case OK:
		r.Outcome = OK
	case ERR:
		r.Outcome = ERR
		r.Message = "Unknown error."
		if len(lines) > 1 && strings.TrimSpace(lines[1]) != "" {
			r.Message = lines[1]
		}
	default:
		return Record{}, &FormatError{Reason: fmt.Sprintf("unknown outcome %q", lines[0])}
	}
	return r, nil
}

// Match checks r against the id the caller is waiting for. It returns nil
// only for a finished, successful record with that id.
func Match(r Record, id string) error {
	if r.ID != id {
		return ErrIDMismatch
	}
	if r.Pending() {
		return ErrPending
	}
	if r.Outcome == ERR {
		return &OperationError{Message: r.Message}
	}
	return nil
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
