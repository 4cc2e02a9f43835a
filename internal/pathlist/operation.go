package pathlist

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindAdd    Kind = "add"
	KindRemove Kind = "remove"
)

// Operation is a single edit against the PATH text.
type Operation struct {
	Kind Kind
	Path string
}

func Add(path string) Operation {
	return Operation{Kind: KindAdd, Path: path}
}

func Remove(path string) Operation {
	return Operation{Kind: KindRemove, Path: path}
}

func (op Operation) String() string {
	return fmt.Sprintf("%s(%s)", op.Kind, op.Path)
}

// Apply reduces ops over raw from left to right and returns the new text.
//
// Edits work on the raw string rather than on a parsed list so entries with
// odd formatting elsewhere in the value are left exactly as they were.
// Add is a no-op when the path already occurs as a substring. Otherwise it
// appends "path;", first terminating a final entry that lacks its separator
// so the two never run together ("C:\jdk\binC:\new;"). Remove deletes one
// occurrence of path followed by the separator, so a final entry written
// without a trailing separator is not matched.
func Apply(raw string, ops ...Operation) string {
	for _, op := range ops {
		raw = op.apply(raw)
	}
	return raw
}

func (op Operation) apply(raw string) string {
	if op.Path == "" {
		return raw
	}
	switch op.Kind {
	case KindAdd:
		if strings.Contains(raw, op.Path) {
			return raw
		}
		if raw != "" && !strings.HasSuffix(raw, Separator) {
			raw += Separator
		}
		return raw + op.Path + Separator
	case KindRemove:
		return strings.Replace(raw, op.Path+Separator, "", 1)
	}
	return raw
}
