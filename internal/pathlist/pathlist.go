// Package pathlist models the Windows PATH value as an ordered list of
// directories and applies add/remove edits to its serialized text.
package pathlist

import "strings"

// Separator is the list separator used by the machine PATH value.
const Separator = ";"

// PathList is the PATH value split into tokens. Empty segments are kept, so
// a trailing separator survives a Parse/String round trip as a final "".
type PathList []string

// Parse splits raw on the separator. Empty input yields an empty list.
func Parse(raw string) PathList {
	if raw == "" {
		return PathList{}
	}
	return strings.Split(raw, Separator)
}

// String joins the tokens back into the registry form.
func (l PathList) String() string {
	return strings.Join(l, Separator)
}

// Contains reports whether token appears verbatim. No path normalization is
// done: "C:\jdk\bin" and "c:\jdk\bin\" are different tokens.
func (l PathList) Contains(token string) bool {
	for _, t := range l {
		if t == token {
			return true
		}
	}
	return false
}

// Entries returns the non-empty tokens.
func (l PathList) Entries() []string {
	out := make([]string, 0, len(l))
	for _, t := range l {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
