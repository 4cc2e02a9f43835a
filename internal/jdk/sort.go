package jdk

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// SemVer maps a java version string onto semver, or "" when it has no
// sensible reading. Legacy 1.x versions keep their 1.x major.
//
//	1.8.0_392 -> v1.8.0
//	21        -> v21.0.0
//	21-ea     -> v21.0.0-ea
func SemVer(version string) string {
	v := version
	if i := strings.IndexAny(v, "_+"); i >= 0 {
		v = v[:i]
	}
	pre := ""
	if i := strings.IndexByte(v, '-'); i >= 0 {
		v, pre = v[:i], v[i:]
	}

	parts := strings.Split(v, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return ""
		}
		parts[i] = strconv.Itoa(n)
	}
	for len(parts) < 3 {
		parts = append(parts, "0")
	}

	s := "v" + strings.Join(parts, ".") + pre
	if !semver.IsValid(s) {
		return ""
	}
	return s
}

// SortByVersion orders jdks newest first. Unparseable versions go last,
// by name.
func SortByVersion(jdks []JDK) {
	sort.SliceStable(jdks, func(i, j int) bool {
		a, b := SemVer(jdks[i].Version), SemVer(jdks[j].Version)
		switch {
		case a == "" && b == "":
			return jdks[i].Name < jdks[j].Name
		case a == "":
			return false
		case b == "":
			return true
		}
		return semver.Compare(a, b) > 0
	})
}
