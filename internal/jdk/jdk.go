// Package jdk finds Java installations on disk and describes them from
// their own `java -version` output.
package jdk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	UnknownVersion = "Unknown"
	Arch64         = "64-Bit"
	Arch32         = "32-Bit"

	probeTimeout = 5 * time.Second
)

var ErrVersionOutput = errors.New("unsupported -version output")

type JDK struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Version string `json:"version"`
	Arch    string `json:"arch"`
	Current bool   `json:"is_current"`
	Valid   bool   `json:"is_valid"`
}

// ExecutableName is the java launcher's file name on this platform.
func ExecutableName() string {
	if runtime.GOOS == "windows" {
		return "java.exe"
	}
	return "java"
}

// FromExecutable runs exe with -version and describes the JDK it belongs
// to. Path is the directory holding exe, which is what goes on PATH.
func FromExecutable(ctx context.Context, exe string) (JDK, error) {
	if _, err := os.Stat(exe); err != nil {
		return JDK{}, fmt.Errorf("java executable not found: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, exe, "-version")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	hideWindow(cmd)
	if err := cmd.Run(); err != nil {
		return JDK{}, fmt.Errorf("failed to run %s -version: %w", exe, err)
	}

	// -version writes to stderr; some builds use stdout.
	out := stderr.String()
	if strings.TrimSpace(out) == "" {
		out = stdout.String()
	}

	j, err := ParseVersionOutput(out)
	if err != nil {
		return JDK{}, err
	}
	j.Path = filepath.Dir(exe)
	j.Valid = true
	return j, nil
}

// ParseVersionOutput reads the three header lines java prints for
// -version, e.g.
//
//	openjdk version "21.0.1" 2023-10-17
//	OpenJDK Runtime Environment Temurin-21.0.1+12 (build 21.0.1+12)
//	OpenJDK 64-Bit Server VM Temurin-21.0.1+12 (build 21.0.1+12, mixed mode)
func ParseVersionOutput(out string) (JDK, error) {
	var lines []string
	for _, l := range strings.Split(strings.ReplaceAll(out, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		// JAVA_TOOL_OPTIONS and friends announce themselves first.
		if strings.HasPrefix(l, "Picked up ") {
			continue
		}
		lines = append(lines, l)
	}
	if len(lines) < 3 {
		return JDK{}, ErrVersionOutput
	}

	j := JDK{
		Version: quoted(lines[0]),
		Name:    strings.TrimSpace(strings.SplitN(lines[1], "Runtime Environment", 2)[0]),
		Arch:    Arch32,
	}
	if j.Version == "" {
		j.Version = UnknownVersion
	}
	if strings.Contains(lines[2], "64-Bit") {
		j.Arch = Arch64
	}
	return j, nil
}

func quoted(s string) string {
	start := strings.IndexByte(s, '"')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(s[start+1:], '"')
	if end < 0 {
		return ""
	}
	return s[start+1 : start+1+end]
}
