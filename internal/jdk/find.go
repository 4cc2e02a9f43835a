package jdk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pink-tools/pink-otel"
)

// Finder walks directories looking for java executables.
type Finder struct {
	Probe func(ctx context.Context, exe string) (JDK, error)
}

// FindInDir scans dir with FromExecutable as the probe.
func FindInDir(ctx context.Context, dir string) ([]JDK, error) {
	return Finder{Probe: FromExecutable}.FindInDir(ctx, dir)
}

// FindInDir returns the JDKs under dir. A directory holding the java
// executable is a JDK bin directory and ends the search there; otherwise a
// bin subdirectory is tried alone, and failing that every subdirectory.
// Executables that fail to probe are skipped.
func (f Finder) FindInDir(ctx context.Context, dir string) ([]JDK, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}
	return f.walk(ctx, dir)
}

func (f Finder) walk(ctx context.Context, dir string) ([]JDK, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	exe := ExecutableName()
	for _, e := range entries {
		if e.Name() == exe && isFile(filepath.Join(dir, e.Name())) {
			j, err := f.Probe(ctx, filepath.Join(dir, e.Name()))
			if err != nil {
				otel.Warn(ctx, "skipping java executable", otel.Attr{K: "path", V: filepath.Join(dir, e.Name())}, otel.Attr{K: "error", V: err.Error()})
				return nil, nil
			}
			return []JDK{j}, nil
		}
	}

	for _, e := range entries {
		if e.Name() == "bin" && isDir(filepath.Join(dir, e.Name())) {
			jdks, err := f.walk(ctx, filepath.Join(dir, e.Name()))
			if err != nil && ctx.Err() != nil {
				return nil, err
			}
			return jdks, nil
		}
	}

	var jdks []JDK
	for _, e := range entries {
		sub := filepath.Join(dir, e.Name())
		if !isDir(sub) {
			continue
		}
		found, err := f.walk(ctx, sub)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			continue
		}
		jdks = append(jdks, found...)
	}
	return jdks, nil
}

// isFile and isDir follow symlinks, so linked installs are found too.
func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
