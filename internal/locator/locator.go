// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package locator resolves runtime artifacts (the gRPC schema, the OpenAPI
// document, include directories) from an ordered list of candidate paths.
package locator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by [First] when none of the candidates exists.
var ErrNotFound = errors.New("not found")

// NotFoundError lists every path that was checked.
type NotFoundError struct {
	Candidates []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("none of [%s] exists", strings.Join(e.Candidates, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// First returns the first candidate that exists as a regular file.
func First(candidates ...string) (string, error) {
	return first(candidates, func(info os.FileInfo) bool { return info.Mode().IsRegular() })
}

// FirstDir returns the first candidate that exists as a directory.
func FirstDir(candidates ...string) (string, error) {
	return first(candidates, func(info os.FileInfo) bool { return info.IsDir() })
}

func first(candidates []string, accept func(os.FileInfo) bool) (string, error) {
	for _, c := range candidates {
		info, err := os.Stat(c)
		if err != nil {
			continue
		}
		if accept(info) {
			return c, nil
		}
	}

	return "", &NotFoundError{Candidates: candidates}
}

// Bases are the directories relative candidates are resolved against.
type Bases struct {
	// Executable is the directory holding the running binary.
	Executable string
	// WorkDir is the process working directory.
	WorkDir string
}

// DefaultBases returns the executable directory and the working directory of
// the current process. A base that cannot be determined is left empty.
func DefaultBases() Bases {
	var b Bases
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		b.Executable = filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		b.WorkDir = wd
	}

	return b
}

// Candidates expands rel into absolute candidate paths: first under the
// executable directory, then under the working directory. An absolute rel
// is returned as the only candidate.
func (b Bases) Candidates(rel string) []string {
	if filepath.IsAbs(rel) {
		return []string{filepath.Clean(rel)}
	}

	candidates := make([]string, 0, 2)
	for _, base := range []string{b.Executable, b.WorkDir} {
		if base == "" {
			continue
		}
		p := filepath.Join(base, rel)
		if len(candidates) > 0 && candidates[len(candidates)-1] == p {
			continue
		}
		candidates = append(candidates, p)
	}

	return candidates
}
