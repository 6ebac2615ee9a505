// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// DirectoryLister returns the names of the regular files in a directory.
type DirectoryLister interface {
	List(dir string) ([]string, error)
}

// OSLister lists directories on the local filesystem.
type OSLister struct{}

// List implements DirectoryLister.
func (OSLister) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// MatchingFiles lists dir and returns the sorted names ending in ext.
func MatchingFiles(l DirectoryLister, dir, ext string) ([]string, error) {
	names, err := l.List(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, n := range names {
		if strings.HasSuffix(n, ext) {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out, nil
}
