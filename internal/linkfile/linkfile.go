// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package linkfile reads and writes batch files: plain text, one URL per
// line, with blank lines and '#' comments ignored.
package linkfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

var (
	// ErrMissing is returned when the batch file does not exist.
	ErrMissing = errors.New("links file not found")

	// ErrEmpty is returned when the batch file has no usable entries.
	ErrEmpty = errors.New("links file has no links")
)

const commentPrefix = "#"

// Read loads the batch file at path. Entries keep their file order and
// multiplicity. URLs are not validated.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissing, path)
		}
		return nil, fmt.Errorf("opening links file %s: %w", path, err)
	}
	defer f.Close()

	links, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading links file %s: %w", path, err)
	}
	if len(links) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	return links, nil
}

// Parse returns the stripped, non-blank, non-comment lines of r. Lines
// have no length limit.
func Parse(r io.Reader) ([]string, error) {
	var links []string
	br := bufio.NewReader(r)
	for {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		line := strings.TrimSpace(raw)
		if line != "" && !strings.HasPrefix(line, commentPrefix) {
			links = append(links, line)
		}
		if err != nil {
			return links, nil
		}
	}
}

// Append adds links to the batch file at path, one per line, creating the
// file when it does not exist.
func Append(path string, links []string) error {
	if len(links) == 0 {
		return nil
	}

	needsNewline, err := endsWithoutNewline(path)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening links file %s: %w", path, err)
	}

	var b strings.Builder
	if needsNewline {
		b.WriteString("\n")
	}
	for _, l := range links {
		b.WriteString(l)
		b.WriteString("\n")
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return fmt.Errorf("writing links file %s: %w", path, err)
	}
	return f.Close()
}

// endsWithoutNewline reports whether the file at path is non-empty and
// its last byte is not a newline.
func endsWithoutNewline(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("opening links file %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("stat links file %s: %w", path, err)
	}
	if info.Size() == 0 {
		return false, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, fmt.Errorf("reading links file %s: %w", path, err)
	}
	return last[0] != '\n', nil
}
