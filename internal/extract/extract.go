// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract recovers direct video URLs from HTML pages saved from a
// course site, so they can be appended to a batch file.
package extract

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// patterns are tried in order; the first one that matches a page wins.
var patterns = []struct {
	name  string
	re    *regexp.Regexp
	group int
}{
	{name: "cloudfront", re: regexp.MustCompile(`(?i)https://[a-z0-9]+\.cloudfront\.net/[^"'\s]+\.mp4`)},
	{name: "src", re: regexp.MustCompile(`(?i)src=["']([^"']+\.mp4)[^"']*`), group: 1},
	{name: "generic", re: regexp.MustCompile(`(?i)https?://[^"'\s]+\.mp4`)},
}

// FromHTML returns the first video URL found in page and the name of the
// pattern that matched.
func FromHTML(page string) (url, pattern string, ok bool) {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(page)
		if m == nil {
			continue
		}
		return m[p.group], p.name, true
	}
	return "", "", false
}

// Result holds the outcome of scanning a set of pages.
type Result struct {
	// Links are the recovered URLs, de-duplicated in first-seen order.
	Links []string
	// NoMatch lists pages without a recognizable video URL.
	NoMatch []string
	// Failed lists pages that could not be read.
	Failed []string
}

// Pages scans each file, or each .html/.htm file under a directory,
// printing per-page status to w. Unreadable pages are reported and skipped.
func Pages(paths []string, w io.Writer) (Result, error) {
	files, err := expand(paths)
	if err != nil {
		return Result{}, err
	}

	var res Result
	seen := make(map[string]bool)
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", path, err)
			res.Failed = append(res.Failed, path)
			continue
		}
		url, pattern, ok := FromHTML(string(data))
		if !ok {
			fmt.Fprintf(w, "no video: %s\n", path)
			res.NoMatch = append(res.NoMatch, path)
			continue
		}
		fmt.Fprintf(w, "found:   %s (%s)\n", url, pattern)
		if seen[url] {
			continue
		}
		seen[url] = true
		res.Links = append(res.Links, url)
	}
	return res, nil
}

// expand replaces directories with the HTML files they contain, sorted.
func expand(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			// Let Pages report it as a failed page.
			out = append(out, p)
			continue
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}

		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".html", ".htm":
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", p, err)
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}
