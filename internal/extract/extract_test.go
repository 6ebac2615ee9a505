// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHTML(t *testing.T) {
	tests := []struct {
		name        string
		page        string
		wantURL     string
		wantPattern string
		wantOK      bool
	}{
		{
			name:        "cloudfront preferred over src",
			page:        `<video src="/local/lesson.mp4"></video><script>var u = "https://d1abc.cloudfront.net/course/w1/lesson.mp4";</script>`,
			wantURL:     "https://d1abc.cloudfront.net/course/w1/lesson.mp4",
			wantPattern: "cloudfront",
			wantOK:      true,
		},
		{
			name:        "src attribute with query string",
			page:        `<source src='https://media.example.edu/v/intro.mp4?token=abc' type="video/mp4">`,
			wantURL:     "https://media.example.edu/v/intro.mp4",
			wantPattern: "src",
			wantOK:      true,
		},
		{
			name:        "generic url in text",
			page:        `<a>download: http://files.example.edu/lec2.MP4 </a>`,
			wantURL:     "http://files.example.edu/lec2.MP4",
			wantPattern: "generic",
			wantOK:      true,
		},
		{
			name:   "no video",
			page:   `<html><body><p>Nothing here</p></body></html>`,
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, pattern, ok := FromHTML(tt.page)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantURL, url)
			assert.Equal(t, tt.wantPattern, pattern)
		})
	}
}

func TestPages(t *testing.T) {
	dir := t.TempDir()
	pages := map[string]string{
		"a.html":     `<video src="https://cdn.example.edu/a.mp4"></video>`,
		"b.html":     `<video src="https://cdn.example.edu/a.mp4"></video>`,
		"c.htm":      `<video src="https://cdn.example.edu/c.mp4"></video>`,
		"empty.html": `<p>no video</p>`,
		"notes.txt":  `https://cdn.example.edu/ignored.mp4`,
	}
	for name, content := range pages {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	missing := filepath.Join(dir, "gone.html")

	var log bytes.Buffer
	res, err := Pages([]string{dir, missing}, &log)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://cdn.example.edu/a.mp4", "https://cdn.example.edu/c.mp4"}, res.Links)
	assert.Equal(t, []string{filepath.Join(dir, "empty.html")}, res.NoMatch)
	assert.Equal(t, []string{missing}, res.Failed)
	assert.Contains(t, log.String(), "no video:")
	assert.Contains(t, log.String(), "failed:")
}
