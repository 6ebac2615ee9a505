package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// pagesDir is where saved course pages are expected.
const pagesDir = "pages"

// Extract builds the CLI and appends video links found in pages/ to links.txt.
func Extract() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "extract", pagesDir)
}
