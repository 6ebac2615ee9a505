package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountGoLines(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		t.Helper()
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write("a.go", "package a\n\n\t\r\nfunc A() {}\n   \n")
	write("b.go", "package a\r\nvar B = 1")
	write("a_test.go", "package a\n\nfunc TestA() {}\n")
	write("notes.txt", "not\ngo\n")
	write("_examples/x/x.go", "package x\nvar X = 1\n")

	prod, err := countGoLines(root, false)
	require.NoError(t, err)
	assert.Equal(t, 4, prod)

	tests, err := countGoLines(root, true)
	require.NoError(t, err)
	assert.Equal(t, 2, tests)
}
