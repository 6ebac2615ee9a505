// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package process

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestOSRunner(t *testing.T) {
	requireShell(t)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{
			name:     "zero exit",
			args:     []string{"-c", "echo hello"},
			wantCode: 0,
			wantOut:  "hello\n",
		},
		{
			name:     "non-zero exit is not an error",
			args:     []string{"-c", "exit 3"},
			wantCode: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			res, err := OSRunner{}.Run(context.Background(), Command{
				Name:   "sh",
				Args:   tt.args,
				Stdout: &out,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, res.ExitCode)
			assert.Equal(t, tt.wantOut, out.String())
		})
	}
}

func TestOSRunnerMissingBinary(t *testing.T) {
	_, err := OSRunner{}.Run(context.Background(), Command{Name: "definitely-not-a-real-binary-5f3a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting definitely-not-a-real-binary-5f3a")
}

func TestCommandString(t *testing.T) {
	c := Command{Name: "yt-dlp", Args: []string{"-x", "-a", "links.txt"}}
	assert.Equal(t, "yt-dlp -x -a links.txt", c.String())
}
