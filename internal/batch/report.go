// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/lecture2mp3/pkg/types"
)

// PreviewLimit is the number of file names printed after a successful run.
const PreviewLimit = 10

// Preview splits names into the ones to print and the count left over.
func Preview(names []string, limit int) (shown []string, more int) {
	if len(names) <= limit {
		return names, 0
	}
	return names[:limit], len(names) - limit
}

// Report prints the success summary for result.
func Report(w io.Writer, result types.ExecutionResult, spec types.ConversionJobSpec) {
	format := strings.ToUpper(spec.AudioFormat)
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Success! All %s files are in the '%s' folder\n", format, spec.OutputDir)

	fmt.Fprintf(w, "\nCreated %d %s files:\n", len(result.Files), format)
	shown, more := Preview(result.Files, PreviewLimit)
	for _, name := range shown {
		fmt.Fprintf(w, "   * %s\n", name)
	}
	if more > 0 {
		fmt.Fprintf(w, "   ... and %d more\n", more)
	}
}

// Troubleshoot prints remediation hints after a failed run.
func Troubleshoot(w io.Writer, spec types.ConversionJobSpec, err error) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Error during download/conversion")
	fmt.Fprintln(w, "\nTroubleshooting:")
	fmt.Fprintf(w, "1. Make sure %s is closed (its cookies can't be read while it is running)\n", spec.Browser)
	fmt.Fprintln(w, "2. Try another browser: --browser edge (or firefox)")
	fmt.Fprintln(w, "3. Make sure FFmpeg is installed and in PATH")
	if err != nil {
		fmt.Fprintf(w, "\nError details: %v\n", err)
	}
}
