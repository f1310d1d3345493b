// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package confirm asks the operator to approve a destructive run.
package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Answer is the exact text the operator must type to proceed.
const Answer = "yes"

// Ask warns that files under dir will be renamed and reads one line from in.
// It returns true only when the line, without surrounding whitespace, is
// exactly "yes". End of input counts as a refusal.
func Ask(in io.Reader, out io.Writer, dir string) (bool, error) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "WARNING: This will permanently rename files in the following directory:")
	fmt.Fprintf(out, "  %s\n\n", dir)
	fmt.Fprintln(out, "Please ensure you have a backup of your data before proceeding.")
	fmt.Fprintf(out, "Are you sure you want to continue? (type '%s' to proceed): ", Answer)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	return strings.TrimSpace(line) == Answer, nil
}
