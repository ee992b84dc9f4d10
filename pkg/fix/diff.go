// Package fix renders the difference between a file and its formatted output.
package fix

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// Diff is a unified diff between a file and its formatted output.
type Diff struct {
	// Path is the file path used in the diff headers.
	Path string

	Original []byte
	Modified []byte

	// Unified is the diff body starting at the ---/+++ headers.
	Unified string

	Additions int
	Deletions int
}

// GenerateDiff creates a unified diff between original and modified content.
// It returns nil when the contents are equal.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if string(original) == string(modified) {
		return nil
	}

	a := difflib.SplitLines(string(original))
	b := difflib.SplitLines(string(modified))
	name := strings.TrimPrefix(path, "/")

	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        a,
		B:        b,
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  contextLines,
	})
	if err != nil || unified == "" {
		return nil
	}

	diff := &Diff{
		Path:     path,
		Original: original,
		Modified: modified,
		Unified:  unified,
	}
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'r':
			diff.Deletions += op.I2 - op.I1
			diff.Additions += op.J2 - op.J1
		case 'd':
			diff.Deletions += op.I2 - op.I1
		case 'i':
			diff.Additions += op.J2 - op.J1
		}
	}
	return diff
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified diff format (without the git header).
func (d *Diff) String() string {
	if d == nil {
		return ""
	}
	return d.Unified
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.Unified
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && d.Unified != ""
}
