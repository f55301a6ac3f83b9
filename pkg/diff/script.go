// Copyright © 2018 One Concern

package diff

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Tag qualifies an edit operation
type Tag byte

// Edit operation tags
const (
	Equal   Tag = 'e'
	Replace Tag = 'r'
	Delete  Tag = 'd'
	Insert  Tag = 'i'
)

func (t Tag) String() string {
	switch t {
	case Equal:
		return "equal"
	case Replace:
		return "replace"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	default:
		return fmt.Sprintf("tag(%c)", byte(t))
	}
}

// Op is an edit operation: lines [I1, I2) of the original are turned into lines [J1, J2) of the
// modified text, which are carried in Lines.
type Op struct {
	Tag    Tag      `json:"tag" yaml:"tag"`
	I1     int      `json:"i1" yaml:"i1"`
	I2     int      `json:"i2" yaml:"i2"`
	J1     int      `json:"j1" yaml:"j1"`
	J2     int      `json:"j2" yaml:"j2"`
	Lines  []string `json:"lines,omitempty" yaml:"lines,omitempty"`
	Source []string `json:"-" yaml:"-"`
}

// IsChange tells if the operation modifies the original
func (o Op) IsChange() bool {
	return o.Tag != Equal
}

// Delta is the change in line count introduced by this operation
func (o Op) Delta() int {
	return (o.J2 - o.J1) - (o.I2 - o.I1)
}

// Overlaps tells if two operations touch a common line of the original.
//
// Zero-width insertions never overlap anything.
func (o Op) Overlaps(other Op) bool {
	return Overlap(o.I1, o.I2, other.I1, other.I2)
}

func (o Op) String() string {
	return fmt.Sprintf("%s [%d,%d) -> [%d,%d)", o.Tag, o.I1, o.I2, o.J1, o.J2)
}

// Overlap tells if the half-open ranges [i1, i2) and [j1, j2) intersect
func Overlap(i1, i2, j1, j2 int) bool {
	return maxInt(i1, j1) < minInt(i2, j2)
}

// Opcodes yields the full sequence of operations turning a into b, including Equal runs.
func Opcodes(a, b []string) []Op {
	matcher := difflib.NewMatcher(a, b)
	codes := matcher.GetOpCodes()
	ops := make([]Op, 0, len(codes))
	for _, c := range codes {
		op := Op{
			Tag:    Tag(c.Tag),
			I1:     c.I1,
			I2:     c.I2,
			J1:     c.J1,
			J2:     c.J2,
			Source: a[c.I1:c.I2],
		}
		if op.Tag != Equal {
			op.Lines = b[c.J1:c.J2]
		}
		ops = append(ops, op)
	}
	return ops
}

// EditScript yields the changing operations turning a into b, in order of the original lines.
func EditScript(a, b []string) []Op {
	all := Opcodes(a, b)
	ops := make([]Op, 0, len(all))
	for _, op := range all {
		if op.IsChange() {
			ops = append(ops, op)
		}
	}
	return ops
}

// Apply an edit script to lines. Operations must be sorted by original position and must not overlap.
func Apply(lines []string, ops []Op) []string {
	result := make([]string, len(lines))
	copy(result, lines)
	offset := 0
	for _, op := range ops {
		if !op.IsChange() {
			continue
		}
		result = Splice(result, op.I1+offset, op.I2+offset, op.Lines)
		offset += op.Delta()
	}
	return result
}

// Splice replaces lines [from, to) with replacement
func Splice(lines []string, from, to int, replacement []string) []string {
	spliced := make([]string, 0, len(lines)-(to-from)+len(replacement))
	spliced = append(spliced, lines[:from]...)
	spliced = append(spliced, replacement...)
	spliced = append(spliced, lines[to:]...)
	return spliced
}

// Unified renders a unified diff between two texts
func Unified(a, b, fromName, toName string, context int) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: fromName,
		ToFile:   toName,
		Context:  context,
	})
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
