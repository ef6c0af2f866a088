// Package tree is the nested parse-tree output shape shared by both
// resolvers: `[name, [children…], start_offset, end_offset]`.
package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Tree is a nested parse-tree node: `[name, [children…], start_offset,
// end_offset]`. name is the text of the start vertex that opened this
// node; children are the nested trees of the non-terminals matched
// directly inside it. Parent/Index are set by Fill and only used to
// report a diff path; they take no part in (un)marshaling.
type Tree struct {
	Name     string
	Children []*Tree
	Start    int
	End      int

	Parent *Tree
	Index  int
}

// MarshalJSON writes the `[name, children, start, end]` array form. Commas
// inside name are escaped as the literal sequence \u002c rather than left
// as a bare comma, to keep the name unambiguous from the array's own
// separators when the document is read back by tooling that treats it as
// a flat token stream rather than parsing it as JSON.
func (t *Tree) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	buf.Write(marshalEscapedName(t.Name))
	buf.WriteByte(',')
	buf.WriteByte('[')
	for i, c := range t.Children {
		if i > 0 {
			buf.WriteByte(',')
		}
		cb, err := c.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(cb)
	}
	buf.WriteByte(']')
	buf.WriteByte(',')
	buf.WriteString(strconv.Itoa(t.Start))
	buf.WriteByte(',')
	buf.WriteString(strconv.Itoa(t.End))
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the `[name, children, start, end]` array form, the
// inverse of MarshalJSON. Standard JSON decoding already turns the
// \u002c escape back into a literal comma, so no special-casing is needed here.
func (t *Tree) UnmarshalJSON(data []byte) error {
	var raw [4]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("tree must be a [name, children, start, end] array: %w", err)
	}
	if err := json.Unmarshal(raw[0], &t.Name); err != nil {
		return err
	}
	var childrenRaw []json.RawMessage
	if err := json.Unmarshal(raw[1], &childrenRaw); err != nil {
		return err
	}
	t.Children = make([]*Tree, len(childrenRaw))
	for i, cr := range childrenRaw {
		c := &Tree{}
		if err := c.UnmarshalJSON(cr); err != nil {
			return err
		}
		t.Children[i] = c
	}
	if err := json.Unmarshal(raw[2], &t.Start); err != nil {
		return err
	}
	return json.Unmarshal(raw[3], &t.End)
}

// Fill populates Parent/Index on every descendant, enabling path() to
// report a dotted location for diff messages. Callers run this on both the
// expected fixture tree and the actual resolver output before diffing.
func (t *Tree) Fill() *Tree {
	for i, c := range t.Children {
		c.Parent = t
		c.Index = i
		c.Fill()
	}
	return t
}

func (t *Tree) path() string {
	if t.Parent == nil {
		return t.Name
	}
	return fmt.Sprintf("%v.[%v]%v", t.Parent.path(), t.Index, t.Name)
}

// TreeDiff is one mismatch DiffTree found between an expected and an
// actual tree.
type TreeDiff struct {
	ExpectedPath string
	ActualPath   string
	Message      string
}

func newTreeDiff(expected, actual *Tree, message string) *TreeDiff {
	return &TreeDiff{
		ExpectedPath: expected.path(),
		ActualPath:   actual.path(),
		Message:      message,
	}
}

// DiffTree compares expected against actual, stopping at the first
// mismatch along each branch. A name of "_" in expected matches any actual
// name, mirroring the wildcard convention test fixtures commonly use.
func DiffTree(expected, actual *Tree) []*TreeDiff {
	if expected == nil && actual == nil {
		return nil
	}
	if expected == nil || actual == nil {
		return []*TreeDiff{{Message: "one side of the comparison is nil"}}
	}
	if expected.Name != "_" && actual.Name != expected.Name {
		msg := fmt.Sprintf("unexpected name: expected %q but got %q", expected.Name, actual.Name)
		return []*TreeDiff{newTreeDiff(expected, actual, msg)}
	}
	if expected.Start != actual.Start || expected.End != actual.End {
		msg := fmt.Sprintf("unexpected span: expected [%v,%v) but got [%v,%v)", expected.Start, expected.End, actual.Start, actual.End)
		return []*TreeDiff{newTreeDiff(expected, actual, msg)}
	}
	if len(actual.Children) != len(expected.Children) {
		msg := fmt.Sprintf("unexpected child count: expected %v but got %v", len(expected.Children), len(actual.Children))
		return []*TreeDiff{newTreeDiff(expected, actual, msg)}
	}
	var diffs []*TreeDiff
	for i, exp := range expected.Children {
		if ds := DiffTree(exp, actual.Children[i]); len(ds) > 0 {
			diffs = append(diffs, ds...)
		}
	}
	return diffs
}

func marshalEscapedName(name string) []byte {
	var buf bytes.Buffer
	buf.WriteByte('"')
	for _, r := range name {
		switch r {
		case ',':
			buf.WriteString(`\u002c`)
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
	return buf.Bytes()
}

// PrintTree renders t as an indented, human-readable tree using a
// ├─/└─ ruled-line convention. Offsets are shown alongside each name.
func PrintTree(w io.Writer, t *Tree) {
	printTree(w, t, "", "")
}

func printTree(w io.Writer, t *Tree, ruledLine string, childPrefix string) {
	if t == nil {
		return
	}
	fmt.Fprintf(w, "%v%v [%v,%v)\n", ruledLine, t.Name, t.Start, t.End)

	num := len(t.Children)
	for i, c := range t.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}
		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}
		printTree(w, c, childPrefix+line, childPrefix+prefix)
	}
}
