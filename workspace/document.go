package workspace

import (
	"bytes"
	"strings"

	"github.com/dhamidi/calc/expr"
)

// CommentPrefix starts a line that is not evaluated.
const CommentPrefix = "#"

// Line is one evaluated expression of a .calc document. Number is 1-based.
type Line struct {
	Number int
	Source string
	// Column is the 0-based UTF-16 offset of Source within its line, the
	// unit LSP positions are counted in.
	Column int
	Result expr.Result
	Err    error
}

func (l Line) Display() string {
	if l.Err != nil {
		return expr.ErrorMarker
	}
	return l.Result.String()
}

type Document struct {
	Path    string
	Content []byte
	Lines   []Line
}

// Errors returns the lines that failed to evaluate.
func (d *Document) Errors() []Line {
	var failed []Line
	for _, l := range d.Lines {
		if l.Err != nil {
			failed = append(failed, l)
		}
	}
	return failed
}

// LineAt returns the evaluated line with the given 1-based number.
func (d *Document) LineAt(number int) (Line, bool) {
	for _, l := range d.Lines {
		if l.Number == number {
			return l, true
		}
	}
	return Line{}, false
}

// EvaluateDocument evaluates every non-blank line of content that is not a
// comment.
func EvaluateDocument(path string, content []byte, opts ...expr.Option) *Document {
	doc := &Document{Path: path, Content: content}

	number := 0
	for chunk := range bytes.Lines(content) {
		number++
		raw := strings.TrimRight(string(chunk), "\r\n")
		source := strings.TrimSpace(raw)
		if source == "" || strings.HasPrefix(source, CommentPrefix) {
			continue
		}
		line := Line{
			Number: number,
			Source: source,
			Column: utf16Len(raw[:strings.Index(raw, source)]),
		}
		line.Result, line.Err = expr.Evaluate(source, opts...)
		doc.Lines = append(doc.Lines, line)
	}
	return doc
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
