package format

import (
	"bufio"
	"io"

	"github.com/dhamidi/calc/workspace"
)

// TextEncoder writes one "expression = result" line per evaluated line.
type TextEncoder struct {
	w io.Writer
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(doc *workspace.Document) error {
	return writeLines(e.w, doc, func(l workspace.Line) string {
		return l.Display()
	})
}

func writeLines(w io.Writer, doc *workspace.Document, display func(workspace.Line) string) error {
	bw := bufio.NewWriter(w)
	for _, l := range doc.Lines {
		bw.WriteString(l.Source)
		bw.WriteString(" = ")
		bw.WriteString(display(l))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
