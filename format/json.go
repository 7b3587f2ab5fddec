package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/calc/expr"
	"github.com/dhamidi/calc/workspace"
)

type JSONEncoder struct {
	w   io.Writer
	doc *workspace.Document
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(doc *workspace.Document) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildDocumentData(), "", "  ")
}

type jsonDocument struct {
	Path   string     `json:"path,omitempty"`
	Lines  []jsonLine `json:"lines"`
	Errors int        `json:"errors"`
}

type jsonLine struct {
	Line       int      `json:"line"`
	Expression string   `json:"expression"`
	Result     string   `json:"result"`
	Value      *float64 `json:"value,omitempty"`
	Reason     string   `json:"reason,omitempty"`
}

func (e *JSONEncoder) buildDocumentData() jsonDocument {
	data := jsonDocument{
		Path:  e.doc.Path,
		Lines: []jsonLine{},
	}
	for _, l := range e.doc.Lines {
		line := jsonLine{
			Line:       l.Number,
			Expression: l.Source,
			Result:     l.Display(),
		}
		if l.Err != nil {
			data.Errors++
			if evalErr, ok := l.Err.(*expr.EvaluationError); ok {
				line.Reason = evalErr.Reason
			}
		} else {
			value := l.Result.Value
			line.Value = &value
		}
		data.Lines = append(data.Lines, line)
	}
	return data
}
