// Package format writes evaluated calculator documents.
package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/calc/workspace"
)

type Encoder interface {
	Encode(doc *workspace.Document) error
}

// New returns the encoder registered under name: "text" or "json". A
// non-empty locale selects the locale-aware text encoder.
func New(name, locale string, w io.Writer) (Encoder, error) {
	switch name {
	case "text", "":
		if locale != "" {
			return NewLocaleEncoder(w, locale)
		}
		return NewTextEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}
