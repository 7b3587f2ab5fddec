package format

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/dhamidi/calc/expr"
	"github.com/dhamidi/calc/workspace"
)

// LocaleEncoder is a TextEncoder that prints results with the digit
// grouping and decimal separator of a language, e.g. "1.234,5" for "de".
type LocaleEncoder struct {
	w       io.Writer
	printer *message.Printer
}

func NewLocaleEncoder(w io.Writer, locale string) (*LocaleEncoder, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &LocaleEncoder{w: w, printer: message.NewPrinter(tag)}, nil
}

func (e *LocaleEncoder) Encode(doc *workspace.Document) error {
	return writeLines(e.w, doc, e.display)
}

func (e *LocaleEncoder) display(l workspace.Line) string {
	if l.Err != nil {
		return expr.ErrorMarker
	}
	return e.printer.Sprint(number.Decimal(l.Result.Value, number.MaxFractionDigits(8)))
}
