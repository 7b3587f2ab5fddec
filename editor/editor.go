package editor

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dhamidi/calc/expr"
)

type Variant int

const (
	// VariantBaseline appends every token as typed.
	VariantBaseline Variant = iota
	// VariantValidated rejects a leading * or / and collapses consecutive
	// operators into the last one typed.
	VariantValidated
)

func (v Variant) String() string {
	switch v {
	case VariantBaseline:
		return "baseline"
	case VariantValidated:
		return "validated"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

func ParseVariant(s string) (Variant, error) {
	switch s {
	case "baseline":
		return VariantBaseline, nil
	case "validated", "":
		return VariantValidated, nil
	}
	return 0, fmt.Errorf("unknown variant %q (expected baseline or validated)", s)
}

type State int

const (
	StateNormal State = iota
	StateErrorDisplayed
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateErrorDisplayed:
		return "error"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Event is a presentation side effect emitted by the editor. The editor never
// renders anything itself.
type Event int

const (
	// EventScroll asks the display to bring the newest character into view.
	EventScroll Event = iota
	// EventRejected signals a discarded token; displays pulse briefly.
	EventRejected
	// EventReset signals that error and rejection styling should be cleared.
	EventReset
)

func (e Event) String() string {
	switch e {
	case EventScroll:
		return "scroll"
	case EventRejected:
		return "rejected"
	case EventReset:
		return "reset"
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

type Listener func(Event)

var (
	ErrRejected     = errors.New("input rejected")
	ErrInvalidToken = errors.New("token must be a single character")
)

type Option func(*Editor)

func WithVariant(v Variant) Option {
	return func(e *Editor) {
		e.variant = v
	}
}

func WithListener(l Listener) Option {
	return func(e *Editor) {
		e.listeners = append(e.listeners, l)
	}
}

// WithEvalOptions passes options through to expr.Evaluate.
func WithEvalOptions(opts ...expr.Option) Option {
	return func(e *Editor) {
		e.evalOpts = append(e.evalOpts, opts...)
	}
}

// Editor owns the text of a calculator display. It is not safe for
// concurrent use; callers handle one input at a time.
type Editor struct {
	text      []rune
	state     State
	variant   Variant
	listeners []Listener
	evalOpts  []expr.Option
}

func New(opts ...Option) *Editor {
	e := &Editor{variant: VariantValidated}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) Variant() Variant {
	return e.variant
}

func (e *Editor) State() State {
	return e.state
}

func (e *Editor) Text() string {
	return string(e.text)
}

func (e *Editor) Len() int {
	return len(e.text)
}

// SetText replaces the whole display. Installing the error marker enters
// StateErrorDisplayed, anything else returns to StateNormal.
func (e *Editor) SetText(value string) {
	e.text = []rune(value)
	if value == expr.ErrorMarker {
		e.state = StateErrorDisplayed
	} else {
		e.state = StateNormal
	}
}

// Append adds a single-character token to the end of the display.
func (e *Editor) Append(token string) error {
	if utf8.RuneCountInString(token) != 1 {
		return fmt.Errorf("append %q: %w", token, ErrInvalidToken)
	}
	r, _ := utf8.DecodeRuneInString(token)

	if e.state == StateErrorDisplayed || string(e.text) == expr.ErrorMarker {
		e.text = e.text[:0]
		e.state = StateNormal
	}

	if e.variant == VariantValidated {
		// A lone leading sign may not collapse into * / × ÷.
		if IsMulDiv(r) && (len(e.text) == 0 || len(e.text) == 1 && IsOperator(e.text[0])) {
			e.emit(EventRejected)
			return fmt.Errorf("append %q: %w", token, ErrRejected)
		}
		if n := len(e.text); n > 0 && IsOperator(e.text[n-1]) && IsOperator(r) {
			e.text[n-1] = r
			e.emit(EventScroll)
			return nil
		}
	}

	e.text = append(e.text, r)
	e.emit(EventScroll)
	return nil
}

func (e *Editor) Clear() {
	e.text = e.text[:0]
	e.state = StateNormal
	e.emit(EventReset)
}

// Backspace removes the last character. The error marker is removed as a
// whole.
func (e *Editor) Backspace() {
	if e.state == StateErrorDisplayed {
		e.Clear()
		return
	}
	if len(e.text) == 0 {
		return
	}
	e.text = e.text[:len(e.text)-1]
}

// Evaluate replaces the display with the value of its expression, or with the
// error marker. An empty display is left alone.
func (e *Editor) Evaluate() error {
	if len(e.text) == 0 {
		return nil
	}
	result, err := expr.Evaluate(string(e.text), e.evalOpts...)
	if err != nil {
		e.SetText(expr.ErrorMarker)
		return err
	}
	e.SetText(result.String())
	return nil
}

func (e *Editor) emit(ev Event) {
	for _, l := range e.listeners {
		l(ev)
	}
}

// IsOperator reports whether r is a binary operator symbol, including the
// display aliases × and ÷.
func IsOperator(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '×', '÷':
		return true
	}
	return false
}

// IsMulDiv reports whether r is a multiplication or division symbol.
func IsMulDiv(r rune) bool {
	switch r {
	case '*', '/', '×', '÷':
		return true
	}
	return false
}
