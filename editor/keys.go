package editor

import "fmt"

// Key names follow the browser KeyboardEvent.key values.
const (
	KeyEnter     = "Enter"
	KeyEquals    = "="
	KeyEscape    = "Escape"
	KeyDelete    = "Delete"
	KeyBackspace = "Backspace"
)

type Action int

const (
	ActionNone Action = iota
	ActionAppend
	ActionEvaluate
	ActionClear
	ActionBackspace
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionAppend:
		return "append"
	case ActionEvaluate:
		return "evaluate"
	case ActionClear:
		return "clear"
	case ActionBackspace:
		return "backspace"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ActionForKey maps a key name to the operation it triggers. Delete clears
// the display only in the validated variant.
func ActionForKey(v Variant, key string) Action {
	switch key {
	case KeyEnter, KeyEquals:
		return ActionEvaluate
	case KeyEscape:
		return ActionClear
	case KeyDelete:
		if v == VariantValidated {
			return ActionClear
		}
		return ActionNone
	case KeyBackspace:
		return ActionBackspace
	case "×", "÷":
		return ActionAppend
	}
	if len(key) == 1 {
		ch := key[0]
		if (ch >= '0' && ch <= '9') || ch == '.' || ch == '+' || ch == '-' || ch == '*' || ch == '/' {
			return ActionAppend
		}
	}
	return ActionNone
}

// HandleKey applies the operation bound to key. Unknown keys are ignored and
// report ActionNone. The returned error is ErrRejected for a discarded token
// or the evaluation error after the display switched to the error marker.
func (e *Editor) HandleKey(key string) (Action, error) {
	action := ActionForKey(e.variant, key)
	switch action {
	case ActionAppend:
		return action, e.Append(key)
	case ActionEvaluate:
		return action, e.Evaluate()
	case ActionClear:
		e.Clear()
	case ActionBackspace:
		e.Backspace()
	}
	return action, nil
}
