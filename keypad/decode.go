package keypad

import "github.com/dhamidi/calc/editor"

// KeyQuit ends a keypad session. It is not an editor key.
const KeyQuit = "Quit"

// Decode translates a chunk of raw terminal input into key names. An escape
// byte that ends the chunk is the Escape key; an escape that starts a CSI
// sequence is consumed with it, and "ESC [ 3 ~" is the Delete key.
func Decode(chunk []byte) []string {
	var keys []string
	for i := 0; i < len(chunk); i++ {
		ch := chunk[i]
		switch {
		case ch == 0x1b:
			if i+1 >= len(chunk) || (chunk[i+1] != '[' && chunk[i+1] != 'O') {
				keys = append(keys, editor.KeyEscape)
				continue
			}
			end := i + 2
			for end < len(chunk) && !isFinalByte(chunk[end]) {
				end++
			}
			if end < len(chunk) && string(chunk[i+2:end+1]) == "3~" {
				keys = append(keys, editor.KeyDelete)
			}
			i = end
		case ch == '\r' || ch == '\n':
			keys = append(keys, editor.KeyEnter)
		case ch == 0x7f || ch == 0x08:
			keys = append(keys, editor.KeyBackspace)
		case ch == 0x03 || ch == 0x04 || ch == 'q':
			keys = append(keys, KeyQuit)
		case ch == 'c' || ch == 'C':
			keys = append(keys, editor.KeyEscape)
		case ch >= 0x20 && ch < 0x7f:
			keys = append(keys, string(ch))
		}
	}
	return keys
}

// isFinalByte reports whether ch terminates a CSI escape sequence.
func isFinalByte(ch byte) bool {
	return ch >= 0x40 && ch <= 0x7e
}
