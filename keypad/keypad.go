// Package keypad runs a calculator display on a raw-mode terminal.
package keypad

import (
	"errors"
	"fmt"
	"io"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/calc/editor"
)

const (
	clearLine = "\r\x1b[2K"
	bell      = "\a"
)

type Keypad struct {
	in     io.Reader
	out    io.Writer
	editor *editor.Editor
	events []editor.Event
	log    commonlog.Logger
}

func New(in io.Reader, out io.Writer, opts ...editor.Option) *Keypad {
	k := &Keypad{
		in:  in,
		out: out,
		log: commonlog.GetLogger("calc.keypad"),
	}
	opts = append(opts, editor.WithListener(func(ev editor.Event) {
		k.events = append(k.events, ev)
	}))
	k.editor = editor.New(opts...)
	return k
}

func (k *Keypad) Editor() *editor.Editor {
	return k.editor
}

// Run reads keys until the input ends or a quit key is pressed, redrawing
// the display line after every key. A rejected token rings the bell.
func (k *Keypad) Run() error {
	if err := k.render(); err != nil {
		return err
	}

	buf := make([]byte, 64)
	for {
		n, readErr := k.in.Read(buf)
		for _, key := range Decode(buf[:n]) {
			if key == KeyQuit {
				_, err := io.WriteString(k.out, "\r\n")
				return err
			}
			if err := k.press(key); err != nil {
				return err
			}
		}
		if readErr == io.EOF {
			_, err := io.WriteString(k.out, "\r\n")
			return err
		}
		if readErr != nil {
			return fmt.Errorf("read keys: %w", readErr)
		}
	}
}

func (k *Keypad) press(key string) error {
	k.events = k.events[:0]
	action, err := k.editor.HandleKey(key)
	if err != nil && !errors.Is(err, editor.ErrRejected) {
		k.log.Debugf("%s: %s", action, err)
	}
	return k.render()
}

func (k *Keypad) render() error {
	out := clearLine + k.editor.Text()
	for _, ev := range k.events {
		if ev == editor.EventRejected {
			out += bell
		}
	}
	_, err := io.WriteString(k.out, out)
	return err
}
