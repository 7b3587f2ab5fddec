// Package editor holds the state of a calculator display.
//
// An Editor is a small state machine with two states. In StateNormal the
// display holds an expression being typed or the last result; in
// StateErrorDisplayed it holds the marker "Error". Any Append or Clear leaves
// the error state, clearing the text first.
//
// Presentation concerns are reported as Events to registered Listeners, so
// a web page, a terminal or a test can render scrolling and the transient
// rejection pulse however it likes.
package editor
