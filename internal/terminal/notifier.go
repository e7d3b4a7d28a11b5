package terminal

import (
	"fmt"
	"io"
)

// notifier prints checkout notifications inline with the register prompt,
// taking the place of the toast popups a graphical surface would show.
type notifier struct {
	out io.Writer
}

func (n *notifier) Success(msg string) {
	fmt.Fprintf(n.out, "[ok] %s\n", msg)
}

func (n *notifier) Error(msg string) {
	fmt.Fprintf(n.out, "[error] %s\n", msg)
}
