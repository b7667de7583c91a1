package internal

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Diagnostic is a user facing semantic error. Notes are extra lines printed below the message, like the
// candidates of a failed overload resolution.
type Diagnostic struct {
	File    string
	Line    int
	Message string
	Notes   []string
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	if d.Line > 0 {
		fmt.Fprintf(&b, "%s:%d: %s", d.File, d.Line, d.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s", d.File, d.Message)
	}
	for _, note := range d.Notes {
		b.WriteString("\n")
		b.WriteString(note)
	}
	return b.String()
}

// AsDiagnostic unwraps err to the diagnostic it carries.
func AsDiagnostic(err error) (*Diagnostic, bool) {
	d, ok := errors.Cause(err).(*Diagnostic)
	return d, ok
}

func (ctx *Context) makeSemanticError(n Node, format string, msg ...interface{}) error {
	return ctx.makeSemanticErrorWithNotes(n, nil, format, msg...)
}

func (ctx *Context) makeSemanticErrorWithNotes(n Node, notes []string, format string, msg ...interface{}) error {
	d := &Diagnostic{File: ctx.FileName, Message: fmt.Sprintf(format, msg...), Notes: notes}
	if n != nil {
		d.Line = n.Line()
	}
	return errors.WithStack(d)
}

// redefinitionError turns a failed symbol table insertion into a diagnostic at n.
func (ctx *Context) redefinitionError(n Node, err error) error {
	return ctx.makeSemanticError(n, "%s", err.Error())
}
