package internal

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Options struct {
	// FileName is used as the prefix of every diagnostic.
	FileName string
	// Debug turns on the per node trace of every pass.
	Debug bool
	// Log receives progress and trace lines, nothing is printed when it is nil.
	Log io.Writer
}

// Context carries the state shared by the passes of one compilation.
type Context struct {
	Options
	classTable *SymbolTable
	// classes holds the root class followed by the classes of the compilation in declaration order.
	classes           []*ClassDecl
	intersectionCount int
	logger            *log.Logger
}

func NewContext(opts Options) *Context {
	return &Context{Options: opts, classTable: NewSymbolTable(), logger: newLogger(opts)}
}

// Class looks up a class or interface by name.
func (ctx *Context) Class(name string) *ClassDecl {
	cd, _ := ctx.classTable.Get(name).(*ClassDecl)
	return cd
}

func (ctx *Context) Classes() []*ClassDecl {
	return ctx.classes
}

func (ctx *Context) logf(format string, args ...interface{}) {
	ctx.logger.Infof(format, args...)
}

// tracef prints a line prefixed with the line of n, only in debug mode.
func (ctx *Context) tracef(n Node, format string, args ...interface{}) {
	if !ctx.logger.IsLevelEnabled(log.DebugLevel) {
		return
	}
	line := 0
	if n != nil {
		line = n.Line()
	}
	ctx.logger.WithField("line", line).Debugf(format, args...)
}

// newLogger logs progress at info level and the per node trace at debug level, into opts.Log.
func newLogger(opts Options) *log.Logger {
	logger := log.New()
	logger.SetOutput(logWriter(opts.Log))
	logger.SetFormatter(lineFormatter{})
	logger.SetLevel(log.InfoLevel)
	if opts.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// lineFormatter prints the bare message, prefixed with the source line when the entry has one.
type lineFormatter struct{}

func (lineFormatter) Format(entry *log.Entry) ([]byte, error) {
	if line, ok := entry.Data["line"]; ok {
		return []byte(fmt.Sprintf("%v:\t%s\n", line, entry.Message)), nil
	}
	return []byte(entry.Message + "\n"), nil
}

// Compile runs the semantic passes over comp in order, the first error stops the compilation.
// On success every expression of the tree carries its type and every name its declaration.
func Compile(comp *Compilation, opts Options) (*Context, error) {
	if opts.FileName == "" {
		opts.FileName = comp.FileName
	}
	ctx := NewContext(opts)
	ctx.logf("compiler: start declaration collector")
	err := collectDeclarations(ctx, comp)
	if err != nil {
		return ctx, err
	}
	ctx.logf("compiler: start name checker")
	err = checkNames(ctx)
	if err != nil {
		return ctx, err
	}
	ctx.logf("compiler: start type checker")
	err = checkTypes(ctx)
	if err != nil {
		return ctx, err
	}
	ctx.logf("compiler: start modifier checker")
	err = checkModifiers(ctx)
	if err != nil {
		return ctx, err
	}
	return ctx, nil
}

// CompileFile decodes the syntax tree stored at path and compiles it.
func CompileFile(path string, opts Options) (*Context, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	data, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	newLogger(opts).Debugf("compiler: start decoding %s", path)
	comp, err := DecodeCompilation(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	if comp.FileName == "" {
		comp.FileName = path
	}
	return Compile(comp, opts)
}

func logWriter(w io.Writer) io.Writer {
	if w == nil {
		return ioutil.Discard
	}
	return w
}
