package jsbind

import (
	"fmt"
	"io"

	"github.com/dop251/goja"

	"github.com/joeycumines/needjs/internal/format"
)

// bindConsole installs console.log/console.error on the global object, and
// the new console.Console(stdout, stderr) constructor that redirects both
// streams. stdout/stderr must already be non-nil.
func (e *Engine) bindConsole(stdout, stderr io.Writer) {
	global := e.vm.GlobalObject()

	consoleObj := e.newConsoleObject(stdout, stderr)
	if err := global.Set("console", consoleObj); err != nil {
		panic(err)
	}

	ctor := e.vm.ToValue(func(call goja.ConstructorCall) *goja.Object {
		out := e.writerArg(call.Argument(0), e.stdoutW)
		errw := e.writerArg(call.Argument(1), e.stderrW)
		obj := e.newConsoleObject(out, errw)
		return obj
	})
	if err := consoleObj.Set("Console", ctor); err != nil {
		panic(err)
	}
}

// writerArg resolves an optional fs.createWriteStream-backed argument (or
// any object exposing a write(chunk) method) into an io.Writer, falling
// back to def when arg is undefined.
func (e *Engine) writerArg(arg goja.Value, def io.Writer) io.Writer {
	if arg == nil || goja.IsUndefined(arg) || goja.IsNull(arg) {
		return def
	}
	obj, ok := arg.(*goja.Object)
	if !ok {
		return def
	}
	writeVal := obj.Get("write")
	fn, ok := goja.AssertFunction(writeVal)
	if !ok {
		return def
	}
	return &callableWriter{vm: e.vm, fn: fn, this: obj}
}

type callableWriter struct {
	vm   *goja.Runtime
	fn   goja.Callable
	this *goja.Object
}

func (w *callableWriter) Write(p []byte) (int, error) {
	if _, err := w.fn(w.this, w.vm.ToValue(string(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (e *Engine) newConsoleObject(stdout, stderr io.Writer) *goja.Object {
	obj := e.vm.NewObject()
	logFn := func(w io.Writer) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			args := make([]any, len(call.Arguments))
			for i, a := range call.Arguments {
				args[i] = fromGojaValue(a)
			}
			fmt.Fprintln(w, format.Log(args))
			return goja.Undefined()
		}
	}
	if err := obj.Set("log", logFn(stdout)); err != nil {
		panic(err)
	}
	if err := obj.Set("error", logFn(stderr)); err != nil {
		panic(err)
	}
	return obj
}
