package jsbind

import (
	"github.com/dop251/goja"

	"github.com/joeycumines/needjs/internal/asyncrt"
)

// newFSPromisesModule builds the require("node:fs/promises") module
// object: { open, access, constants }.
func (e *Engine) newFSPromisesModule() *goja.Object {
	obj := e.vm.NewObject()
	if err := obj.Set("open", e.fsPromisesOpen); err != nil {
		panic(err)
	}
	if err := obj.Set("access", e.fsPromisesAccess); err != nil {
		panic(err)
	}
	if err := obj.Set("constants", e.newConstantsObject()); err != nil {
		panic(err)
	}
	return obj
}

func (e *Engine) fsPromisesOpen(call goja.FunctionCall) goja.Value {
	pathVal := call.Argument(0)
	if goja.IsUndefined(pathVal) {
		panic(e.vm.NewTypeError("open requires a path argument"))
	}
	path := pathVal.String()

	promise, resolve, reject := e.vm.NewPromise()
	e.rt.Enqueue(&asyncrt.OpenFileAction{
		Path:   path,
		Result: &promiseResolver{resolve: resolve, reject: reject},
	})
	return e.vm.ToValue(promise)
}

func (e *Engine) fsPromisesAccess(call goja.FunctionCall) goja.Value {
	pathVal := call.Argument(0)
	if goja.IsUndefined(pathVal) {
		panic(e.vm.NewTypeError("access requires a path argument"))
	}
	path := pathVal.String()

	promise, resolve, reject := e.vm.NewPromise()
	modeArg := call.Argument(1)
	result := &promiseResolver{resolve: resolve, reject: reject}

	if goja.IsUndefined(modeArg) {
		e.rt.Enqueue(&asyncrt.AccessFileAction{Path: path, Result: result})
	} else {
		mode := uint8(modeArg.ToInteger())
		e.rt.Enqueue(&asyncrt.AccessFileWithModeAction{Path: path, Mode: mode, Result: result})
	}

	return e.vm.ToValue(promise)
}
