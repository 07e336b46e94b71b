package jsbind

import (
	"github.com/dop251/goja"

	"github.com/joeycumines/needjs/internal/asyncrt"
	"github.com/joeycumines/needjs/internal/format"
)

// promiseResolver adapts a goja native promise's resolve/reject pair to
// asyncrt.Resolver.
type promiseResolver struct {
	resolve func(any)
	reject  func(any)
}

func (p *promiseResolver) Resolve(value any) { p.resolve(value) }
func (p *promiseResolver) Reject(err error)  { p.reject(err) }

// callableCallback adapts a goja.Callable to asyncrt.Callback, converting
// Go-side arguments (strings, *asyncrt.RuntimeError, format.Null, nil) to
// goja.Value via the owning runtime.
type callableCallback struct {
	vm *goja.Runtime
	fn goja.Callable
}

func (c *callableCallback) Call(args ...any) error {
	gargs := make([]goja.Value, len(args))
	for i, a := range args {
		gargs[i] = toGojaValue(c.vm, a)
	}
	_, err := c.fn(goja.Undefined(), gargs...)
	return err
}

func toGojaValue(vm *goja.Runtime, v any) goja.Value {
	switch x := v.(type) {
	case nil:
		return goja.Undefined()
	case format.Null:
		return goja.Null()
	case error:
		return vm.ToValue(x.Error())
	default:
		return vm.ToValue(x)
	}
}

// fromGojaValue converts a goja.Value to a plain Go value suitable for
// internal/format.Log and for asyncrt action payloads, distinguishing
// JavaScript's null from undefined.
func fromGojaValue(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) {
		return nil
	}
	if goja.IsNull(v) {
		return format.Null{}
	}
	return v.Export()
}

// requireCallable extracts a goja.Callable from v, panicking with a
// script-visible TypeError if it is not callable.
func requireCallable(vm *goja.Runtime, v goja.Value, what string) goja.Callable {
	fn, ok := goja.AssertFunction(v)
	if !ok {
		panic(vm.NewTypeError("%s requires a function argument", what))
	}
	return fn
}

// compile-time interface assertions.
var (
	_ asyncrt.Resolver = (*promiseResolver)(nil)
	_ asyncrt.Callback = (*callableCallback)(nil)
)
