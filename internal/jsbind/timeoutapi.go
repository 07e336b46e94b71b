package jsbind

import (
	"time"

	"github.com/dop251/goja"

	"github.com/joeycumines/needjs/internal/asyncrt"
)

// bindTimeoutAPI installs setTimeout/clearTimeout on the global object.
func (e *Engine) bindTimeoutAPI() {
	global := e.vm.GlobalObject()
	if err := global.Set("setTimeout", e.setTimeout); err != nil {
		panic(err)
	}
	if err := global.Set("clearTimeout", e.clearTimeout); err != nil {
		panic(err)
	}
}

func (e *Engine) setTimeout(call goja.FunctionCall) goja.Value {
	fn := requireCallable(e.vm, call.Argument(0), "setTimeout")

	delayMs := call.Argument(1).ToInteger()
	if delayMs < 0 {
		delayMs = 0 // setTimeout(f, negative) clamps to zero
	}

	timers := e.rt.Timers()
	handle, cancel := timers.Allocate()
	e.rt.Enqueue(&asyncrt.SetTimeoutAction{
		Handle:   handle,
		Delay:    time.Duration(delayMs) * time.Millisecond,
		Cancel:   cancel,
		Timers:   timers,
		Callback: &callableCallback{vm: e.vm, fn: fn},
	})

	return e.vm.ToValue(handle)
}

func (e *Engine) clearTimeout(call goja.FunctionCall) goja.Value {
	arg := call.Argument(0)
	if goja.IsUndefined(arg) {
		return goja.Undefined()
	}
	handle := uint64(arg.ToInteger())
	e.rt.Timers().Cancel(handle)
	return goja.Undefined()
}
