package jsbind

import (
	"github.com/dop251/goja"

	"github.com/joeycumines/needjs/internal/asyncrt"
)

// newFSModule builds the require("node:fs") module object: { createWriteStream, constants }.
func (e *Engine) newFSModule() *goja.Object {
	obj := e.vm.NewObject()
	if err := obj.Set("createWriteStream", e.createWriteStream); err != nil {
		panic(err)
	}
	if err := obj.Set("constants", e.newConstantsObject()); err != nil {
		panic(err)
	}
	return obj
}

func (e *Engine) createWriteStream(call goja.FunctionCall) goja.Value {
	pathVal := call.Argument(0)
	if goja.IsUndefined(pathVal) {
		panic(e.vm.NewTypeError("createWriteStream requires a path argument"))
	}
	path := pathVal.String()

	stream := asyncrt.NewWriteStream(path)
	e.rt.Enqueue(&asyncrt.CreateWriteFileAction{Stream: stream})

	return e.newWriteStreamObject(stream)
}

// newWriteStreamObject wraps an *asyncrt.WriteStream as the script-visible
// stream with write(chunk), on(event, cb), and close().
func (e *Engine) newWriteStreamObject(stream *asyncrt.WriteStream) *goja.Object {
	obj := e.vm.NewObject()

	write := func(call goja.FunctionCall) goja.Value {
		chunk := call.Argument(0)
		var payload []byte
		if !goja.IsUndefined(chunk) {
			payload = []byte(chunk.String())
		}
		ticket := stream.BeginWrite()
		e.rt.Enqueue(&asyncrt.WriteFileAction{Stream: stream, Payload: payload, Ticket: ticket})
		return obj
	}

	on := func(call goja.FunctionCall) goja.Value {
		event := call.Argument(0).String()
		fn := requireCallable(e.vm, call.Argument(1), "on")
		cb := &callableCallback{vm: e.vm, fn: fn}
		switch event {
		case "finish":
			stream.OnFinish(cb)
		case "close":
			stream.OnClose(cb)
		case "error":
			stream.OnError(cb)
		default:
			panic(e.vm.NewTypeError("unsupported write-stream event %q", event))
		}
		return obj
	}

	closeFn := func(call goja.FunctionCall) goja.Value {
		e.rt.Enqueue(&asyncrt.CloseFileAction{Stream: stream})
		return goja.Undefined()
	}

	if err := obj.Set("write", write); err != nil {
		panic(err)
	}
	if err := obj.Set("on", on); err != nil {
		panic(err)
	}
	if err := obj.Set("close", closeFn); err != nil {
		panic(err)
	}
	return obj
}
