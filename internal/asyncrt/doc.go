// Package asyncrt implements the asynchronous runtime core: the action
// queue and dispatcher, the suspend-discipline primitives that serialize
// script execution with asynchronous completions, the shutdown
// coordinator, the write-stream state machine, and the timer registry.
//
// # Architecture
//
// A [Runtime] owns a single FIFO [Action] queue drained by one dispatcher
// goroutine. Every non-stop action is run on its own goroutine, wrapped in
// a prologue/epilogue pair that accounts for in-flight work ([Runtime.enter],
// [Runtime.exit]) so the runtime can detect quiescence. Engine-visible
// effects (resolving a promise, invoking a callback) are only ever
// performed while holding the single process-wide exclusion token returned
// by [Runtime.Hold].
//
// # Engine boundary
//
// This package has no dependency on any particular JavaScript engine.
// Actions that need to settle a promise or invoke a script callback do so
// through the small [Resolver] and [Callback] interfaces, which the
// jsbind package implements against goja.
//
// # Thread Safety
//
// [Runtime.Enqueue] is safe to call from any goroutine. The dispatcher and
// every action goroutine coordinate exclusively through atomics and the
// single [Runtime.Hold] mutex; there is no other shared mutable state in
// this package besides what is described above and in [WriteStream] /
// [TimerRegistry], which carry their own locks.
package asyncrt
