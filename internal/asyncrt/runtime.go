package asyncrt

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// status mirrors the {Running, StopRequested, Stopping} lifecycle status.
type status int32

const (
	statusRunning status = iota
	statusStopRequested
	statusStopping
)

// Action is a tagged asynchronous request originated by a script callback.
// Run performs the action's I/O and its engine-visible critical section;
// implementations must acquire the Runtime's Hold for the section that
// touches engine state, and release it before returning.
type Action interface {
	Run(rt *Runtime)
}

// dismisser is implemented by actions that need to react to being
// dismissed (dropped without running) during shutdown. Most actions need
// no special handling here: Go's garbage collector reclaims whatever
// closures and engine handles the action was holding once it is dropped.
type dismisser interface {
	Dismiss()
}

// Runtime is the process-wide asynchronous runtime: the action queue and
// dispatcher, the hold/pending/balance/status/notify suspend-discipline
// primitives, the timer registry, and the logger used for diagnostics.
type Runtime struct {
	hold    sync.Mutex
	pending atomic.Uint64
	balance atomic.Int64
	st      atomic.Int32
	notify  chan struct{}

	queue        *actionQueue
	dispatchOnce sync.Once

	timers *TimerRegistry
	log    *logiface.Logger[*stumpy.Event]
}

// New constructs a Runtime. The dispatcher goroutine is started lazily, on
// the first Enqueue, matching "on first use the dispatcher task is
// spawned".
func New(opts ...Option) *Runtime {
	cfg := resolveOptions(opts)
	rt := &Runtime{
		notify: make(chan struct{}, 1),
		queue:  newActionQueue(),
		timers: NewTimerRegistry(),
		log:    cfg.logger,
	}
	rt.pending.Store(1) // the driver slot
	return rt
}

// Hold returns the process-wide exclusion token. The driver must hold it
// for the full duration of script evaluation; action handlers acquire it
// only for the critical section that touches engine state.
func (rt *Runtime) Hold() *sync.Mutex { return &rt.hold }

// Timers returns the runtime's timer registry.
func (rt *Runtime) Timers() *TimerRegistry { return rt.timers }

// Logger returns the configured structured logger, or nil if logging is
// disabled.
func (rt *Runtime) Logger() *logiface.Logger[*stumpy.Event] { return rt.log }

func (rt *Runtime) ensureDispatcher() {
	rt.dispatchOnce.Do(func() { go rt.dispatch() })
}

// Enqueue places a on the action queue. It is non-blocking, totally
// ordered by the calling goroutine, and increments the in-flight balance
// before the action is visible to the dispatcher, per the enqueue
// contract: failing that ordering would permit a spurious empty-queue
// reading that terminates the process prematurely.
func (rt *Runtime) Enqueue(a Action) {
	rt.ensureDispatcher()
	rt.balance.Add(1)
	rt.queue.push(a)
}

func (rt *Runtime) dispatch() {
	for {
		a := rt.queue.pop()
		if s, ok := a.(*stopAction); ok {
			rt.handleStop(s)
			continue
		}
		go rt.runAction(a)
	}
}

// runAction wraps a single action in the prologue/epilogue pair described
// by the lifecycle coordinator.
func (rt *Runtime) runAction(a Action) {
	if !rt.enter() {
		rt.dismiss(a)
		return
	}
	a.Run(rt)
	rt.exit()
}

// enter implements prologue steps 1-2: dismiss if pending has already
// reached zero, otherwise CAS pending from its observed value to
// observed+1, retrying on CAS failure.
func (rt *Runtime) enter() bool {
	for {
		p := rt.pending.Load()
		if p == 0 {
			return false
		}
		if rt.pending.CompareAndSwap(p, p+1) {
			return true
		}
	}
}

// exit implements prologue step 4: decrement pending and balance, then wake
// the notify signal. The final pending 1->0 transition belongs exclusively
// to the shutdown watcher (see watch): an action's own epilogue cannot
// tell the difference between "no work remains" and "this action's
// critical section just enqueued fresh work" (balance rising again for a
// new action looks, at this point, identical to balance settling at 1 for
// an unrelated reason). Declaring termination here raced a nested
// setTimeout's own enqueue and could drop it on the floor and wedge the
// watcher forever; only the watcher, which re-reads balance after every
// wake, can tell the two apart.
func (rt *Runtime) exit() {
	rt.pending.Add(^uint64(0)) // -1
	rt.balance.Add(-1)
	rt.wake()
}

func (rt *Runtime) wake() {
	select {
	case rt.notify <- struct{}{}:
	default:
	}
}

func (rt *Runtime) awaitWake() {
	<-rt.notify
}

// dismiss drops an action without invoking the engine: shutdown has
// already committed, and the engine context may be gone. It still has to
// release the action's balance credit and wake the watcher — balance was
// incremented at enqueue time for this action same as any other, and a
// watcher blocked in the balance>0 branch would otherwise wait forever for
// a decrement that never arrives.
func (rt *Runtime) dismiss(a Action) {
	if d, ok := a.(dismisser); ok {
		d.Dismiss()
	}
	rt.balance.Add(-1)
	rt.wake()
	if rt.log != nil {
		rt.log.Debug().Log("action dismissed after shutdown")
	}
}

// stopAction carries the channel closed once the runtime has quiesced.
type stopAction struct {
	done chan struct{}
}

func (rt *Runtime) enqueueStop(done chan struct{}) {
	rt.ensureDispatcher()
	rt.balance.Add(1)
	rt.queue.push(&stopAction{done: done})
}

// Stop requests an orderly shutdown: the runtime will quiesce once every
// in-flight and already-enqueued action has completed, and no earlier than
// that. The returned channel is closed when it is safe to tear down the
// engine context.
func (rt *Runtime) Stop() <-chan struct{} {
	done := make(chan struct{})
	rt.enqueueStop(done)
	return done
}

func (rt *Runtime) handleStop(s *stopAction) {
	rt.st.Store(int32(statusStopRequested))
	rt.balance.Add(-1)
	if rt.log != nil {
		rt.log.Debug().Log("shutdown requested")
	}
	go rt.watch(s.done)
}

// watch implements the shutdown watcher: await quiescence of
// already-enqueued actions, then attempt to claim the final pending slot.
// If another action is still mid-flight when the claim fails, it yields by
// re-enqueueing a fresh Stop rather than spinning in place.
func (rt *Runtime) watch(done chan struct{}) {
	for {
		if rt.balance.Load() > 0 {
			rt.awaitWake()
			continue
		}
		if rt.pending.CompareAndSwap(1, 0) {
			rt.st.Store(int32(statusStopping))
			if rt.log != nil {
				rt.log.Debug().Log("shutdown complete")
			}
			close(done)
			return
		}
		rt.awaitWake()
		rt.enqueueStop(done)
		return
	}
}

// fatalf reports a host-fatal error — an engine-integration invariant
// violation, never a script error — and terminates the process. There is
// no recovery path: a host bug at this layer means engine state may
// already be inconsistent.
func (rt *Runtime) fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if rt.log != nil {
		rt.log.Crit().Str("reason", msg).Log("host-fatal error")
	} else {
		fmt.Fprintln(os.Stderr, "fatal:", msg)
	}
	os.Exit(2)
}

// logCallbackError reports a non-fatal failure from a script callback
// invoked by an action handler (a timer firing, or a write-stream event).
func (rt *Runtime) logCallbackError(source string, err error) {
	if rt.log == nil || err == nil {
		return
	}
	rt.log.Warning().Str("source", source).Err(err).Log("script callback failed")
}

// logIOError reports an I/O failure that has no registered callback to
// receive it.
func (rt *Runtime) logIOError(path string, err error) {
	if rt.log == nil || err == nil {
		return
	}
	rt.log.Warning().Str("path", path).Err(err).Log("unhandled stream I/O error")
}
