// Package jsbind binds the asynchronous runtime core to the goja
// JavaScript engine: console, setTimeout/clearTimeout, require("node:fs"),
// require("node:fs/promises"), and a minimal CommonJS require() for
// script-relative modules.
package jsbind

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dop251/goja"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"

	"github.com/joeycumines/needjs/internal/asyncrt"
)

// Engine owns the goja runtime, the asynchronous runtime core, and the
// module cache, and wires the script-visible built-ins onto the global
// object.
type Engine struct {
	vm      *goja.Runtime
	rt      *asyncrt.Runtime
	stdoutW io.Writer
	stderrW io.Writer
	baseDir string
	log     *logiface.Logger[*stumpy.Event]

	modules map[string]*goja.Object
}

// NewEngine constructs an Engine and binds every script-visible built-in
// onto the global object.
func NewEngine(opts ...EngineOption) *Engine {
	cfg := resolveEngineOptions(opts)
	vm := goja.New()
	e := &Engine{
		vm:      vm,
		rt:      asyncrt.New(asyncrt.WithLogger(cfg.logger)),
		stdoutW: cfg.stdout,
		stderrW: cfg.stderr,
		baseDir: cfg.baseDir,
		log:     cfg.logger,
		modules: make(map[string]*goja.Object),
	}

	e.bindConsole(e.stdoutW, e.stderrW)
	e.bindTimeoutAPI()
	e.bindRequire()

	return e
}

// Runtime returns the underlying asynchronous runtime core.
func (e *Engine) Runtime() *asyncrt.Runtime { return e.rt }

// GojaRuntime returns the underlying goja runtime, for tests that need to
// drive the engine directly.
func (e *Engine) GojaRuntime() *goja.Runtime { return e.vm }

// RunSource compiles and evaluates src (named name for stack traces), then
// waits for every asynchronous action the script scheduled to drain before
// returning. The driver holds Hold for the full duration of evaluation, per
// the suspend-discipline model.
func (e *Engine) RunSource(name, src string) error {
	prg, err := goja.Compile(name, src, false)
	if err != nil {
		return fmt.Errorf("compile %s: %w", name, err)
	}

	hold := e.rt.Hold()
	hold.Lock()
	_, runErr := e.vm.RunProgram(prg)
	hold.Unlock()

	<-e.rt.Stop()

	return runErr
}

// RunFile loads path relative to the engine's base directory (or as an
// absolute path) and runs it via RunSource.
func (e *Engine) RunFile(path string) error {
	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(e.baseDir, resolved)
	}
	src, err := os.ReadFile(resolved)
	if err != nil {
		return fmt.Errorf("read %s: %w", resolved, err)
	}
	return e.RunSource(resolved, string(src))
}
