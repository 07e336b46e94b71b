// Command needjs runs a single JavaScript entry script against the
// asynchronous runtime: console, setTimeout/clearTimeout, require("node:fs"),
// require("node:fs/promises"), and a script-relative require().
package main

import (
	"fmt"
	"os"

	"github.com/joeycumines/stumpy"

	"github.com/joeycumines/needjs/internal/jsbind"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	script := "./index.js"
	if len(args) > 0 {
		script = args[0]
	}

	logger := stumpy.L.New(
		stumpy.L.WithStumpy(
			stumpy.WithWriter(os.Stderr),
		),
	)

	e := jsbind.NewEngine(
		jsbind.WithStdout(os.Stdout),
		jsbind.WithStderr(os.Stderr),
		jsbind.WithLogger(logger),
	)

	if err := e.RunFile(script); err != nil {
		fmt.Fprintln(os.Stdout, err)
		return 1
	}
	return 0
}
