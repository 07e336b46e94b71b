package jsbind

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsoleErrorWritesToStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	e := newTestEngine(t, &stdout, &stderr)

	err := runWithTimeout(t, func() error {
		return e.RunSource("err.js", `console.error("oops", 1, 2);`)
	})
	require.NoError(t, err)
	require.Empty(t, stdout.String())
	require.Equal(t, "oops 1 2\n", stderr.String())
}

func TestConsoleConstructorRedirectsStreams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	e := newTestEngine(t, &stdout, &stderr)

	err := runWithTimeout(t, func() error {
		return e.RunSource("custom.js", `
			var fs = require("node:fs");
			var stream = fs.createWriteStream(`+"`"+t.TempDir()+"/redirect.txt"+"`"+`);
			var custom = new console.Console(stream);
			custom.log("to stream, not stdout");
		`)
	})
	require.NoError(t, err)
	require.Empty(t, stdout.String())
}

func TestConsoleLogFormatsMultipleArguments(t *testing.T) {
	var stdout, stderr bytes.Buffer
	e := newTestEngine(t, &stdout, &stderr)

	err := runWithTimeout(t, func() error {
		return e.RunSource("fmt.js", `console.log("count: %d", 42);`)
	})
	require.NoError(t, err)
	require.Equal(t, "count: 42\n", stdout.String())
}
