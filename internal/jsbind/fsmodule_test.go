package jsbind

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteStreamEmitsCloseAfterFinish(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "close-order.txt")

	var stdout, stderr bytes.Buffer
	e := NewEngine(WithStdout(&stdout), WithStderr(&stderr), WithBaseDir(dir))

	err := runWithTimeout(t, func() error {
		return e.RunSource("order.js", `
			var fs = require("node:fs");
			var events = [];
			var stream = fs.createWriteStream(`+"`"+target+"`"+`);
			stream.on("finish", function() { events.push("finish"); });
			stream.on("close", function() {
				events.push("close");
				console.log(events.join(","));
			});
			stream.write("x");
			stream.close();
		`)
	})
	require.NoError(t, err)
	require.Equal(t, "finish,close\n", stdout.String())
}

func TestWriteStreamErrorEventFiresOnIOFailure(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "no-such-subdir", "out.txt")

	var stdout, stderr bytes.Buffer
	e := NewEngine(WithStdout(&stdout), WithStderr(&stderr), WithBaseDir(dir))

	err := runWithTimeout(t, func() error {
		return e.RunSource("errevent.js", `
			var fs = require("node:fs");
			var stream = fs.createWriteStream(`+"`"+target+"`"+`);
			stream.on("error", function(err) { console.log("error", err); });
		`)
	})
	require.NoError(t, err)
	require.Contains(t, stdout.String(), "error")
}

func TestCreateWriteStreamRequiresPathArgument(t *testing.T) {
	var stdout, stderr bytes.Buffer
	e := newTestEngine(t, &stdout, &stderr)

	err := runWithTimeout(t, func() error {
		return e.RunSource("badstream.js", `
			var fs = require("node:fs");
			fs.createWriteStream();
		`)
	})
	require.Error(t, err)
}

func TestFSConstantsExposedOnModule(t *testing.T) {
	var stdout, stderr bytes.Buffer
	e := newTestEngine(t, &stdout, &stderr)

	err := runWithTimeout(t, func() error {
		return e.RunSource("consts.js", `
			var fs = require("node:fs");
			console.log(fs.constants.O_RDONLY, fs.constants.O_CREAT);
		`)
	})
	require.NoError(t, err)
	require.Equal(t, "0 64\n", stdout.String())
}
