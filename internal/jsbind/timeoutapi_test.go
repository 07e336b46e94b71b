package jsbind

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetTimeoutReturnsNumericHandle(t *testing.T) {
	var stdout, stderr bytes.Buffer
	e := newTestEngine(t, &stdout, &stderr)

	err := runWithTimeout(t, func() error {
		return e.RunSource("handle.js", `
			var h = setTimeout(function() {}, 0);
			console.log(typeof h);
		`)
	})
	require.NoError(t, err)
	require.Equal(t, "number\n", stdout.String())
}

func TestSetTimeoutNegativeDelayClampsToZero(t *testing.T) {
	var stdout, stderr bytes.Buffer
	e := newTestEngine(t, &stdout, &stderr)

	err := runWithTimeout(t, func() error {
		return e.RunSource("negative.js", `
			setTimeout(function() { console.log("fired"); }, -100);
		`)
	})
	require.NoError(t, err)
	require.Equal(t, "fired\n", stdout.String())
}

func TestClearTimeoutWithUndefinedHandleIsNoOp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	e := newTestEngine(t, &stdout, &stderr)

	err := runWithTimeout(t, func() error {
		return e.RunSource("noop.js", `
			clearTimeout(undefined);
			console.log("survived");
		`)
	})
	require.NoError(t, err)
	require.Equal(t, "survived\n", stdout.String())
}

func TestSetTimeoutRequiresFunctionArgument(t *testing.T) {
	var stdout, stderr bytes.Buffer
	e := newTestEngine(t, &stdout, &stderr)

	err := runWithTimeout(t, func() error {
		return e.RunSource("bad.js", `setTimeout("not a function", 0);`)
	})
	require.Error(t, err)
}
