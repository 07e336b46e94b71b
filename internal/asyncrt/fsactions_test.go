package asyncrt

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccessFileWithModeRequiresAllRequestedBits(t *testing.T) {
	path := t.TempDir() + "/perm.txt"
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o400)) // owner read-only

	rt := New()
	res := newFakeResolver()
	// owner can read (R_OK) but not write (W_OK): requesting both must
	// reject, proving the bits are ANDed rather than ORed.
	rt.Enqueue(&AccessFileWithModeAction{Path: path, Mode: AccessROK | AccessWOK, Result: res})

	select {
	case v := <-res.resolved:
		t.Fatalf("unexpected resolve for insufficient permissions: %v", v)
	case <-res.rejected:
	}
}

func TestAccessFileWithModeResolvesWhenSatisfied(t *testing.T) {
	path := t.TempDir() + "/perm.txt"
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	rt := New()
	res := newFakeResolver()
	rt.Enqueue(&AccessFileWithModeAction{Path: path, Mode: AccessROK | AccessWOK, Result: res})

	select {
	case <-res.resolved:
	case err := <-res.rejected:
		t.Fatalf("unexpected rejection: %v", err)
	}
}

func TestAccessFileResolvesForExistingFile(t *testing.T) {
	path := t.TempDir() + "/exists.txt"
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	rt := New()
	res := newFakeResolver()
	rt.Enqueue(&AccessFileAction{Path: path, Result: res})

	select {
	case <-res.resolved:
	case err := <-res.rejected:
		t.Fatalf("unexpected rejection: %v", err)
	}
}

func TestAccessFileRejectsForMissingFile(t *testing.T) {
	rt := New()
	res := newFakeResolver()
	rt.Enqueue(&AccessFileAction{Path: "/does/not/exist", Result: res})

	select {
	case v := <-res.resolved:
		t.Fatalf("unexpected resolve: %v", v)
	case <-res.rejected:
	}
}
