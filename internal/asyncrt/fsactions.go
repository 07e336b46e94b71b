package asyncrt

import (
	"os"
	"syscall"
)

// Access-mode bits, matching the values fs.constants / fsPromises.constants
// expose to script (F_OK=0, R_OK=4, W_OK=2, X_OK=1).
const (
	AccessFOK uint8 = 0
	AccessROK uint8 = 4
	AccessWOK uint8 = 2
	AccessXOK uint8 = 1
)

// OpenFileAction reads the whole file into memory and resolves the promise
// with its text, or rejects with a FileOpenError.
type OpenFileAction struct {
	Path   string
	Result Resolver
}

func (a *OpenFileAction) Run(rt *Runtime) {
	data, err := os.ReadFile(a.Path)
	rt.hold.Lock()
	defer rt.hold.Unlock()
	if err != nil {
		a.Result.Reject(&RuntimeError{Kind: KindFileOpenError, Path: a.Path, Cause: err})
		return
	}
	a.Result.Resolve(string(data))
}

func (a *OpenFileAction) Dismiss() {}

// AccessFileAction attempts to open the file, resolving on success and
// rejecting on any error (no existence, no permission, and so on).
type AccessFileAction struct {
	Path   string
	Result Resolver
}

func (a *AccessFileAction) Run(rt *Runtime) {
	f, err := os.Open(a.Path)
	if err == nil {
		_ = f.Close()
	}
	rt.hold.Lock()
	defer rt.hold.Unlock()
	if err != nil {
		a.Result.Reject(&RuntimeError{Kind: KindFileOpenError, Path: a.Path, Cause: err})
		return
	}
	a.Result.Resolve(nil)
}

func (a *AccessFileAction) Dismiss() {}

// AccessFileWithModeAction evaluates the requested combination of R/W/X
// bits against owner/group/other permissions, using the process's
// effective UID and GID. All requested bits must be satisfied for the
// promise to resolve.
type AccessFileWithModeAction struct {
	Path   string
	Mode   uint8
	Result Resolver
}

func (a *AccessFileWithModeAction) Run(rt *Runtime) {
	info, err := os.Stat(a.Path)
	ok := err == nil && evaluateAccessMode(info, a.Mode)
	rt.hold.Lock()
	defer rt.hold.Unlock()
	if err != nil {
		a.Result.Reject(&RuntimeError{Kind: KindFileOpenError, Path: a.Path, Cause: err})
		return
	}
	if !ok {
		a.Result.Reject(&RuntimeError{Kind: KindFileOpenError, Path: a.Path})
		return
	}
	a.Result.Resolve(nil)
}

func (a *AccessFileWithModeAction) Dismiss() {}

// evaluateAccessMode checks mode (a combination of AccessROK/WOK/XOK)
// against info's owner/group/other permission bits, selecting the bit
// group by comparing the process's effective UID/GID against the file's
// owner/group. Every requested bit must be satisfied (logical AND); this
// corrects an inconsistency in the design this runtime was adapted from,
// which evaluated the bits with logical OR.
func evaluateAccessMode(info os.FileInfo, mode uint8) bool {
	if mode == AccessFOK {
		return true
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return evaluateAccessModePortable(info.Mode(), mode)
	}
	uid := uint32(syscall.Geteuid())
	gid := uint32(syscall.Getegid())
	var bits uint32
	switch {
	case uid == stat.Uid:
		bits = (uint32(stat.Mode) >> 6) & 0o7
	case gid == stat.Gid:
		bits = (uint32(stat.Mode) >> 3) & 0o7
	default:
		bits = uint32(stat.Mode) & 0o7
	}
	want := uint32(0)
	if mode&AccessROK != 0 {
		want |= 0o4
	}
	if mode&AccessWOK != 0 {
		want |= 0o2
	}
	if mode&AccessXOK != 0 {
		want |= 0o1
	}
	return bits&want == want
}

// evaluateAccessModePortable is the degrade path for platforms whose
// os.FileInfo.Sys() does not expose a *syscall.Stat_t (Windows); it falls
// back to Go's portable FileMode, checked against owner bits only.
func evaluateAccessModePortable(m os.FileMode, mode uint8) bool {
	perm := uint32(m.Perm())
	want := uint32(0)
	if mode&AccessROK != 0 {
		want |= 0o400
	}
	if mode&AccessWOK != 0 {
		want |= 0o200
	}
	if mode&AccessXOK != 0 {
		want |= 0o100
	}
	return perm&want == want
}
