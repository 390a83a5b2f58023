//go:build windows

package server

import "syscall"

// controlReuseAddr is a no-op on Windows: SO_REUSEADDR has different (and
// looser) semantics there, and the restart-race window this guards against
// is POSIX-specific TIME_WAIT behavior.
func controlReuseAddr(_, _ string, _ syscall.RawConn) error {
	return nil
}
