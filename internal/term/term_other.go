//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !windows
// +build !linux,!darwin,!freebsd,!netbsd,!openbsd,!windows

package term

func isTerminal(fd uintptr) bool {
	return false
}
