// Package term reports whether file descriptors are attached to a terminal.
package term

// fder is implemented by *os.File.
type fder interface {
	Fd() uintptr
}

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd uintptr) bool {
	return isTerminal(fd)
}

// IsTerminalStream reports whether v is a file attached to a terminal. Pipes,
// buffers and other readers or writers are never terminals.
func IsTerminalStream(v any) bool {
	f, ok := v.(fder)
	if !ok {
		return false
	}
	return isTerminal(f.Fd())
}
