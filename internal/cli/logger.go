package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Level tag colors
var (
	ColorInfo  = lipgloss.Color("#06B6D4") // Cyan
	ColorDebug = lipgloss.Color("#6B7280") // Gray
	ColorWarn  = lipgloss.Color("#F59E0B") // Amber
	ColorError = lipgloss.Color("#EF4444") // Red
)

type field struct {
	key   string
	value interface{}
}

// sink is the destination shared by a logger and everything derived from it
// with With.
type sink struct {
	mu     sync.Mutex
	out    io.Writer
	styles map[string]lipgloss.Style
}

func newSink(w io.Writer) *sink {
	// The renderer drops colors when w is not a terminal.
	r := lipgloss.NewRenderer(w)
	return &sink{
		out: w,
		styles: map[string]lipgloss.Style{
			"INFO":  r.NewStyle().Foreground(ColorInfo),
			"DEBUG": r.NewStyle().Foreground(ColorDebug),
			"WARN":  r.NewStyle().Foreground(ColorWarn).Bold(true),
			"ERROR": r.NewStyle().Foreground(ColorError).Bold(true),
		},
	}
}

// Logger provides leveled logging for CLI tools. Lines look like
//
//	[INFO] 15:04:05: message key=value
//
// Info is printed only in verbose mode and Debug only in debug mode.
type Logger struct {
	Verbose   bool
	DebugMode bool

	sink   *sink
	fields []field
	now    func() time.Time
}

// NewLogger creates a logger writing to stderr
func NewLogger(verbose, debug bool) *Logger {
	return &Logger{
		Verbose:   verbose,
		DebugMode: debug,
		sink:      newSink(os.Stderr),
		now:       time.Now,
	}
}

// SetOutput redirects the logger and every logger derived from it
func (l *Logger) SetOutput(w io.Writer) {
	fresh := newSink(w)
	l.sink.mu.Lock()
	l.sink.out, l.sink.styles = fresh.out, fresh.styles
	l.sink.mu.Unlock()
}

// With returns a logger that appends key=value to every line
func (l *Logger) With(key string, value interface{}) *Logger {
	child := *l
	child.fields = append(append([]field(nil), l.fields...), field{key, value})
	return &child
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.Verbose {
		l.log("INFO", format, args...)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.DebugMode {
		l.log("DEBUG", format, args...)
	}
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log("WARN", format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log("ERROR", format, args...)
}

func (l *Logger) log(level, format string, args ...interface{}) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(format, args...))
	for _, f := range l.fields {
		fmt.Fprintf(&b, " %s=%v", f.key, f.value)
	}

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	tag := l.sink.styles[level].Render("[" + level + "]")
	fmt.Fprintf(l.sink.out, "%s %s: %s\n", tag, l.now().Format("15:04:05"), b.String())
}
