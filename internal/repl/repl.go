// Package repl implements the interactive read-parse-print loop. Each input
// line is tokenized or parsed on its own and the result is printed back.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lpp-lang/lpp/internal/ast"
	"github.com/lpp-lang/lpp/internal/cli"
	"github.com/lpp-lang/lpp/internal/format"
	"github.com/lpp-lang/lpp/internal/i18n"
	"github.com/lpp-lang/lpp/internal/lexer"
	"github.com/lpp-lang/lpp/internal/parser"
)

// Mode selects what is printed for an input line
type Mode int

const (
	// ModeTokens prints every token of the line
	ModeTokens Mode = iota
	// ModeAST parses the line and renders the program
	ModeAST
)

func (m Mode) String() string {
	if m == ModeAST {
		return "ast"
	}
	return "tokens"
}

// DefaultMaxHistory is the history size used when Options.MaxHistory is zero
const DefaultMaxHistory = 1000

// Options configures a REPL
type Options struct {
	Prompt      string
	HistoryFile string // empty disables persistent history
	// MaxHistory caps the recorded lines. Zero means DefaultMaxHistory and a
	// negative value disables history.
	MaxHistory int
	Mode       Mode
	Output     format.Kind
	Catalog    *i18n.Catalog
	Debug      bool
	// Interactive shows the banner and prompts
	Interactive bool
}

// REPL is a read-parse-print loop over an input and an output stream
type REPL struct {
	opts    Options
	scanner *bufio.Scanner
	out     io.Writer
	history []string
	styles  styles
}

type styles struct {
	prompt lipgloss.Style
	result lipgloss.Style
	err    lipgloss.Style
	hint   lipgloss.Style
	muted  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		prompt: r.NewStyle().Foreground(lipgloss.Color("#8B5CF6")).Bold(true), // Violet
		result: r.NewStyle().Foreground(lipgloss.Color("#10B981")),            // Emerald
		err:    r.NewStyle().Foreground(lipgloss.Color("#EF4444")),            // Red
		hint:   r.NewStyle().Foreground(lipgloss.Color("#F59E0B")),            // Amber
		muted:  r.NewStyle().Foreground(lipgloss.Color("#6B7280")),            // Gray
	}
}

// New creates a REPL reading lines from in and writing to out
func New(in io.Reader, out io.Writer, opts Options) *REPL {
	if opts.Prompt == "" {
		opts.Prompt = ">> "
	}
	if opts.Output == "" {
		opts.Output = format.KindTree
	}
	if opts.Catalog == nil {
		opts.Catalog = i18n.Default()
	}
	if opts.MaxHistory == 0 {
		opts.MaxHistory = DefaultMaxHistory
	}

	return &REPL{
		opts:    opts,
		scanner: bufio.NewScanner(in),
		out:     out,
		history: make([]string, 0),
		styles:  newStyles(out),
	}
}

// Mode returns the current mode
func (r *REPL) Mode() Mode {
	return r.opts.Mode
}

// History returns the recorded input lines, oldest first
func (r *REPL) History() []string {
	return r.history
}

// PrintWelcome prints the banner
func (r *REPL) PrintWelcome() {
	info := cli.GetVersionInfo()
	fmt.Fprintf(r.out, "lpp v%s\n", info.Version)
	fmt.Fprintln(r.out, r.styles.muted.Render("Escribe :help para ver los comandos, :quit para salir"))
	fmt.Fprintln(r.out)
}

// Run reads lines until the input ends, :quit is entered or ctx is done.
// History is saved on return. Lines are scanned on a separate goroutine so
// that cancelling ctx does not wait for input; history is only touched here.
func (r *REPL) Run(ctx context.Context) error {
	if ctx.Err() != nil {
		return r.SaveHistory()
	}
	if r.opts.Interactive {
		r.PrintWelcome()
	}

	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		for r.scanner.Scan() {
			select {
			case lines <- r.scanner.Text():
			case <-done:
				return
			}
		}
	}()

	for {
		if r.opts.Interactive {
			fmt.Fprint(r.out, r.styles.prompt.Render(r.opts.Prompt))
		}

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			return r.SaveHistory()
		case line, ok = <-lines:
		}
		if !ok {
			// the scanner goroutine has finished, so its error is safe to read
			if err := r.scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return r.SaveHistory()
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.AddToHistory(line)

		if strings.HasPrefix(line, ":") {
			if r.HandleCommand(line) {
				return r.SaveHistory()
			}
			continue
		}

		r.Evaluate(line)
	}
}

// HandleCommand runs a `:command` line and reports whether the REPL should exit
func (r *REPL) HandleCommand(cmd string) bool {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return false
	}

	switch parts[0] {
	case ":help", ":h":
		r.PrintHelp()
	case ":quit", ":q", ":exit":
		fmt.Fprintln(r.out, "¡Hasta luego!")
		return true
	case ":clear", ":c":
		fmt.Fprint(r.out, "\033[2J\033[H")
	case ":tokens":
		r.opts.Mode = ModeTokens
		fmt.Fprintln(r.out, "Modo: tokens")
	case ":ast":
		r.opts.Mode = ModeAST
		if len(parts) > 1 {
			kind, err := format.ParseKind(parts[1])
			if err != nil {
				r.printError(err.Error())
				return false
			}
			r.opts.Output = kind
		}
		fmt.Fprintf(r.out, "Modo: ast (%s)\n", r.opts.Output)
	case ":load":
		if len(parts) < 2 {
			fmt.Fprintln(r.out, "Uso: :load <archivo>")
		} else if err := r.LoadFile(parts[1]); err != nil {
			r.printError(err.Error())
		}
	case ":save":
		if len(parts) < 2 {
			fmt.Fprintln(r.out, "Uso: :save <archivo>")
		} else if err := r.SaveSession(parts[1]); err != nil {
			r.printError(err.Error())
		}
	case ":history":
		r.ShowHistory()
	case ":debug":
		if len(parts) < 2 {
			fmt.Fprintf(r.out, "Depuración: %v\n", r.opts.Debug)
			break
		}
		switch parts[1] {
		case "on", "true", "1":
			r.opts.Debug = true
			fmt.Fprintln(r.out, "Depuración activada")
		case "off", "false", "0":
			r.opts.Debug = false
			fmt.Fprintln(r.out, "Depuración desactivada")
		default:
			fmt.Fprintln(r.out, "Uso: :debug on|off")
		}
	default:
		r.printError(fmt.Sprintf("Comando desconocido: %s", parts[0]))
		fmt.Fprintln(r.out, "Escribe :help para ver los comandos disponibles")
	}

	return false
}

// PrintHelp lists the REPL commands
func (r *REPL) PrintHelp() {
	fmt.Fprintln(r.out, "Comandos:")
	fmt.Fprintln(r.out, "  :help, :h            Muestra esta ayuda")
	fmt.Fprintln(r.out, "  :quit, :q, :exit     Sale del REPL")
	fmt.Fprintln(r.out, "  :clear, :c           Limpia la pantalla")
	fmt.Fprintln(r.out, "  :tokens              Muestra los tokens de cada línea")
	fmt.Fprintln(r.out, "  :ast [formato]       Analiza cada línea (tree, json, yaml, dump, string)")
	fmt.Fprintln(r.out, "  :load <archivo>      Analiza un archivo")
	fmt.Fprintln(r.out, "  :save <archivo>      Guarda la sesión")
	fmt.Fprintln(r.out, "  :history             Muestra el historial")
	fmt.Fprintln(r.out, "  :debug on|off        Volcado de estructuras internas")
}

// Evaluate tokenizes or parses input according to the current mode and
// prints the result.
func (r *REPL) Evaluate(input string) {
	if r.opts.Mode == ModeTokens {
		r.printTokens(input)
		return
	}

	program, p := r.parse(input, "")
	r.printProgram(program, p)
}

func (r *REPL) printTokens(input string) {
	tokens := lexer.New(input).Tokens()
	for _, tok := range tokens {
		if tok.Type == lexer.EOF {
			break
		}
		fmt.Fprintln(r.out, tok)
	}
	if r.opts.Debug {
		fmt.Fprint(r.out, paint(r.styles.muted, format.Dump(tokens)))
	}
}

func (r *REPL) parse(input, filename string) (*ast.Program, *parser.Parser) {
	p := parser.New(lexer.New(input), parser.WithCatalog(r.opts.Catalog), parser.WithFilename(filename))
	return p.ParseProgram(), p
}

func (r *REPL) printProgram(program *ast.Program, p *parser.Parser) {
	for _, s := range p.Suggestions() {
		fmt.Fprintln(r.out, r.styles.hint.Render(fmt.Sprintf("%s: %s", s.Position, s.Message)))
	}

	if diags := p.Diagnostics(); len(diags) > 0 {
		for _, d := range diags {
			r.printError(d.Error())
		}
		return
	}

	var buf strings.Builder
	if err := format.Render(&buf, program, r.opts.Output); err != nil {
		r.printError(err.Error())
		return
	}
	fmt.Fprint(r.out, paint(r.styles.result, buf.String()))

	if r.opts.Debug {
		fmt.Fprint(r.out, paint(r.styles.muted, format.Dump(program)))
	}
}

// paint styles text line by line; rendering a block at once would pad every
// line to the widest one.
func paint(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (r *REPL) printError(msg string) {
	fmt.Fprintln(r.out, r.styles.err.Render("Error: "+msg))
}

// LoadFile parses a whole file and prints the result
func (r *REPL) LoadFile(filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	program, p := r.parse(string(content), filename)
	r.printProgram(program, p)
	return nil
}

// SaveSession writes the history to filename
func (r *REPL) SaveSession(filename string) error {
	content := strings.Join(r.history, "\n") + "\n"
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return err
	}

	fmt.Fprintf(r.out, "Sesión guardada en: %s\n", filename)
	return nil
}

// AddToHistory records line, dropping the oldest entries beyond MaxHistory
func (r *REPL) AddToHistory(line string) {
	if r.opts.MaxHistory < 0 {
		return
	}
	r.history = append(r.history, line)
	if len(r.history) > r.opts.MaxHistory {
		r.history = r.history[len(r.history)-r.opts.MaxHistory:]
	}
}

// ShowHistory prints the recorded lines
func (r *REPL) ShowHistory() {
	if len(r.history) == 0 {
		fmt.Fprintln(r.out, "Sin historial")
		return
	}

	fmt.Fprintln(r.out, "Historial:")
	for i, cmd := range r.history {
		fmt.Fprintf(r.out, "%3d: %s\n", i+1, cmd)
	}
}

// LoadHistory reads the history file. A missing file is not an error.
func (r *REPL) LoadHistory() error {
	if r.opts.HistoryFile == "" {
		return nil
	}

	content, err := os.ReadFile(r.opts.HistoryFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load history: %w", err)
	}

	for _, line := range strings.Split(string(content), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			r.AddToHistory(line)
		}
	}
	return nil
}

// SaveHistory writes at most MaxHistory lines to the history file
func (r *REPL) SaveHistory() error {
	if r.opts.HistoryFile == "" || len(r.history) == 0 {
		return nil
	}

	content := strings.Join(r.history, "\n") + "\n"
	if err := os.WriteFile(r.opts.HistoryFile, []byte(content), 0o600); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}
