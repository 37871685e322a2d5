// Package format renders token streams and syntax trees for people and tools.
package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/lpp-lang/lpp/internal/ast"
)

// Kind selects an output renderer.
type Kind string

const (
	KindTree   Kind = "tree"
	KindJSON   Kind = "json"
	KindYAML   Kind = "yaml"
	KindDump   Kind = "dump"
	KindString Kind = "string"
)

// Kinds lists every renderer in the order shown by help texts.
func Kinds() []Kind {
	return []Kind{KindTree, KindJSON, KindYAML, KindDump, KindString}
}

// ParseKind resolves a renderer name, ignoring case.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want one of %s)", name, joinKinds())
}

func joinKinds() string {
	names := make([]string, 0, len(Kinds()))
	for _, k := range Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

// Render writes program to w using the renderer k.
func Render(w io.Writer, program *ast.Program, k Kind) error {
	var out []byte
	var err error

	switch k {
	case KindTree:
		out = []byte(Tree(program))
	case KindJSON:
		out, err = JSON(program)
	case KindYAML:
		out, err = YAML(program)
	case KindDump:
		out = []byte(Dump(program))
	case KindString:
		out = []byte(Source(program, DefaultOptions()))
	default:
		return fmt.Errorf("unknown output format %q", k)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", k, err)
	}

	_, err = w.Write(out)
	return err
}

// Options controls source rendering.
type Options struct {
	// CRLF ends lines with \r\n instead of \n.
	CRLF bool
}

// DefaultOptions returns sane defaults.
func DefaultOptions() Options {
	return Options{}
}

// Source renders program in canonical form, one statement per line with
// exactly one trailing newline. Statements that render empty are omitted.
func Source(program *ast.Program, opts Options) string {
	sep := "\n"
	if opts.CRLF {
		sep = "\r\n"
	}

	var buf bytes.Buffer
	if program != nil {
		for _, stmt := range program.Statements {
			line := strings.TrimRight(stmt.String(), " \t")
			if line == "" {
				continue
			}
			buf.WriteString(line)
			buf.WriteString(sep)
		}
	}

	if buf.Len() == 0 {
		return sep
	}
	return buf.String()
}
