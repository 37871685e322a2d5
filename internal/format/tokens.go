package format

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/lpp-lang/lpp/internal/i18n"
	"github.com/lpp-lang/lpp/internal/lexer"
)

// Tokens writes one token per line as an aligned table of position, type,
// localized type name and literal.
func Tokens(w io.Writer, tokens []lexer.Token, catalog *i18n.Catalog) error {
	if catalog == nil {
		catalog = i18n.Default()
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, tok := range tokens {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%q\n",
			tok.Pos, tok.Type, catalog.TokenName(tok.Type), tok.Literal); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// RenderTokens writes tokens in the format k. The tree and string formats
// both produce the Tokens table.
func RenderTokens(w io.Writer, tokens []lexer.Token, k Kind, catalog *i18n.Catalog) error {
	var out []byte
	var err error

	switch k {
	case KindTree, KindString:
		return Tokens(w, tokens, catalog)
	case KindJSON:
		out, err = json.MarshalIndent(TokenMaps(tokens), "", "  ")
		out = append(out, '\n')
	case KindYAML:
		out, err = yaml.Marshal(TokenMaps(tokens))
	case KindDump:
		out = []byte(Dump(tokens))
	default:
		return fmt.Errorf("unknown output format %q", k)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", k, err)
	}

	_, err = w.Write(out)
	return err
}
