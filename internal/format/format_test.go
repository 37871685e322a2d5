package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lpp-lang/lpp/internal/ast"
	"github.com/lpp-lang/lpp/internal/lexer"
	"github.com/lpp-lang/lpp/internal/parser"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	return parser.New(lexer.New(src)).ParseProgram()
}

func TestSource_OneStatementPerLine(t *testing.T) {
	program := parseProgram(t, "variable x = 1;   regresa x")
	assert.Equal(t, "variable x = 1;\nregresa x;\n", Source(program, DefaultOptions()))
	assert.Equal(t, "variable x = 1;\r\nregresa x;\r\n", Source(program, Options{CRLF: true}))
}

func TestSource_EmptyProgram_ProducesSingleNewline(t *testing.T) {
	assert.Equal(t, "\n", Source(parseProgram(t, ""), DefaultOptions()))
	assert.Equal(t, "\n", Source(nil, DefaultOptions()))
}

func TestTree(t *testing.T) {
	want := strings.Join([]string{
		"Program",
		"  LetStatement variable",
		"    Identifier x",
		"    InfixExpression *",
		"      PrefixExpression -",
		"        Identifier a",
		"      Identifier b",
		"",
	}, "\n")
	assert.Equal(t, want, Tree(parseProgram(t, "variable x = -a * b;")))
}

func TestTree_PositionsAndTabs(t *testing.T) {
	f := NewTreeFormatter(TreeOptions{PreferTabs: true, Positions: true})
	want := "Program\n" +
		"\tExpressionStatement @1:1\n" +
		"\t\tInfixExpression + @1:3\n" +
		"\t\t\tIdentifier x @1:1\n" +
		"\t\t\tIntegerLiteral 1 @1:5\n"
	assert.Equal(t, want, f.Format(parseProgram(t, "x + 1")))
}

func TestTree_MissingChild(t *testing.T) {
	want := "Program\n  ReturnStatement regresa\n    <missing>\n"
	assert.Equal(t, want, Tree(parseProgram(t, "regresa ;")))
}

func TestTree_NilNode(t *testing.T) {
	assert.Equal(t, "", Tree(nil))
}

func TestJSON(t *testing.T) {
	out, err := JSON(parseProgram(t, "variable x = 5 == verdadero;"))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "Program", doc["type"])

	stmts := doc["statements"].([]any)
	require.Len(t, stmts, 1)
	let := stmts[0].(map[string]any)
	assert.Equal(t, "LetStatement", let["type"])
	assert.Equal(t, "1:1", let["position"])
	assert.Equal(t, "x", let["name"].(map[string]any)["value"])

	value := let["value"].(map[string]any)
	assert.Equal(t, "InfixExpression", value["type"])
	assert.Equal(t, "==", value["operator"])
	assert.Equal(t, float64(5), value["left"].(map[string]any)["value"])
	assert.Equal(t, true, value["right"].(map[string]any)["value"])
}

func TestYAML(t *testing.T) {
	out, err := YAML(parseProgram(t, "regresa !falso;"))
	require.NoError(t, err)

	var doc struct {
		Type       string `yaml:"type"`
		Statements []struct {
			Type  string `yaml:"type"`
			Value struct {
				Type     string `yaml:"type"`
				Operator string `yaml:"operator"`
				Right    struct {
					Value bool `yaml:"value"`
				} `yaml:"right"`
			} `yaml:"value"`
		} `yaml:"statements"`
	}
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, "Program", doc.Type)
	require.Len(t, doc.Statements, 1)
	assert.Equal(t, "ReturnStatement", doc.Statements[0].Type)
	assert.Equal(t, "PrefixExpression", doc.Statements[0].Value.Type)
	assert.Equal(t, "!", doc.Statements[0].Value.Operator)
	assert.False(t, doc.Statements[0].Value.Right.Value)
}

func TestToMap_NilExpression(t *testing.T) {
	m := ToMap(parseProgram(t, "regresa ;"))
	stmt := m["statements"].([]any)[0].(map[string]any)
	assert.Nil(t, stmt["value"])
}

func TestDump(t *testing.T) {
	out := Dump(parseProgram(t, "variable x = 1;"))
	assert.Contains(t, out, "ast.LetStatement")
	assert.Contains(t, out, `"variable"`)
	assert.NotContains(t, out, "0xc0", "pointer addresses must not leak into dumps")
}

func TestTokenMaps(t *testing.T) {
	maps := TokenMaps(lexer.New("x;").Tokens())
	require.Len(t, maps, 3)
	assert.Equal(t, "IDENT", maps[0]["type"])
	assert.Equal(t, "x", maps[0]["literal"])
	assert.Equal(t, 2, maps[1]["column"])
	assert.Equal(t, "EOF", maps[2]["type"])
}

func TestTokens(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Tokens(&buf, lexer.New("variable x").Tokens(), nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"1:1", "LET", "variable", `"variable"`}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1:10", "IDENT", "identificador", `"x"`}, strings.Fields(lines[1]))
	assert.Contains(t, lines[2], "EOF")
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, KindJSON, k)

	_, err = ParseKind("xml")
	assert.ErrorContains(t, err, "tree, json, yaml, dump, string")
}

func TestRender_AllKinds(t *testing.T) {
	program := parseProgram(t, "variable x = 1;")
	for _, k := range Kinds() {
		t.Run(string(k), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, program, k))
			assert.NotEmpty(t, buf.String())
		})
	}

	assert.Error(t, Render(&bytes.Buffer{}, program, Kind("xml")))
}

func TestRenderTokens(t *testing.T) {
	tokens := lexer.New("x;").Tokens()

	var table, tree bytes.Buffer
	require.NoError(t, Tokens(&table, tokens, nil))
	require.NoError(t, RenderTokens(&tree, tokens, KindTree, nil))
	assert.Equal(t, table.String(), tree.String())

	var js bytes.Buffer
	require.NoError(t, RenderTokens(&js, tokens, KindJSON, nil))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "SEMICOLON", decoded[1]["type"])
	assert.Equal(t, float64(2), decoded[1]["column"])

	var ym bytes.Buffer
	require.NoError(t, RenderTokens(&ym, tokens, KindYAML, nil))
	assert.Contains(t, ym.String(), "- column: 1\n")

	assert.Error(t, RenderTokens(&bytes.Buffer{}, tokens, Kind("xml"), nil))
}
