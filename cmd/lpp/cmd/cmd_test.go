package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer

	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()

	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

// tempConfig writes a config file that keeps history out of the home directory
func tempConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "lpp.toml")
	content := "history_file = " + `"` + filepath.ToSlash(filepath.Join(dir, "history")) + `"` + "\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTokensCommand(t *testing.T) {
	res := execute(t, "", "tokens", "-e", "x;")
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"1:1", "IDENT", "identificador", `"x"`}, strings.Fields(lines[0]))
}

func TestTokensCommand_JSONFromStdin(t *testing.T) {
	res := execute(t, "variable", "tokens", "-o", "json")
	require.NoError(t, res.err)

	var tokens []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &tokens))
	require.Len(t, tokens, 2)
	assert.Equal(t, "LET", tokens[0]["type"])
	assert.Equal(t, "EOF", tokens[1]["type"])
}

func TestParseCommand(t *testing.T) {
	res := execute(t, "", "parse", "-o", "string", "-e", "variable x = -a * b; regresa x")
	require.NoError(t, res.err)
	assert.Equal(t, "variable x = ((-a) * b);\nregresa x;\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestParseCommand_TreeIsDefault(t *testing.T) {
	res := execute(t, "", "parse", "-e", "verdadero")
	require.NoError(t, res.err)
	assert.Equal(t, "Program\n  ExpressionStatement\n    BooleanLiteral verdadero\n", res.stdout)
}

func TestParseCommand_SyntaxErrors(t *testing.T) {
	res := execute(t, "", "parse", "-e", "variable x 5;")

	assert.ErrorIs(t, res.err, ErrSyntax)
	assert.Empty(t, res.stdout)
	assert.Equal(t, "Error: 1:12: Se esperaba \"=\", pero se obtuvo \"5\"\n", res.stderr)
}

func TestParseCommand_FileAndLocale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.lpp")
	require.NoError(t, os.WriteFile(path, []byte("varible x = 5;\n"), 0o644))

	res := execute(t, "", "parse", "--locale", "en", path)

	assert.ErrorIs(t, res.err, ErrSyntax)
	assert.Contains(t, res.stderr, `1:1: Did you mean "variable" instead of "varible"?`)
	assert.Contains(t, res.stderr, "Error: "+path+":1:11:")
}

func TestParseCommand_MissingFile(t *testing.T) {
	res := execute(t, "", "parse", filepath.Join(t.TempDir(), "absent.lpp"))
	assert.ErrorContains(t, res.err, "read source")
}

func TestUnknownLocale(t *testing.T) {
	res := execute(t, "", "parse", "--locale", "de", "-e", "x")
	assert.ErrorContains(t, res.err, `unknown locale "de"`)
}

func TestUnknownOutput(t *testing.T) {
	res := execute(t, "", "tokens", "-o", "xml", "-e", "x")
	assert.ErrorContains(t, res.err, `unknown output format "xml"`)
}

func TestConfigFileIsApplied(t *testing.T) {
	cfg := tempConfig(t, "locale = \"en\"\noutput = \"string\"\n")

	res := execute(t, "", "--config", cfg, "parse", "-e", "1 + 2 * 3")
	require.NoError(t, res.err)
	assert.Equal(t, "(1 + (2 * 3))\n", res.stdout)

	res = execute(t, "", "--config", cfg, "parse", "-e", "variable = 1;")
	assert.Contains(t, res.stderr, "identifier")
}

func TestConfigCommand(t *testing.T) {
	cfg := tempConfig(t, "locale = \"en\"\n")

	res := execute(t, "", "--config", cfg, "--output", "yaml", "config")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "# "+cfg)
	assert.Contains(t, res.stdout, `locale = "en"`)
	assert.Contains(t, res.stdout, `output = "yaml"`)
}

func TestConfigCommand_Init(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	res := execute(t, "", "--locale", "en", "config", "--init")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Configuración guardada en: lpp.toml")

	data, err := os.ReadFile(filepath.Join(dir, "lpp.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `locale = "en"`)

	// the file written above is now picked up, and never overwritten
	res = execute(t, "", "config", "--init")
	assert.ErrorContains(t, res.err, "failed to write config file")
}

func TestLocalesCommand(t *testing.T) {
	res := execute(t, "", "--locale", "en-US", "locales")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "* en\n")
	assert.Contains(t, res.stdout, "  es\n")
}

func TestVersionCommand(t *testing.T) {
	res := execute(t, "", "version", "--json")
	require.NoError(t, res.err)

	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &v))
	assert.Equal(t, "lpp", v["tool"])
}

func TestVersionCommand_IgnoresBrokenConfig(t *testing.T) {
	res := execute(t, "", "--config", filepath.Join(t.TempDir(), "absent.toml"), "version")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "lpp v"))
}

func TestReplCommand(t *testing.T) {
	cfg := tempConfig(t, "")

	res := execute(t, ":ast string\n1 + 2\n:quit\n", "--config", cfg, "repl")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "(1 + 2)\n")
	assert.Contains(t, res.stdout, "¡Hasta luego!")

	history, err := os.ReadFile(filepath.Join(filepath.Dir(cfg), "history"))
	require.NoError(t, err)
	assert.Equal(t, ":ast string\n1 + 2\n:quit\n", string(history))
}

func TestReplCommand_ASTFlag(t *testing.T) {
	cfg := tempConfig(t, "")

	res := execute(t, "regresa 5\n", "--config", cfg, "repl", "--ast", "-o", "string")
	require.NoError(t, res.err)
	assert.Equal(t, "regresa 5;\n", res.stdout)
}

func TestReplCommand_ZeroMaxHistoryDisablesHistory(t *testing.T) {
	cfg := tempConfig(t, "max_history = 0\n")

	res := execute(t, "x\n", "--config", cfg, "repl")
	require.NoError(t, res.err)

	_, err := os.Stat(filepath.Join(filepath.Dir(cfg), "history"))
	assert.True(t, os.IsNotExist(err))
}

func TestWatchCommand_MissingDirectory(t *testing.T) {
	res := execute(t, "", "watch", filepath.Join(t.TempDir(), "absent", "prog.lpp"))
	assert.ErrorContains(t, res.err, "watch ")
}

func TestReadSource(t *testing.T) {
	root := NewRootCmd()
	root.SetIn(strings.NewReader("desde stdin"))

	name, src, err := readSource(root, nil, "x")
	require.NoError(t, err)
	assert.Equal(t, "", name)
	assert.Equal(t, "x", src)

	name, src, err = readSource(root, []string{"-"}, "")
	require.NoError(t, err)
	assert.Equal(t, "", name)
	assert.Equal(t, "desde stdin", src)
}
