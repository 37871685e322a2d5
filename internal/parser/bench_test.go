package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lpp-lang/lpp/internal/lexer"
)

// generateStatements creates n well-formed statements
func generateStatements(n int) string {
	var builder strings.Builder

	for i := 0; i < n; i++ {
		switch i % 4 {
		case 0:
			builder.WriteString(fmt.Sprintf("variable suma = %d + %d * %d;\n", i, i+1, i+2))
		case 1:
			builder.WriteString("variable mayor = suma > 10 == verdadero;\n")
		case 2:
			builder.WriteString(fmt.Sprintf("regresa -suma / (%d - !mayor);\n", i))
		case 3:
			builder.WriteString("suma + mayor * suma != falso\n")
		}
	}

	return builder.String()
}

func benchmarkParser(b *testing.B, input string) {
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		New(lexer.New(input)).ParseProgram()
	}
}

func BenchmarkParser_Small(b *testing.B)  { benchmarkParser(b, generateStatements(10)) }
func BenchmarkParser_Medium(b *testing.B) { benchmarkParser(b, generateStatements(1000)) }
func BenchmarkParser_Large(b *testing.B)  { benchmarkParser(b, generateStatements(25000)) }

// Every statement is malformed, so each one goes through error recovery.
func BenchmarkParser_ErrorRecovery(b *testing.B) {
	benchmarkParser(b, strings.Repeat("variable x 5; variable = 1; (1 + 2;\n", 500))
}

func TestGenerateStatementsParsesCleanly(t *testing.T) {
	p := New(lexer.New(generateStatements(8)))
	program := p.ParseProgram()

	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected errors: %q", p.Errors())
	}
	if len(program.Statements) != 8 {
		t.Fatalf("expected=%d statements, got=%d", 8, len(program.Statements))
	}
}
