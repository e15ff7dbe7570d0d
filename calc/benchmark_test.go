package calc

import (
	"strings"
	"testing"
)

func benchmarkExpression(terms int) string {
	var b strings.Builder
	for i := 0; i < terms; i++ {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString("(12.5 * 3 - 4 / 2 % 7)")
	}
	return b.String()
}

func BenchmarkCalculateShort(b *testing.B) {
	engine := MustNewEngine(Config{})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Calculate("2+3*4"); err != nil {
			b.Fatalf("calculate failed: %v", err)
		}
	}
}

func BenchmarkCalculateLong(b *testing.B) {
	engine := MustNewEngine(Config{})
	expr := benchmarkExpression(100)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Calculate(expr); err != nil {
			b.Fatalf("calculate failed: %v", err)
		}
	}
}

func BenchmarkProgramEval(b *testing.B) {
	program, err := MustNewEngine(Config{}).Compile(benchmarkExpression(100))
	if err != nil {
		b.Fatalf("compile failed: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := program.Eval(); err != nil {
			b.Fatalf("eval failed: %v", err)
		}
	}
}
