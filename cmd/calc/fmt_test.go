package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mgomes/calcengine/calc"
)

func TestFmtCommandRequiresPath(t *testing.T) {
	err := fmtCommand(nil)
	if err == nil {
		t.Fatalf("expected path required error")
	}
	if !strings.Contains(err.Error(), "path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFmtCommandCheckDetectsUnformattedFiles(t *testing.T) {
	path := writeCalcFile(t, "2+3*4  \n")
	err := fmtCommand([]string{"-check", path})
	if err == nil {
		t.Fatalf("expected formatting check failure")
	}
	if !strings.Contains(err.Error(), "need formatting") {
		t.Fatalf("unexpected check error: %v", err)
	}
}

func TestFmtCommandWriteFormatsFileInPlace(t *testing.T) {
	path := writeCalcFile(t, "# totals  \r\n2*( 3+4 )\t\n\n  10 -2-3")
	if err := fmtCommand([]string{"-w", path}); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}

	updated, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read formatted file: %v", err)
	}
	want := "# totals\n2 * (3 + 4)\n\n  10 - 2 - 3\n"
	if got := string(updated); got != want {
		t.Fatalf("unexpected formatted output: %q", got)
	}
}

func TestFmtCommandPrintsFormattedOutput(t *testing.T) {
	path := writeCalcFile(t, "7%3\n1.50/ 2\n")
	out, err := captureStdout(t, func() error {
		return fmtCommand([]string{path})
	})
	if err != nil {
		t.Fatalf("fmt command failed: %v", err)
	}
	if out != "7 % 3\n1.50 / 2\n" {
		t.Fatalf("unexpected stdout output: %q", out)
	}
}

func TestFmtCommandFormatsDirectories(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "a.calc")
	second := filepath.Join(root, "nested", "b.calc")
	if err := os.MkdirAll(filepath.Dir(second), 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}
	if err := os.WriteFile(first, []byte("1+1"), 0o644); err != nil {
		t.Fatalf("write first file: %v", err)
	}
	if err := os.WriteFile(second, []byte("(2)*(3)  "), 0o644); err != nil {
		t.Fatalf("write second file: %v", err)
	}

	if err := fmtCommand([]string{"-w", root}); err != nil {
		t.Fatalf("fmt directory failed: %v", err)
	}
	if err := fmtCommand([]string{"-check", root}); err != nil {
		t.Fatalf("expected no formatting diffs after write, got %v", err)
	}
}

func TestFormatCalcSourceKeepsUntokenizableLines(t *testing.T) {
	engine := calc.MustNewEngine(calc.Config{})
	got := formatCalcSource(engine, "2 $ 3   \n4*5\n")
	if got != "2 $ 3\n4 * 5\n" {
		t.Fatalf("unexpected formatted source: %q", got)
	}
}

func TestFormatCalcSourceIsIdempotent(t *testing.T) {
	engine := calc.MustNewEngine(calc.Config{})
	once := formatCalcSource(engine, "((1+2))*3\n  # note\n8/ 0 \n")
	twice := formatCalcSource(engine, once)
	if once != twice {
		t.Fatalf("formatting not idempotent: %q then %q", once, twice)
	}
	if once != "((1 + 2)) * 3\n  # note\n8 / 0\n" {
		t.Fatalf("unexpected formatted source: %q", once)
	}
}

func writeCalcFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sheet.calc")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write calc file: %v", err)
	}
	return path
}
