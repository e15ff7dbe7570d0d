package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mgomes/calcengine/calc"
)

func fmtCommand(args []string) error {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	write := fs.Bool("w", false, "write result to source files instead of stdout")
	check := fs.Bool("check", false, "fail if any source file needs formatting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	targets := fs.Args()
	if len(targets) == 0 {
		return errors.New("calc fmt: path required")
	}

	files, err := collectCalcFiles(targets)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	// Formatting always tokenizes strictly so lenient mode never drops input.
	engine := calc.MustNewEngine(calc.Config{})

	changedCount := 0
	for _, path := range files {
		originalBytes, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		original := string(originalBytes)
		formatted := formatCalcSource(engine, original)
		changed := formatted != original
		if changed {
			changedCount++
		}

		switch {
		case *write && changed:
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		case !*write && !*check:
			fmt.Print(formatted)
		}
	}

	if *check && changedCount > 0 {
		return fmt.Errorf("calc fmt: %d file(s) need formatting", changedCount)
	}

	return nil
}

// formatCalcSource normalizes line endings and trailing whitespace, and
// rewrites every expression line with one space around binary operators.
// Lines that do not tokenize are kept as written.
func formatCalcSource(engine *calc.Engine, source string) string {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	lines := strings.Split(normalized, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		text := strings.TrimLeft(line, " \t")
		if text == "" || strings.HasPrefix(text, "#") {
			lines[i] = line
			continue
		}
		indent := line[:len(line)-len(text)]
		tokens, err := engine.Tokenize(text)
		if err != nil || len(tokens) == 0 {
			lines[i] = line
			continue
		}
		lines[i] = indent + formatExpression(tokens)
	}

	joined := strings.Join(lines, "\n")
	joined = strings.TrimRight(joined, "\n")
	return joined + "\n"
}

func formatExpression(tokens []calc.Token) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			prev := tokens[i-1]
			opensGroup := prev.Kind == calc.TokenOperator && prev.Op == '('
			closesGroup := tok.Kind == calc.TokenOperator && tok.Op == ')'
			if !opensGroup && !closesGroup {
				b.WriteByte(' ')
			}
		}
		b.WriteString(tok.String())
	}
	return b.String()
}
