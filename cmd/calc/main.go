package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "eval":
		return evalCommand(args[2:])
	case "run":
		return runCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "lsp":
		return lspCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func evalCommand(args []string) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	common := registerCommonFlags(fs)
	postfix := fs.Bool("postfix", false, "print the postfix form instead of the result")
	if err := fs.Parse(args); err != nil {
		return err
	}

	expr := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(expr) == "" {
		return errors.New("calc eval: expression required")
	}

	sess, err := common.session(fs)
	if err != nil {
		return err
	}
	defer sess.close()

	program, err := sess.engine.Compile(expr)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	if *postfix {
		fmt.Println(program.String())
		return nil
	}
	value, err := program.Eval()
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	fmt.Println(sess.cfg.format(value))
	return nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  eval <expression>   evaluate an expression and print the result")
	fmt.Fprintln(os.Stderr, "  run <path>...       evaluate every line of .calc files")
	fmt.Fprintln(os.Stderr, "  check <path>...     report lines of .calc files that fail to evaluate")
	fmt.Fprintln(os.Stderr, "  fmt <path>...       normalize spacing in .calc files (-w to write, -check to verify)")
	fmt.Fprintln(os.Stderr, "  repl                start the interactive calculator")
	fmt.Fprintln(os.Stderr, "  lsp                 serve diagnostics and hovers for .calc files over stdio")
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  -config string")
	fmt.Fprintln(os.Stderr, "    YAML config file (default $CALC_CONFIG or <user config dir>/calc/config.yaml)")
	fmt.Fprintln(os.Stderr, "  -mode string")
	fmt.Fprintln(os.Stderr, "    strict or lenient (default \"strict\")")
	fmt.Fprintln(os.Stderr, "  -precision int")
	fmt.Fprintln(os.Stderr, "    decimal places in printed results (default -1, shortest)")
	fmt.Fprintln(os.Stderr, "  -max-tokens int")
	fmt.Fprintln(os.Stderr, "    maximum tokens per expression (default 4096)")
	fmt.Fprintln(os.Stderr, "  -postfix")
	fmt.Fprintln(os.Stderr, "    eval only: print the postfix form instead of the result")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
