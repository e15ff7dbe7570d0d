package main

import (
	"errors"
	"flag"
	"fmt"
	"sort"

	"github.com/mgomes/calcengine/calc"
	"go.uber.org/zap"
)

type checkIssue struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	common := registerCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	targets := fs.Args()
	if len(targets) == 0 {
		return errors.New("calc check: path required")
	}

	files, err := collectCalcFiles(targets)
	if err != nil {
		return err
	}

	sess, err := common.session(fs)
	if err != nil {
		return err
	}
	defer sess.close()

	var issues []checkIssue
	for _, path := range files {
		lines, err := readExpressions(path)
		if err != nil {
			return err
		}
		issues = append(issues, checkExpressions(sess.engine, path, lines)...)
	}

	if len(issues) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, issue := range issues {
		fmt.Printf("%s:%d:%d: %s\n", issue.Path, issue.Line, issue.Column, issue.Message)
	}
	sess.log.Debug("check finished", zap.Int("files", len(files)), zap.Int("issues", len(issues)))

	return fmt.Errorf("check found %d issue(s)", len(issues))
}

func checkExpressions(engine *calc.Engine, path string, lines []expressionLine) []checkIssue {
	issues := make([]checkIssue, 0)
	for _, line := range lines {
		_, err := engine.Calculate(line.Text)
		if err == nil {
			continue
		}
		issue := checkIssue{Path: path, Line: line.Line, Column: line.Indent + 1, Message: err.Error()}
		var calcErr *calc.Error
		if errors.As(err, &calcErr) {
			issue.Message = calcErr.Msg
			if calcErr.Pos.Line > 0 {
				issue.Line = line.Line + calcErr.Pos.Line - 1
				issue.Column = line.Indent + calcErr.Pos.Column
			}
		}
		issues = append(issues, issue)
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		return issues[i].Column < issues[j].Column
	})
	return issues
}
