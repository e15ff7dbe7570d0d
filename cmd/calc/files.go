package main

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

const calcFileExt = ".calc"

type expressionLine struct {
	Line   int
	Indent int // runes of leading whitespace trimmed from Text
	Text   string
}

// collectCalcFiles expands targets into a sorted list of files. Files named
// directly are always included; directories contribute their .calc files.
func collectCalcFiles(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	files := make([]string, 0)
	addFile := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		files = append(files, abs)
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", target, err)
		}
		if !info.IsDir() {
			addFile(target)
			continue
		}
		err = filepath.WalkDir(target, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() || filepath.Ext(path) != calcFileExt {
				return nil
			}
			addFile(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// readExpressions returns the non-blank lines of path that are not comments.
func readExpressions(path string) ([]expressionLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	lines, err := scanExpressions(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

func scanExpressions(r io.Reader) ([]expressionLine, error) {
	var lines []expressionLine
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		trimmed := strings.TrimLeft(raw, " \t")
		text := strings.TrimRight(trimmed, " \t\r")
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, expressionLine{
			Line:   lineNo,
			Indent: utf8.RuneCountInString(raw) - utf8.RuneCountInString(trimmed),
			Text:   text,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
