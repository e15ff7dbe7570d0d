package main

import (
	"errors"
	"flag"
	"fmt"

	"go.uber.org/zap"
)

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	common := registerCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	targets := fs.Args()
	if len(targets) == 0 {
		return errors.New("calc run: path required")
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

	evaluated := 0
	for _, path := range files {
		lines, err := readExpressions(path)
		if err != nil {
			return err
		}
		for _, line := range lines {
			value, err := sess.engine.Calculate(line.Text)
			if err != nil {
				return fmt.Errorf("%s:%d: %w", path, line.Line, err)
			}
			fmt.Printf("%s = %s\n", line.Text, sess.cfg.format(value))
			evaluated++
		}
	}

	sess.log.Info("run finished", zap.Int("files", len(files)), zap.Int("expressions", evaluated))
	return nil
}
