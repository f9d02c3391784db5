package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/rpncalc/pkg/calc"
)

func newBatchCmd(a *app) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "batch [file|-]",
		Short: "Evaluate one expression per line concurrently",
		Long: `Batch reads expressions from a file, or stdin when the file is "-" or
omitted. Blank lines and lines starting with '#' are skipped. Each expression
prints as "<expr> = <value>" or "<expr> ! <error>"; the command fails if any
expression failed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			exprs, err := readExpressions(in)
			if err != nil {
				return err
			}

			if workers <= 0 {
				workers = a.cfg.Batch.Workers
			}
			a.log.Debug("batch start", "expressions", len(exprs), "workers", workers)

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range calc.EvaluateAll(cmd.Context(), exprs, workers) {
				if r.Err != nil {
					failed++
					fmt.Fprintf(out, "%s ", r.Expr)
					errorColor.Fprint(out, "!")
					fmt.Fprintf(out, " %v\n", r.Err)
					continue
				}
				fmt.Fprintf(out, "%s ", r.Expr)
				resultColor.Fprint(out, "=")
				fmt.Fprintf(out, " %d\n", r.Value)
			}

			a.log.Debug("batch done", "failed", failed)
			if failed > 0 {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent evaluations (default from config)")
	return cmd
}

func readExpressions(r io.Reader) ([]string, error) {
	var exprs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exprs = append(exprs, line)
	}
	return exprs, sc.Err()
}
