package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const prompt = "> "

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate expressions read line by line from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := cmd.InOrStdin()
			interactive := false
			if f, ok := in.(*os.File); ok {
				interactive = term.IsTerminal(int(f.Fd()))
			}

			out := cmd.OutOrStdout()
			sc := bufio.NewScanner(in)
			for {
				if interactive {
					dimColor.Fprint(out, prompt)
				}
				if !sc.Scan() {
					break
				}

				line := strings.TrimSpace(sc.Text())
				switch line {
				case "":
					continue
				case "quit", "exit":
					return nil
				}

				// Errors are printed and the loop goes on.
				_ = a.runEval(cmd, line)
			}
			return sc.Err()
		},
	}
}
