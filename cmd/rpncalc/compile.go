package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/rpncalc/pkg/calc"
	"github.com/agenthands/rpncalc/pkg/compiler/lexer"
)

func newRPNCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rpn <expression...>",
		Short: "Print the postfix form of an expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := calc.Compile(strings.Join(args, " "))
			if err != nil {
				printError(cmd, err)
				return errReported
			}
			rpn := lexer.Format(code)
			a.log.Debug("compiled", "rpn", rpn)
			fmt.Fprintln(cmd.OutOrStdout(), rpn)
			return nil
		},
	}
}

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <expression...>",
		Short: "Print the tokens of an expression, one per line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := lexer.Tokenize(strings.Join(args, " "))
			if err != nil {
				printError(cmd, err)
				return errReported
			}
			a.log.Debug("tokenized", "count", len(tokens))
			out := cmd.OutOrStdout()
			for _, tok := range tokens {
				dimColor.Fprint(out, tok.Kind.String())
				fmt.Fprintf(out, "\t%s\n", tok)
			}
			return nil
		},
	}
}
