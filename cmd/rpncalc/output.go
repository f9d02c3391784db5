package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	resultColor = color.New(color.FgGreen, color.Bold)
	errorColor  = color.New(color.FgRed, color.Bold)
	dimColor    = color.New(color.FgHiBlack)
)

func printResult(cmd *cobra.Command, v int64) {
	out := cmd.OutOrStdout()
	resultColor.Fprint(out, "Result: ")
	fmt.Fprintf(out, "%d\n", v)
}

func printError(cmd *cobra.Command, err error) {
	out := cmd.ErrOrStderr()
	errorColor.Fprint(out, "Error: ")
	fmt.Fprintf(out, "%v\n", err)
}
