package main

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/dhamidi/doomfront/cvarinfo"
	"github.com/dhamidi/doomfront/ebnflex"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

func newGrammarCmd() *cobra.Command {
	var startProduction string
	var printSource bool

	cmd := &cobra.Command{
		Use:   "grammar [file]",
		Short: "Verify an EBNF grammar, by default the built-in CVARINFO grammar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				if printSource {
					_, err := io.WriteString(out, cvarinfo.GrammarSource())
					return err
				}
				if err := cvarinfo.VerifyGrammar(); err != nil {
					return err
				}
				fmt.Fprintln(out, "ok")
				return nil
			}

			filename := args[0]
			grammar, err := ebnflex.LoadGrammar(filename)
			if err != nil {
				printErrors(out, err)
				return err
			}
			if startProduction != "" {
				if err := ebnf.Verify(grammar, startProduction); err != nil {
					printErrors(out, err)
					return err
				}
			}
			fmt.Fprintf(out, "%s: %d productions ok\n", filename, len(grammar))
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", cvarinfo.GrammarStart, "start production for verification (if empty, only checks syntax)")
	cmd.Flags().BoolVar(&printSource, "print", false, "print the built-in grammar instead of verifying it")

	return cmd
}

// printErrors prints each error of an ebnf error list on its own line.
func printErrors(w io.Writer, err error) {
	if inner := errors.Unwrap(err); inner != nil {
		err = inner
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
