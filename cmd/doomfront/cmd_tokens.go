package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dhamidi/doomfront/cvarinfo"
	"github.com/dhamidi/doomfront/format"
	"github.com/dhamidi/doomfront/green"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "List the tokens of a file as the reference grammar sees them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read cvarinfo file: %w", err)
			}

			lexer, err := cvarinfo.NewLexer(string(data), filename)
			if err != nil {
				return err
			}
			tokens, err := lexer.Tokenize()
			if err != nil {
				return fmt.Errorf("tokenize: %w", err)
			}
			for _, tok := range tokens {
				fmt.Fprintln(cmd.OutOrStdout(), tok)
			}

			if !verify {
				return nil
			}
			if err := cvarinfo.Conforms(string(data)); err != nil {
				var perr green.ParseError
				if errors.As(err, &perr) {
					format.WriteDiagnostics(cmd.ErrOrStderr(), filename, string(data), []green.ParseError{perr})
				}
				return fmt.Errorf("%s does not conform to the reference grammar", filename)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "conforms to the reference grammar")
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "also check the tokens against the reference grammar")

	return cmd
}
