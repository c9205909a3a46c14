package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/doomfront/cvarinfo"
	"github.com/dhamidi/doomfront/format"
	"github.com/dhamidi/doomfront/green"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var strict bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a CVARINFO file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read cvarinfo file: %w", err)
			}
			if !cmd.Flags().Changed("strict") {
				strict = cfg.Strict
			}

			encoder, err := format.NewEncoder(outputFormat, cmd.OutOrStdout(), cvarinfo.Lang)
			if err != nil {
				return err
			}

			tree, errs := parseSource(string(data), strict)
			if tree != nil {
				if err := encoder.Encode(tree); err != nil {
					return fmt.Errorf("encode %s: %w", outputFormat, err)
				}
				if outputFormat == "json" {
					fmt.Fprintln(cmd.OutOrStdout())
				}
			}
			if len(errs) > 0 {
				if err := format.WriteDiagnostics(cmd.ErrOrStderr(), filename, string(data), errs); err != nil {
					return err
				}
				return fmt.Errorf("%s: %d syntax errors", filename, len(errs))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format ("+strings.Join(format.Formats, ", ")+")")
	cmd.Flags().BoolVar(&strict, "strict", false, "stop at the first error instead of recovering")

	return cmd
}

// parseSource parses src strictly or tolerantly. A strict parse that fails
// returns no tree.
func parseSource(src string, strict bool) (*green.ParseTree, []green.ParseError) {
	if strict {
		return cvarinfo.Parse(src)
	}
	tree := cvarinfo.ParseRecov(src)
	return tree, tree.Errors()
}
