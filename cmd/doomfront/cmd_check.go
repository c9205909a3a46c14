package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dhamidi/doomfront/format"
	"github.com/dhamidi/doomfront/workspace"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var strict bool
	var workers int

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report syntax errors in CVARINFO files and directories",
		Long: `Check parses the given files, and every CVARINFO file below the given
directories, in parallel. It exits with status 1 if any file has errors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			c := *cfg
			if cmd.Flags().Changed("strict") {
				c.Strict = strict
			}
			if cmd.Flags().Changed("workers") {
				c.Workers = workers
			}

			ws := workspace.New(".", workspace.WithConfig(&c))
			paths, err := expandPaths(ws, args)
			if err != nil {
				return err
			}
			if err := ws.ScanPaths(context.Background(), paths); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			files := ws.Files()
			bad := 0
			for _, f := range files {
				if len(f.Errors) == 0 {
					continue
				}
				bad++
				if err := format.WriteDiagnostics(out, f.Path, f.Content, f.Errors); err != nil {
					return err
				}
				fmt.Fprintln(out)
			}

			if n := ws.ErrorCount(); n > 0 {
				return fmt.Errorf("%d errors in %d of %d files", n, bad, len(files))
			}
			fmt.Fprintf(out, "%d files ok\n", len(files))
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "report only the first error of each file")
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "files to parse at once (0 means one per CPU)")

	return cmd
}

// expandPaths replaces each directory in args with the CVARINFO files below
// it, using the exclude and extension settings of ws.
func expandPaths(ws *workspace.Workspace, args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		c := *ws.Config()
		c.Root = arg
		found, err := workspace.New(arg, workspace.WithConfig(&c)).Discover()
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}
