package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dhamidi/doomfront/config"
	"github.com/dhamidi/doomfront/format"
	"github.com/dhamidi/doomfront/workspace"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Check a directory and recheck files as they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			c := *cfg
			c.Root = dir
			if dir != "." {
				if loaded, err := config.LoadFrom(dir); err == nil {
					c = *loaded
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			ws := workspace.New(dir, workspace.WithConfig(&c))
			if err := ws.ScanAll(ctx); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
			for _, f := range ws.Files() {
				report(out, f)
			}
			fmt.Fprintf(out, "watching %d files, %d errors\n", len(ws.Files()), ws.ErrorCount())

			w := workspace.NewWatcher(ws, func(path string, f *workspace.File) {
				if f == nil {
					fmt.Fprintf(out, "%s: removed\n", path)
					return
				}
				report(out, f)
			})
			return w.Run(ctx)
		},
	}
}

func report(out io.Writer, f *workspace.File) {
	if len(f.Errors) == 0 {
		fmt.Fprintf(out, "%s: ok\n", f.Path)
		return
	}
	format.WriteDiagnostics(out, f.Path, f.Content, f.Errors)
}
