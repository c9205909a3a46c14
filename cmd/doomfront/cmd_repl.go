package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/doomfront/cvarinfo"
	"github.com/dhamidi/doomfront/format"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".doomfront_history"
	promptMain  = "cvarinfo> "
	promptCont  = "........> "
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse CVARINFO interactively",
		Long: `Each input is parsed tolerantly and its tree and errors are printed.
Input that stops in the middle of a declaration continues on the next line.

Commands: :format text|json, :strict on|off, :help, :quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd.OutOrStdout())
		},
	}
}

type replSession struct {
	out    io.Writer
	format string
	strict bool
}

func runREPL(out io.Writer) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	s := &replSession{out: out, format: "text", strict: cfg.Strict}
	for {
		src, ok := readInput(ln)
		if !ok {
			fmt.Fprintln(out)
			break
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if s.eval(src) {
			break
		}
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return nil
}

// readInput reads lines until they no longer end inside a declaration.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C drops the current input.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// incomplete reports whether src only fails because it ends too early.
func incomplete(src string) bool {
	if strings.HasPrefix(strings.TrimSpace(src), ":") {
		return false
	}
	_, errs := cvarinfo.Parse(src)
	return len(errs) == 1 && errs[0].Found == "" && errs[0].Message == ""
}

// eval runs a command or parses src, and reports whether to quit.
func (s *replSession) eval(src string) bool {
	if fields := strings.Fields(src); strings.HasPrefix(src, ":") && len(fields) > 0 {
		return s.command(fields)
	}

	tree, errs := parseSource(src, s.strict)
	if tree != nil {
		enc, _ := format.NewEncoder(s.format, s.out, cvarinfo.Lang)
		if err := enc.Encode(tree); err != nil {
			fmt.Fprintln(s.out, err)
		}
		if s.format == "json" {
			fmt.Fprintln(s.out)
		}
	}
	if len(errs) > 0 && (tree == nil || s.format != "text") {
		format.WriteDiagnostics(s.out, "", src, errs)
	}
	return false
}

func (s *replSession) command(fields []string) bool {
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":format":
		if _, err := format.NewEncoder(arg, io.Discard, cvarinfo.Lang); err != nil || arg == "" {
			fmt.Fprintf(s.out, "usage: :format %s\n", strings.Join(format.Formats, "|"))
			return false
		}
		s.format = arg
	case ":strict":
		switch arg {
		case "on":
			s.strict = true
		case "off":
			s.strict = false
		default:
			fmt.Fprintln(s.out, "usage: :strict on|off")
		}
	case ":help":
		fmt.Fprintln(s.out, ":format text|json  choose the tree dump")
		fmt.Fprintln(s.out, ":strict on|off     stop at the first error")
		fmt.Fprintln(s.out, ":quit              leave")
	default:
		fmt.Fprintf(s.out, "unknown command %s (try :help)\n", fields[0])
	}
	return false
}
