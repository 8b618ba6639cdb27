package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/history"
	"github.com/zephyrtronium/calc/internal/repl"
)

// errFailed reports that an expression failed and the failure has already
// been printed.
var errFailed = errors.New("expression failed")

// historyEnv overrides the default history database location.
const historyEnv = "CALC_HISTORY"

type options struct {
	format      string
	postfix     bool
	echo        bool
	historyPath string
	noHistory   bool
	logLevel    string
	noColor     bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "calc [expression...]",
		Short: "Evaluate infix arithmetic expressions",
		Long: `Calc evaluates arithmetic expressions with + - * / ^, unary minus, and
parentheses. ^ is right-associative, so 2^3^2 is 2^(3^2).

With arguments, calc joins them with spaces, evaluates the result once, and
exits with status 1 if the expression is invalid. Without arguments, calc
reads one expression per line until exit, quit, or end of input.

An expression that starts with a minus sign is not mistaken for a flag, but
flags must come before it.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.format, "fmt", "", "fmt verb for results, e.g. %.3f (default integers as integers, others shortest)")
	f.BoolVar(&opts.postfix, "postfix", false, "print the postfix form of each expression before its result")
	f.BoolVar(&opts.echo, "echo", false, "print each expression fully bracketed before its result")
	f.StringVar(&opts.historyPath, "history", "", "history database (default $"+historyEnv+" or the user config directory)")
	f.BoolVar(&opts.noHistory, "no-history", false, "do not read or record history")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts options) error {
	if opts.noColor {
		color.NoColor = true
	}
	slog.SetDefault(newLogger(cmd.ErrOrStderr(), opts.logLevel))
	ev := evaluator{format: opts.format, postfix: opts.postfix, echo: opts.echo}
	if len(args) > 0 {
		out, err := ev.eval(strings.Join(args, " "))
		if err != nil {
			color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return errFailed
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
	return interactive(cmd, ev, opts)
}

func interactive(cmd *cobra.Command, ev evaluator, opts options) error {
	s := &repl.Session{Eval: ev.eval, Log: slog.Default()}
	if !opts.noHistory {
		h, err := openHistory(opts.historyPath)
		if err != nil {
			slog.Warn("history disabled", slog.Any("err", err))
		} else {
			defer h.Close()
			s.History = h
		}
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return repl.RunTerminal(s, f, cmd.OutOrStdout())
	}
	return s.RunLines(in, cmd.OutOrStdout())
}

func openHistory(path string) (*history.Store, error) {
	path, err := historyPath(path, os.Getenv(historyEnv), os.UserConfigDir)
	if err != nil {
		return nil, err
	}
	slog.Debug("opening history", slog.String("path", path))
	return history.Open(path)
}

// historyPath picks the history database location from the flag, then the
// environment, then the user config directory.
func historyPath(flag, env string, configDir func() (string, error)) (string, error) {
	switch {
	case flag != "":
		return flag, nil
	case env != "":
		return env, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", fmt.Errorf("finding history location: %w", err)
	}
	return filepath.Join(dir, "calc", "history.db"), nil
}

// evaluator evaluates expressions and formats their results for output.
type evaluator struct {
	format  string
	postfix bool
	echo    bool
}

func (ev evaluator) eval(expr string) (string, error) {
	var prefix []string
	if ev.postfix || ev.echo || slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		postfix, err := calc.Compile(expr)
		if err == nil {
			rpn := calc.FormatTokens(postfix)
			slog.Debug("compiled", slog.String("expr", expr), slog.String("postfix", rpn))
			if ev.postfix {
				prefix = append(prefix, rpn)
			}
			if g, err := calc.Group(postfix); err == nil && ev.echo {
				prefix = append(prefix, g)
			}
		}
	}
	r, err := calc.Evaluate(expr)
	if err != nil {
		slog.Debug("evaluation failed", slog.String("expr", expr), slog.Any("err", err))
		return "", err
	}
	out := r.String()
	if ev.format != "" {
		out = fmt.Sprintf(ev.format, r.Float64())
	}
	return strings.Join(append(prefix, out), " : "), nil
}

// protectNegatives inserts -- before the first argument that is an
// expression starting with a minus sign, so that e.g. "calc -3+5" does not
// parse -3 as a flag.
func protectNegatives(args []string) []string {
	for i, a := range args {
		if a == "--" {
			return args
		}
		if len(a) > 1 && a[0] == '-' && strings.ContainsRune("0123456789.( ", rune(a[1])) {
			r := make([]string, 0, len(args)+1)
			r = append(r, args[:i]...)
			r = append(r, "--")
			return append(r, args[i:]...)
		}
	}
	return args
}

// newLogger creates the CLI's logger on w.
func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}

// parseLevel parses a log level name. Unknown names are info.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
