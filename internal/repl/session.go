// Package repl runs the interactive calculator prompt.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/zephyrtronium/calc/internal/history"
)

const (
	// Banner is printed when a session starts.
	Banner = "Expression Calculator (infix → postfix → evaluation). Type 'exit' to quit."
	// Prompt precedes each line of input.
	Prompt = "expr> "
)

// listLen is the number of entries the history command shows.
const listLen = 20

// History records evaluated lines. *history.Store implements it.
type History interface {
	Add(history.Entry) error
	Recent(n int) ([]history.Entry, error)
}

// Session evaluates lines of input. The zero value is not usable; Eval must
// be set.
type Session struct {
	// Eval evaluates one expression and formats its result.
	Eval func(expr string) (string, error)
	// History, if not nil, records each evaluated line.
	History History
	// Log receives history failures. If nil, slog.Default is used.
	Log *slog.Logger

	now func() time.Time
}

// Reply is the outcome of one line of input.
type Reply struct {
	// Text is the output for the line, if any.
	Text string
	// Err indicates that Text is an error message.
	Err bool
	// Quit indicates that the session should end.
	Quit bool
}

// Handle processes one line of input. Blank lines produce an empty reply, and
// exit or quit in any case end the session.
func (s *Session) Handle(line string) Reply {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return Reply{}
	case strings.EqualFold(line, "exit"), strings.EqualFold(line, "quit"):
		return Reply{Quit: true}
	case strings.EqualFold(line, "history"):
		return s.list()
	}
	r, err := s.Eval(line)
	e := history.Entry{Time: s.clock(), Expr: line, Result: r}
	reply := Reply{Text: r}
	if err != nil {
		e.Err = err.Error()
		reply = Reply{Text: "Error: " + err.Error(), Err: true}
	}
	if s.History != nil {
		if err := s.History.Add(e); err != nil {
			s.logger().Warn("recording history", slog.Any("err", err))
		}
	}
	return reply
}

// Recall returns up to n recently evaluated expressions, oldest first.
func (s *Session) Recall(n int) []string {
	if s.History == nil {
		return nil
	}
	es, err := s.History.Recent(n)
	if err != nil {
		s.logger().Warn("reading history", slog.Any("err", err))
		return nil
	}
	r := make([]string, len(es))
	for i, e := range es {
		r[i] = e.Expr
	}
	return r
}

func (s *Session) list() Reply {
	if s.History == nil {
		return Reply{Text: "history is disabled"}
	}
	es, err := s.History.Recent(listLen)
	if err != nil {
		return Reply{Text: "Error: " + err.Error(), Err: true}
	}
	if len(es) == 0 {
		return Reply{Text: "history is empty"}
	}
	var b strings.Builder
	for i, e := range es {
		if i > 0 {
			b.WriteByte('\n')
		}
		if e.Err != "" {
			fmt.Fprintf(&b, "%s  ->  Error: %s", e.Expr, e.Err)
		} else {
			fmt.Fprintf(&b, "%s  =  %s", e.Expr, e.Result)
		}
	}
	return Reply{Text: b.String()}
}

// RunLines runs a session over plain line-oriented input, as when input is
// not a terminal. It returns at EOF or when the session quits.
func (s *Session) RunLines(in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, Banner)
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, Prompt)
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		r := s.Handle(sc.Text())
		if r.Quit {
			return nil
		}
		if r.Text != "" {
			fmt.Fprintln(out, r.Text)
		}
	}
}

func (s *Session) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *Session) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}
