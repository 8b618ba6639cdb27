package repl

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/history"
)

// memHistory is an in-memory History.
type memHistory struct {
	entries []history.Entry
	fail    error
}

func (h *memHistory) Add(e history.Entry) error {
	if h.fail != nil {
		return h.fail
	}
	h.entries = append(h.entries, e)
	return nil
}

func (h *memHistory) Recent(n int) ([]history.Entry, error) {
	if h.fail != nil {
		return nil, h.fail
	}
	if n > len(h.entries) {
		n = len(h.entries)
	}
	return h.entries[len(h.entries)-n:], nil
}

func evalString(expr string) (string, error) {
	r, err := calc.Evaluate(expr)
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

func newSession(h History) *Session {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &Session{Eval: evalString, History: h, now: func() time.Time { return at }}
}

func TestHandle(t *testing.T) {
	cases := []struct {
		name string
		line string
		want Reply
	}{
		{"blank", "   ", Reply{}},
		{"empty", "", Reply{}},
		{"exit", "exit", Reply{Quit: true}},
		{"quit-upper", "  QUIT ", Reply{Quit: true}},
		{"exit-mixed", "Exit", Reply{Quit: true}},
		{"result", " 2+2 ", Reply{Text: "4"}},
		{"float", "2^-2", Reply{Text: "0.25"}},
		{"error", "1/0", Reply{Text: "Error: division by zero at position 1", Err: true}},
		{"tokenize", "2+#3", Reply{Text: `Error: unexpected character at position 2: "#3"`, Err: true}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newSession(nil)
			assert.Equal(t, c.want, s.Handle(c.line))
		})
	}
}

func TestHandleRecords(t *testing.T) {
	h := new(memHistory)
	s := newSession(h)
	s.Handle("2+3*4")
	s.Handle("")
	s.Handle("(1")
	s.Handle("exit")
	require.Len(t, h.entries, 2)
	assert.Equal(t, "2+3*4", h.entries[0].Expr)
	assert.Equal(t, "14", h.entries[0].Result)
	assert.Empty(t, h.entries[0].Err)
	assert.Equal(t, "(1", h.entries[1].Expr)
	assert.Equal(t, "mismatched parentheses at position 0", h.entries[1].Err)
	assert.Equal(t, []string{"2+3*4", "(1"}, s.Recall(10))
	assert.Equal(t, []string{"(1"}, s.Recall(1))

	r := s.Handle("history")
	assert.False(t, r.Err)
	assert.Equal(t, "2+3*4  =  14\n(1  ->  Error: mismatched parentheses at position 0", r.Text)
}

func TestHandleHistoryFailure(t *testing.T) {
	h := &memHistory{fail: errors.New("disk full")}
	s := newSession(h)
	assert.Equal(t, Reply{Text: "4"}, s.Handle("2+2"))
	assert.Nil(t, s.Recall(5))
	assert.Equal(t, Reply{Text: "Error: disk full", Err: true}, s.Handle("history"))
}

func TestHistoryCommand(t *testing.T) {
	assert.Equal(t, "history is disabled", newSession(nil).Handle("history").Text)
	assert.Equal(t, "history is empty", newSession(new(memHistory)).Handle("history").Text)
	assert.Nil(t, newSession(nil).Recall(5))
}

func TestRunLines(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "exit",
			in:   "2+3*4\n\n1/0\nexit\n2+2\n",
			out: Banner + "\n" +
				Prompt + "14\n" +
				Prompt +
				Prompt + "Error: division by zero at position 1\n" +
				Prompt,
		},
		{
			name: "eof",
			in:   "(2+3)*4",
			out:  Banner + "\n" + Prompt + "20\n" + Prompt + "\n",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out bytes.Buffer
			err := newSession(nil).RunLines(strings.NewReader(c.in), &out)
			require.NoError(t, err)
			assert.Equal(t, c.out, out.String())
		})
	}
}
