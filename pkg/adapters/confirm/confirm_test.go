package confirm

import (
	"bytes"
	"strings"
	"testing"
)

func promptWith(input string, tty bool) (*Prompt, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &Prompt{
		in:  strings.NewReader(input),
		out: out,
		tty: tty,
	}, out
}

func TestPrompt_Confirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{" y \n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"maybe\n", false},
		{"", false}, // EOF without answer declines
	}

	for _, c := range cases {
		p, out := promptWith(c.input, true)
		got, err := p.Confirm("continue?")
		if err != nil {
			t.Errorf("input %q: unexpected error %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("input %q: got %v, want %v", c.input, got, c.want)
		}
		if !strings.Contains(out.String(), "continue?") {
			t.Errorf("input %q: prompt not printed", c.input)
		}
	}
}

func TestPrompt_NonTerminalDeclines(t *testing.T) {
	p, out := promptWith("y\n", false)
	got, err := p.Confirm("continue?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Error("non-terminal stdin must decline")
	}
	if out.Len() != 0 {
		t.Error("no prompt should be printed without a terminal")
	}
}

func TestPolicy(t *testing.T) {
	if ok, err := AlwaysProceed.Confirm("x"); err != nil || !ok {
		t.Errorf("AlwaysProceed = (%v, %v), want (true, nil)", ok, err)
	}
	if ok, err := AlwaysDecline.Confirm("x"); err != nil || ok {
		t.Errorf("AlwaysDecline = (%v, %v), want (false, nil)", ok, err)
	}
}
