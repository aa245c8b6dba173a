// Package confirm provides implementations of the operator confirmation
// capability used at the memory gate.
package confirm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/user/mcap2video/pkg/ports"
)

// Prompt asks the operator on the terminal. When stdin is not a
// terminal the prompt cannot be answered, so it declines: the
// non-interactive default is to abort.
type Prompt struct {
	in  io.Reader
	out io.Writer
	tty bool
}

// NewPrompt creates a Prompt over stdin/stderr.
func NewPrompt() *Prompt {
	return &Prompt{
		in:  os.Stdin,
		out: os.Stderr,
		tty: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}
}

// Confirm prints the prompt and reads a yes/no answer. Only an explicit
// "y" or "yes" proceeds.
func (p *Prompt) Confirm(prompt string) (bool, error) {
	if !p.tty {
		return false, nil
	}

	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("confirm: read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Policy is a fixed non-interactive confirmation decision.
type Policy bool

const (
	// AlwaysProceed answers every confirmation with yes.
	AlwaysProceed Policy = true
	// AlwaysDecline answers every confirmation with no.
	AlwaysDecline Policy = false
)

// Confirm returns the fixed decision.
func (p Policy) Confirm(prompt string) (bool, error) {
	return bool(p), nil
}

// Ensure implementations satisfy ports.Confirmer
var (
	_ ports.Confirmer = (*Prompt)(nil)
	_ ports.Confirmer = AlwaysProceed
)
