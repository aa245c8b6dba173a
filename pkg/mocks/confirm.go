package mocks

import (
	"sync"

	"github.com/user/mcap2video/pkg/ports"
)

// Confirmer is a mock implementation of ports.Confirmer.
type Confirmer struct {
	mu sync.Mutex

	Answer bool
	Err    error

	ConfirmFunc func(prompt string) (bool, error)

	Prompts []string
}

// NewConfirmer creates a mock that always answers the given value.
func NewConfirmer(answer bool) *Confirmer {
	return &Confirmer{Answer: answer}
}

func (m *Confirmer) Confirm(prompt string) (bool, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(prompt)
	}
	return m.Answer, m.Err
}

// PromptCount returns how many times Confirm was called.
func (m *Confirmer) PromptCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

var _ ports.Confirmer = (*Confirmer)(nil)
