package testsupport

import (
	"context"
	"fmt"
	"sync"
)

// StubTranslator records calls and answers "[to] text". Fail makes the
// call with that text return an error.
type StubTranslator struct {
	Fail string

	mu    sync.Mutex
	calls []string
}

// Translate implements the translator interface used by session and tmcache.
func (s *StubTranslator) Translate(_ context.Context, text, _, to string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, text)
	if s.Fail != "" && text == s.Fail {
		return "", fmt.Errorf("stub translator: refused %q", text)
	}
	return fmt.Sprintf("[%s] %s", to, text), nil
}

// Calls returns the texts passed to Translate in order.
func (s *StubTranslator) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}
