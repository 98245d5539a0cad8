package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type stubBackend struct {
	name   string
	output string
	err    error
	calls  int
}

func (s *stubBackend) Name() string { return s.name }

func (s *stubBackend) Analyze(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.output, s.err
}

func TestChainFallsBack(t *testing.T) {
	broken := &stubBackend{name: "broken", err: errors.New("binary not found")}
	working := &stubBackend{name: "working", output: "summary text"}

	chain := NewChain(broken, working)
	got, err := chain.Analyze(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got != "summary text" {
		t.Errorf("got %q", got)
	}
	if broken.calls != 1 || working.calls != 1 {
		t.Errorf("calls = %d, %d; want 1, 1", broken.calls, working.calls)
	}
}

func TestChainFirstSuccessShortCircuits(t *testing.T) {
	first := &stubBackend{name: "first", output: "from first"}
	second := &stubBackend{name: "second", output: "from second"}

	chain := NewChain(first, second)
	got, err := chain.Analyze(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got != "from first" {
		t.Errorf("got %q", got)
	}
	if second.calls != 0 {
		t.Errorf("second backend should not run after a success")
	}
}

func TestChainAllFail(t *testing.T) {
	chain := NewChain(
		&stubBackend{name: "a", err: errors.New("down")},
		&stubBackend{name: "b", err: errors.New("also down")},
	)
	if _, err := chain.Analyze(context.Background(), "prompt"); err == nil {
		t.Fatal("expected an error when every backend fails")
	}

	empty := NewChain()
	if _, err := empty.Analyze(context.Background(), "prompt"); err == nil {
		t.Fatal("expected an error with no backends configured")
	}
}

func TestCLIAnalyzerEchoesStdout(t *testing.T) {
	// cat echoes stdin, which is exactly the prompt-on-stdin contract.
	cli := NewCLIAnalyzer("cat", 10*time.Second)
	got, err := cli.Analyze(context.Background(), "hello prompt\n")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got != "hello prompt" {
		t.Errorf("got %q; output should be trimmed", got)
	}
}

func TestCLIAnalyzerMissingBinary(t *testing.T) {
	cli := NewCLIAnalyzer("", time.Second)
	if _, err := cli.Analyze(context.Background(), "prompt"); err == nil {
		t.Fatal("empty binary path should error")
	}

	cli = NewCLIAnalyzer("/nonexistent/analyzer-binary", time.Second)
	if _, err := cli.Analyze(context.Background(), "prompt"); err == nil {
		t.Fatal("missing binary should error")
	}
}

func TestBuildSummaryPrompt(t *testing.T) {
	prompt := BuildSummaryPrompt([]string{"good sound", "bad strap"})
	for _, want := range []string{
		"Product Overall Star Rating",
		"Overall Impression",
		"Summary of Positive Feedbacks",
		"Summary of Negative Feedbacks",
		"good sound bad strap",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
