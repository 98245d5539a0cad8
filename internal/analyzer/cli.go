package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CLIAnalyzer shells out to a local AI CLI binary. The prompt goes to the
// process on stdin and the response comes back on stdout; a nonzero exit
// turns the process's stderr into the error text.
type CLIAnalyzer struct {
	BinaryPath string
	Timeout    time.Duration
}

func NewCLIAnalyzer(binaryPath string, timeout time.Duration) *CLIAnalyzer {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &CLIAnalyzer{BinaryPath: binaryPath, Timeout: timeout}
}

func (c *CLIAnalyzer) Name() string { return "cli:" + c.BinaryPath }

func (c *CLIAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	if c.BinaryPath == "" {
		return "", fmt.Errorf("no analyzer binary configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.BinaryPath)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("analyzer binary failed: %s", msg)
		}
		return "", fmt.Errorf("analyzer binary failed: %w", err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
