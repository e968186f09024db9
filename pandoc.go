package templatermd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// CommandRunner abstracts subprocess execution to enable testing without a
// real pandoc installation.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return "", "", fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", "", fmt.Errorf("starting command: %w", err)
	}

	stderrContent, err := io.ReadAll(stderrPipe)
	if err != nil {
		return "", "", fmt.Errorf("reading stderr: %w", err)
	}

	err = cmd.Wait()
	return stdout.String(), string(stderrContent), err
}

// pandocBinary is the renderer executable looked up on PATH.
const pandocBinary = "pandoc"

// PandocVersion returns the first line of `pandoc --version`, for
// diagnostics.
func PandocVersion(ctx context.Context, runner CommandRunner) (string, error) {
	stdout, stderr, err := runner.Run(ctx, "", pandocBinary, "--version")
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrPandoc, stderr, err)
	}
	if i := strings.IndexByte(stdout, '\n'); i >= 0 {
		stdout = stdout[:i]
	}
	return stdout, nil
}
