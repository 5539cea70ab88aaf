package cli

import (
	"bytes"
	"testing"
)

// CLI runs goldfish commands in-process for tests. It fakes a home
// directory so every invocation is hermetic: the cache and config land
// under a per-test temp dir.
type CLI struct {
	t   *testing.T
	Dir string // fake $HOME
	Env map[string]string
}

// NewCLI creates a test CLI rooted in a fresh temp home.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	dir := t.TempDir()

	return &CLI{
		t:   t,
		Dir: dir,
		Env: map[string]string{"HOME": dir},
	}
}

// Run executes the CLI with the given args and returns stdout, stderr and
// the exit code. Args should not include the leading "goldfish".
func (r *CLI) Run(args ...string) (string, string, int) {
	r.t.Helper()

	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"goldfish"}, args...)
	code := Run(nil, &outBuf, &errBuf, fullArgs, r.Env)

	return outBuf.String(), errBuf.String(), code
}

// MustRun is Run but fails the test on a non-zero exit code.
func (r *CLI) MustRun(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code != 0 {
		r.t.Fatalf("goldfish %v exited %d\nstderr: %s", args, code, stderr)
	}

	return stdout
}
