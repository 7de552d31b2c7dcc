package wabt

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/mattn/go-shellwords"
	"go.uber.org/zap"

	"github.com/wippyai/watbuild"
	"github.com/wippyai/watbuild/errors"
)

// executor abstracts process execution for testing. Run spawns the tool
// with the given argument vector, waits for it to exit, and returns
// whatever the tool wrote to stderr alongside the exit error.
type executor interface {
	Run(ctx context.Context, path string, args []string) (stderr []byte, err error)
}

// osExecutor is the production executor backed by os/exec. No shell is
// involved; the argument vector is passed to the process as-is.
type osExecutor struct{}

func (osExecutor) Run(ctx context.Context, path string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.Bytes(), err
}

// Tool invokes an external wat2wasm-style conversion binary, once per job.
type Tool struct {
	// Path is the tool invocation path, e.g. "./wat2wasm".
	Path string

	// ExtraArgs are placed before the input path on every invocation,
	// e.g. []string{"--enable-multi-memory"}.
	ExtraArgs []string

	exec executor
}

// New returns a Tool invoking the binary at path with the given extra
// arguments on every job.
func New(path string, extraArgs ...string) *Tool {
	return &Tool{
		Path:      path,
		ExtraArgs: extraArgs,
		exec:      osExecutor{},
	}
}

// ParseArgs splits a user-supplied extra-arguments string into an argument
// vector using shell word rules. No shell ever runs; this only covers
// quoting in config values like `--debug-names --enable-multi-memory`.
func ParseArgs(s string) ([]string, error) {
	args, err := shellwords.Parse(s)
	if err != nil {
		return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Detail("cannot parse tool arguments %q", s).
			Cause(err).
			Build()
	}
	return args, nil
}

// Command builds the invocation for one job: tool path, extra arguments,
// input path, the -o flag, output path.
func (t *Tool) Command(job watbuild.Job) watbuild.Command {
	args := make([]string, 0, len(t.ExtraArgs)+3)
	args = append(args, t.ExtraArgs...)
	args = append(args, job.Input, "-o", job.Output)
	return watbuild.Command{Path: t.Path, Args: args}
}

// Convert runs the tool for one job and waits for it to exit. A nonzero
// exit, a tool that cannot be started, or a kill via ctx all surface as
// errors carrying the captured stderr tail.
func (t *Tool) Convert(ctx context.Context, job watbuild.Job) error {
	cmd := t.Command(job)

	Logger().Debug("invoking tool",
		zap.String("tool", cmd.Path),
		zap.Strings("args", cmd.Args))

	stderr, err := t.exec.Run(ctx, cmd.Path, cmd.Args)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return errors.Interrupted(errors.PhaseInvoke, ctx.Err())
	}
	return errors.ToolFailed(t.Path, job.Input, stderr, err)
}
