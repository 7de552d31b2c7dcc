package convert

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/watbuild"
	"github.com/wippyai/watbuild/errors"
)

// Converter converts one job. The wabt backend is the production
// implementation; tests substitute fakes.
type Converter interface {
	// Command returns the invocation that Convert will run for job.
	Command(job watbuild.Job) watbuild.Command

	// Convert performs the conversion for job, blocking until done.
	Convert(ctx context.Context, job watbuild.Job) error
}

// Status classifies the outcome of one job.
type Status string

const (
	StatusConverted   Status = "converted"
	StatusFailed      Status = "failed"
	StatusInterrupted Status = "interrupted"
)

// JobResult records the outcome of a single job.
type JobResult struct {
	Job      watbuild.Job
	Command  string
	Status   Status
	Err      error
	Duration time.Duration
}

// Result aggregates the outcome of one batch run.
type Result struct {
	Jobs      []JobResult
	Converted int
	Failed    int

	// Interrupted is set when context cancellation stopped the batch
	// before every job was attempted.
	Interrupted bool

	Duration time.Duration
}

// Total returns the number of jobs attempted.
func (r Result) Total() int {
	return len(r.Jobs)
}

// HasFailures reports whether any job failed.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// FailedInputs returns the input paths of every failed job, in run order.
func (r Result) FailedInputs() []string {
	var failed []string
	for _, jr := range r.Jobs {
		if jr.Status == StatusFailed {
			failed = append(failed, jr.Job.Input)
		}
	}
	return failed
}

// Summary renders the one-line batch summary printed after every run.
func (r Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Batch summary: %d converted, %d failed (total: %d)",
		r.Converted, r.Failed, r.Total())
	if r.Interrupted {
		b.WriteString(" [interrupted]")
	}
	if r.Failed > 0 {
		fmt.Fprintf(&b, "\nFailed inputs: %s", strings.Join(r.FailedInputs(), ", "))
	}
	return b.String()
}

// Runner drives a batch of jobs through a Converter, strictly one at a
// time. Each job's command line is echoed to Echo before the tool runs.
type Runner struct {
	Converter Converter

	// Echo receives the rendered command line for each job before its
	// execution. Defaults to os.Stdout.
	Echo io.Writer

	// PostCheck, when set, runs after each successful conversion; an
	// error from it marks the job failed. Used for artifact validation.
	PostCheck func(ctx context.Context, job watbuild.Job) error
}

func (r *Runner) echo() io.Writer {
	if r.Echo != nil {
		return r.Echo
	}
	return os.Stdout
}

// Run processes jobs sequentially. A job failure never stops the batch;
// every remaining job is still attempted. Context cancellation does stop
// it, marking the result interrupted.
func (r *Runner) Run(ctx context.Context, jobs []watbuild.Job) Result {
	var result Result
	start := time.Now()

	for _, job := range jobs {
		if ctx.Err() != nil {
			result.Interrupted = true
			break
		}

		cmd := r.Converter.Command(job)
		fmt.Fprintln(r.echo(), cmd.String())

		jr := JobResult{Job: job, Command: cmd.String()}
		jobStart := time.Now()

		err := r.Converter.Convert(ctx, job)
		if err == nil && r.PostCheck != nil {
			err = r.PostCheck(ctx, job)
		}
		jr.Duration = time.Since(jobStart)

		switch {
		case err == nil:
			jr.Status = StatusConverted
			result.Converted++
			Logger().Debug("converted",
				zap.String("input", job.Input),
				zap.String("output", job.Output),
				zap.Duration("duration", jr.Duration))

		case interrupted(ctx, err):
			jr.Status = StatusInterrupted
			jr.Err = err
			result.Interrupted = true

		default:
			jr.Status = StatusFailed
			jr.Err = err
			result.Failed++
			Logger().Warn("conversion failed",
				zap.String("input", job.Input),
				zap.Error(err))
		}

		result.Jobs = append(result.Jobs, jr)
		if result.Interrupted {
			break
		}
	}

	result.Duration = time.Since(start)
	return result
}

// interrupted reports whether err is a cancellation outcome rather than a
// genuine per-job failure.
func interrupted(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	var werr *errors.Error
	return stderrors.As(err, &werr) && werr.Kind == errors.KindInterrupted
}
