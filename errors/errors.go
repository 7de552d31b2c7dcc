package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in a run the error occurred
type Phase string

const (
	PhaseScan     Phase = "scan"     // input enumeration
	PhasePlan     Phase = "plan"     // output-name derivation
	PhaseInvoke   Phase = "invoke"   // external tool execution
	PhaseValidate Phase = "validate" // artifact decoding check
	PhaseWatch    Phase = "watch"    // filesystem watch loop
	PhaseReport   Phase = "report"   // run report writing
	PhaseLedger   Phase = "ledger"   // run history store
	PhaseConfig   Phase = "config"   // flag/env/file configuration
)

// Kind categorizes the error
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindInvalidInput Kind = "invalid_input"
	KindToolFailed   Kind = "tool_failed"
	KindBadArtifact  Kind = "bad_artifact"
	KindIO           Kind = "io"
	KindInterrupted  Kind = "interrupted"
)

// stderrTailLimit bounds how much captured tool stderr an error carries.
const stderrTailLimit = 2048

// Error is the structured error type used throughout the driver
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	File   string // input or artifact path the error is about, if any
	Tool   string // tool invocation path, for invoke errors
	Detail string
	Stderr string // bounded tail of the tool's stderr, for invoke errors
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.File != "" {
		b.WriteString(" at ")
		b.WriteString(e.File)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Stderr != "" {
		b.WriteString(" - stderr: ")
		b.WriteString(e.Stderr)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// File sets the file path the error is about
func (b *Builder) File(path string) *Builder {
	b.err.File = path
	return b
}

// Tool sets the tool invocation path
func (b *Builder) Tool(path string) *Builder {
	b.err.Tool = path
	return b
}

// Stderr attaches a bounded tail of captured tool stderr
func (b *Builder) Stderr(out []byte) *Builder {
	b.err.Stderr = tail(out)
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// tail returns the trailing stderrTailLimit bytes of out, trimmed of
// surrounding whitespace.
func tail(out []byte) string {
	s := strings.TrimSpace(string(out))
	if len(s) > stderrTailLimit {
		s = s[len(s)-stderrTailLimit:]
	}
	return s
}

// Convenience constructors for common error patterns

// ToolFailed creates an error for a conversion tool invocation that exited
// nonzero or could not be started.
func ToolFailed(tool, input string, stderr []byte, cause error) *Error {
	return &Error{
		Phase:  PhaseInvoke,
		Kind:   KindToolFailed,
		File:   input,
		Tool:   tool,
		Detail: fmt.Sprintf("%s exited with error", tool),
		Stderr: tail(stderr),
		Cause:  cause,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// BadArtifact creates an error for a produced artifact that failed the
// decoding check.
func BadArtifact(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindBadArtifact,
		File:   path,
		Detail: "artifact is not a decodable module",
		Cause:  cause,
	}
}

// Interrupted creates an error for a run stopped by context cancellation.
func Interrupted(phase Phase, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInterrupted,
		Detail: "run interrupted",
		Cause:  cause,
	}
}

// IO wraps a filesystem error with phase context.
func IO(phase Phase, path string, cause error) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindIO,
		File:  path,
		Cause: cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
