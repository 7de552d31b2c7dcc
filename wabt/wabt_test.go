package wabt

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/wippyai/watbuild"
	"github.com/wippyai/watbuild/errors"
)

// fakeExecutor records invocations and returns canned stderr and errors.
type fakeExecutor struct {
	calls  [][]string
	stderr []byte
	err    error
}

func (f *fakeExecutor) Run(ctx context.Context, path string, args []string) ([]byte, error) {
	call := append([]string{path}, args...)
	f.calls = append(f.calls, call)
	return f.stderr, f.err
}

func TestCommand(t *testing.T) {
	tests := []struct {
		name string
		tool *Tool
		job  watbuild.Job
		want string
	}{
		{
			name: "default invocation",
			tool: New("./wat2wasm"),
			job:  watbuild.Job{Input: "wat/a.wat", Output: "wasm/a.wasm"},
			want: "./wat2wasm wat/a.wat -o wasm/a.wasm",
		},
		{
			name: "extra args before input",
			tool: New("./wat2wasm", "--enable-multi-memory", "--debug-names"),
			job:  watbuild.Job{Input: "wat/b.wat", Output: "wasm/b.wasm"},
			want: "./wat2wasm --enable-multi-memory --debug-names wat/b.wat -o wasm/b.wasm",
		},
		{
			name: "tool on PATH",
			tool: New("wat2wasm"),
			job:  watbuild.Job{Input: "wat/a.wat", Output: "wasm/a.wasm"},
			want: "wat2wasm wat/a.wat -o wasm/a.wasm",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tool.Command(tt.job).String(); got != tt.want {
				t.Errorf("Command = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "--enable-multi-memory --debug-names", want: []string{"--enable-multi-memory", "--debug-names"}},
		{in: `--custom "two words"`, want: []string{"--custom", "two words"}},
		{in: `--broken "unterminated`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseArgs(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseArgs(%q): expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseArgs(%q): %v", tt.in, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseArgs(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("args[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestConvert_Success(t *testing.T) {
	fake := &fakeExecutor{}
	tool := New("./wat2wasm")
	tool.exec = fake

	job := watbuild.Job{Input: "wat/a.wat", Output: "wasm/a.wasm"}
	if err := tool.Convert(context.Background(), job); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if len(fake.calls) != 1 {
		t.Fatalf("got %d invocations, want 1", len(fake.calls))
	}
	got := strings.Join(fake.calls[0], " ")
	if got != "./wat2wasm wat/a.wat -o wasm/a.wasm" {
		t.Errorf("invocation = %q", got)
	}
}

func TestConvert_ToolFailure(t *testing.T) {
	fake := &fakeExecutor{
		stderr: []byte("a.wat:3:1: error: unexpected token\n"),
		err:    stderrors.New("exit status 1"),
	}
	tool := New("./wat2wasm")
	tool.exec = fake

	err := tool.Convert(context.Background(), watbuild.Job{Input: "wat/a.wat", Output: "wasm/a.wasm"})
	if err == nil {
		t.Fatal("expected error")
	}

	var werr *errors.Error
	if !stderrors.As(err, &werr) {
		t.Fatalf("error type %T, want *errors.Error", err)
	}
	if werr.Kind != errors.KindToolFailed {
		t.Errorf("Kind = %q, want %q", werr.Kind, errors.KindToolFailed)
	}
	if werr.File != "wat/a.wat" {
		t.Errorf("File = %q", werr.File)
	}
	if !strings.Contains(werr.Stderr, "unexpected token") {
		t.Errorf("Stderr = %q, want captured tool output", werr.Stderr)
	}
}

func TestConvert_Canceled(t *testing.T) {
	fake := &fakeExecutor{err: stderrors.New("signal: killed")}
	tool := New("./wat2wasm")
	tool.exec = fake

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tool.Convert(ctx, watbuild.Job{Input: "wat/a.wat", Output: "wasm/a.wasm"})
	var werr *errors.Error
	if !stderrors.As(err, &werr) {
		t.Fatalf("error type %T, want *errors.Error", err)
	}
	if werr.Kind != errors.KindInterrupted {
		t.Errorf("Kind = %q, want %q", werr.Kind, errors.KindInterrupted)
	}
}

// TestConvert_StubTool exercises the real executor against a stub tool
// script that fails, verifying exit status and stderr make it back intact.
func TestConvert_StubTool(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub tool")
	}

	dir := t.TempDir()
	stub := filepath.Join(dir, "wat2wasm")
	script := "#!/bin/sh\necho \"$1: conversion failed\" >&2\nexit 1\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	tool := New(stub)
	job := watbuild.Job{
		Input:  filepath.Join(dir, "a.wat"),
		Output: filepath.Join(dir, "a.wasm"),
	}
	err := tool.Convert(context.Background(), job)
	if err == nil {
		t.Fatal("expected failure from stub tool")
	}

	var werr *errors.Error
	if !stderrors.As(err, &werr) {
		t.Fatalf("error type %T, want *errors.Error", err)
	}
	if werr.Kind != errors.KindToolFailed {
		t.Errorf("Kind = %q, want %q", werr.Kind, errors.KindToolFailed)
	}
	if !strings.Contains(werr.Stderr, "conversion failed") {
		t.Errorf("Stderr = %q, want stub output", werr.Stderr)
	}
}

// TestConvert_MissingTool verifies a nonexistent binary surfaces as a
// per-job tool failure, not a panic or silent success.
func TestConvert_MissingTool(t *testing.T) {
	tool := New(filepath.Join(t.TempDir(), "no-such-tool"))
	err := tool.Convert(context.Background(), watbuild.Job{Input: "a.wat", Output: "a.wasm"})

	var werr *errors.Error
	if !stderrors.As(err, &werr) {
		t.Fatalf("error type %T, want *errors.Error", err)
	}
	if werr.Kind != errors.KindToolFailed {
		t.Errorf("Kind = %q, want %q", werr.Kind, errors.KindToolFailed)
	}
}
