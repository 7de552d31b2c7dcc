package scan

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFiles creates empty files with the given names under dir.
func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestInputs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.wat", "b.wat", "c.txt", "d.wasm")

	inputs, err := Inputs(dir)
	if err != nil {
		t.Fatalf("Inputs: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.wat"),
		filepath.Join(dir, "b.wat"),
	}
	if len(inputs) != len(want) {
		t.Fatalf("got %d inputs %v, want %d", len(inputs), inputs, len(want))
	}
	for i, in := range inputs {
		if in != want[i] {
			t.Errorf("inputs[%d] = %q, want %q", i, in, want[i])
		}
	}
}

func TestInputs_MissingDir(t *testing.T) {
	inputs, err := Inputs(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("Inputs on missing dir: %v", err)
	}
	if len(inputs) != 0 {
		t.Errorf("got %d inputs from missing dir, want 0", len(inputs))
	}
}

func TestInputs_EmptyDir(t *testing.T) {
	inputs, err := Inputs(t.TempDir())
	if err != nil {
		t.Fatalf("Inputs on empty dir: %v", err)
	}
	if len(inputs) != 0 {
		t.Errorf("got %d inputs from empty dir, want 0", len(inputs))
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"a.wat", "a.wasm"},
		{"module.test.wat", "module.test.wasm"},
		{".wat", ".wasm"},
		// Names without the input suffix pass through unchanged.
		{"a.txt", "a.txt"},
		{"wat", "wat"},
		{"a.WAT", "a.WAT"},
	}
	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			if got := OutputName(tt.base); got != tt.want {
				t.Errorf("OutputName(%q) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestJobs(t *testing.T) {
	dir := t.TempDir()
	inputDir := filepath.Join(dir, "wat")
	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFiles(t, inputDir, "a.wat", "b.wat", "notes.txt")

	jobs, err := Jobs(inputDir, filepath.Join(dir, "wasm"))
	if err != nil {
		t.Fatalf("Jobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}

	if jobs[0].Input != filepath.Join(inputDir, "a.wat") {
		t.Errorf("jobs[0].Input = %q", jobs[0].Input)
	}
	if jobs[0].Output != filepath.Join(dir, "wasm", "a.wasm") {
		t.Errorf("jobs[0].Output = %q", jobs[0].Output)
	}
	if jobs[1].Output != filepath.Join(dir, "wasm", "b.wasm") {
		t.Errorf("jobs[1].Output = %q", jobs[1].Output)
	}
}

func TestJobs_DefaultLayout(t *testing.T) {
	// Relative default directories produce the exact paths the driver has
	// always echoed.
	t.Chdir(t.TempDir())

	if err := os.MkdirAll("wat", 0o755); err != nil {
		t.Fatal(err)
	}
	writeFiles(t, "wat", "a.wat")

	jobs, err := Jobs("wat", "wasm")
	if err != nil {
		t.Fatalf("Jobs: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1", len(jobs))
	}
	if jobs[0].Input != filepath.Join("wat", "a.wat") {
		t.Errorf("Input = %q, want %q", jobs[0].Input, filepath.Join("wat", "a.wat"))
	}
	if jobs[0].Output != filepath.Join("wasm", "a.wasm") {
		t.Errorf("Output = %q, want %q", jobs[0].Output, filepath.Join("wasm", "a.wasm"))
	}
}
