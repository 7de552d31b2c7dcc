package report

import (
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/wippyai/watbuild/convert"
	"github.com/wippyai/watbuild/errors"
)

// Meta describes the run configuration a report was produced under.
type Meta struct {
	Tool      string
	InputDir  string
	OutputDir string
	Started   time.Time
}

// Job is one job's outcome as it appears in a report.
type Job struct {
	Input      string `yaml:"input"`
	Output     string `yaml:"output"`
	Command    string `yaml:"command"`
	Status     string `yaml:"status"`
	DurationMS int64  `yaml:"duration_ms"`
	Error      string `yaml:"error,omitempty"`
}

// Report is the full YAML document written after a run.
type Report struct {
	Tool        string `yaml:"tool"`
	InputDir    string `yaml:"input_dir"`
	OutputDir   string `yaml:"output_dir"`
	Started     string `yaml:"started"`
	DurationMS  int64  `yaml:"duration_ms"`
	Converted   int    `yaml:"converted"`
	Failed      int    `yaml:"failed"`
	Interrupted bool   `yaml:"interrupted,omitempty"`
	Jobs        []Job  `yaml:"jobs"`
}

// New builds a Report from a run's metadata and result. Jobs appear in run
// order with the exact command strings that were echoed.
func New(meta Meta, result convert.Result) Report {
	r := Report{
		Tool:        meta.Tool,
		InputDir:    meta.InputDir,
		OutputDir:   meta.OutputDir,
		Started:     meta.Started.UTC().Format(time.RFC3339),
		DurationMS:  result.Duration.Milliseconds(),
		Converted:   result.Converted,
		Failed:      result.Failed,
		Interrupted: result.Interrupted,
		Jobs:        make([]Job, 0, len(result.Jobs)),
	}
	for _, jr := range result.Jobs {
		job := Job{
			Input:      jr.Job.Input,
			Output:     jr.Job.Output,
			Command:    jr.Command,
			Status:     string(jr.Status),
			DurationMS: jr.Duration.Milliseconds(),
		}
		if jr.Err != nil {
			job.Error = jr.Err.Error()
		}
		r.Jobs = append(r.Jobs, job)
	}
	return r
}

// Write marshals the report and writes it to path.
func (r Report) Write(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return errors.Wrap(errors.PhaseReport, errors.KindIO, err, "marshaling report")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.IO(errors.PhaseReport, path, err)
	}
	return nil
}

// Load reads a report back from path. Used by tests and tooling that
// post-processes run reports.
func Load(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, errors.IO(errors.PhaseReport, path, err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Report{}, errors.Wrap(errors.PhaseReport, errors.KindInvalidInput, err, "parsing report")
	}
	return r, nil
}
