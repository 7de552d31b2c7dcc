package scan

import (
	"path/filepath"
	"strings"

	"github.com/wippyai/watbuild"
	"github.com/wippyai/watbuild/errors"
)

// Inputs returns every file directly under dir whose name ends in the input
// extension, in the sorted order filepath.Glob produces. A directory that
// does not exist or contains no matching files yields an empty slice and no
// error.
func Inputs(dir string) ([]string, error) {
	pattern := filepath.Join(dir, "*"+watbuild.InputExt)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.InvalidInput(errors.PhaseScan, "bad input pattern "+pattern)
	}
	return matches, nil
}

// OutputName derives the output base name for an input base name by
// replacing the input extension suffix with the output extension. A name
// that does not carry the input extension passes through unchanged.
func OutputName(base string) string {
	if !strings.HasSuffix(base, watbuild.InputExt) {
		return base
	}
	return strings.TrimSuffix(base, watbuild.InputExt) + watbuild.OutputExt
}

// Jobs enumerates inputDir and pairs every input with its derived output
// path under outputDir. The job order is the enumeration order.
func Jobs(inputDir, outputDir string) ([]watbuild.Job, error) {
	inputs, err := Inputs(inputDir)
	if err != nil {
		return nil, err
	}

	jobs := make([]watbuild.Job, len(inputs))
	for i, in := range inputs {
		jobs[i] = watbuild.Job{
			Input:  in,
			Output: filepath.Join(outputDir, OutputName(filepath.Base(in))),
		}
	}
	return jobs, nil
}
