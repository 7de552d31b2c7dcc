package validate

import (
	"context"
	"os"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/watbuild"
	"github.com/wippyai/watbuild/errors"
)

// Checker decodes produced artifacts to confirm the tool emitted a
// structurally valid module. It never instantiates or runs anything.
type Checker struct {
	runtime wazero.Runtime
}

// New creates a Checker backed by a fresh wazero runtime.
func New(ctx context.Context) *Checker {
	cfg := wazero.NewRuntimeConfig()
	return &Checker{
		runtime: wazero.NewRuntimeWithConfig(ctx, cfg),
	}
}

// Check reads the artifact at path and compiles it. A read failure or a
// module that fails to decode marks the artifact bad.
func (c *Checker) Check(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.IO(errors.PhaseValidate, path, err)
	}

	compiled, err := c.runtime.CompileModule(ctx, data)
	if err != nil {
		return errors.BadArtifact(path, err)
	}
	return compiled.Close(ctx)
}

// CheckJob adapts Check to the convert.Runner post-check hook, validating
// the job's output artifact.
func (c *Checker) CheckJob(ctx context.Context, job watbuild.Job) error {
	return c.Check(ctx, job.Output)
}

// Close releases the underlying runtime and its compilation caches.
func (c *Checker) Close(ctx context.Context) error {
	return c.runtime.Close(ctx)
}
