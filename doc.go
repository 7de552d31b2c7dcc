// Package watbuild drives batch conversion of WebAssembly text-format
// fixtures into binary modules using an external wat2wasm binary.
//
// The driver enumerates .wat sources in an input directory, derives the
// .wasm output path for each by suffix substitution, echoes the exact
// command line it is about to run, and spawns the conversion tool once per
// file, sequentially. The tool performs all of the actual format
// conversion; watbuild owns only the orchestration around it.
//
// # Architecture Overview
//
// The repository is organized into small packages with one responsibility
// each:
//
//	watbuild/        Root package with the Job and Command data model
//	├── scan/        Input enumeration and output-name derivation
//	├── wabt/        External toolchain backend (argv spawn, stderr capture)
//	├── convert/     Sequential batch runner and result aggregation
//	├── validate/    Optional artifact decoding check via wazero
//	├── watch/       Optional rebuild-on-change development loop
//	├── report/      Optional YAML run reports
//	├── ledger/      Optional SQLite run history
//	├── errors/      Structured error types shared across packages
//	└── cmd/watbuild CLI entry point
//
// # Quick Start
//
// Convert every fixture under wat/ into wasm/ with the tool at ./wat2wasm:
//
//	jobs, err := scan.Jobs(watbuild.DefaultInputDir, watbuild.DefaultOutputDir)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	runner := convert.Runner{
//	    Converter: wabt.New(watbuild.DefaultTool),
//	    Echo:      os.Stdout,
//	}
//	result := runner.Run(ctx, jobs)
//	fmt.Println(result.Summary())
//
// # Failure Model
//
// A failing conversion never stops the batch: every job is attempted, each
// outcome is recorded, and the aggregate result reports which inputs
// failed. Callers decide whether a partial failure is fatal (the CLI exits
// nonzero when any job failed).
//
// # Ordering
//
// Inputs are processed in the sorted order filepath.Glob returns. Runs over
// an unchanged corpus are fully repeatable: same job list, same command
// lines, full work every time. There is no incremental skip logic anywhere.
package watbuild
