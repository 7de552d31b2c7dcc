package watbuild

import "strings"

// Default locations and extensions of the fixture corpus. A bare run of the
// driver uses exactly these, matching the layout the tool has always built.
const (
	DefaultInputDir  = "wat"
	DefaultOutputDir = "wasm"
	DefaultTool      = "./wat2wasm"

	InputExt  = ".wat"
	OutputExt = ".wasm"
)

// Job is one unit of conversion work: a source text-format file and the
// binary artifact path derived from it.
type Job struct {
	Input  string
	Output string
}

// Command is a ready-to-spawn tool invocation. Args holds discrete argument
// vector entries; no shell is ever involved.
type Command struct {
	Path string
	Args []string
}

// String renders the invocation the way it is echoed to the console:
// path and arguments space-joined, e.g.
//
//	./wat2wasm wat/a.wat -o wasm/a.wasm
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Path
	}
	return c.Path + " " + strings.Join(c.Args, " ")
}
