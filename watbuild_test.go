package watbuild

import "testing"

func TestCommandString(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{
			name: "standard invocation",
			cmd: Command{
				Path: "./wat2wasm",
				Args: []string{"wat/a.wat", "-o", "wasm/a.wasm"},
			},
			want: "./wat2wasm wat/a.wat -o wasm/a.wasm",
		},
		{
			name: "no args",
			cmd:  Command{Path: "./wat2wasm"},
			want: "./wat2wasm",
		},
		{
			name: "extra tool args",
			cmd: Command{
				Path: "wat2wasm",
				Args: []string{"--debug-names", "wat/m.wat", "-o", "wasm/m.wasm"},
			},
			want: "wat2wasm --debug-names wat/m.wat -o wasm/m.wasm",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	// The defaults are the original fixed layout; a bare run must keep
	// producing exactly these paths.
	if DefaultInputDir != "wat" || DefaultOutputDir != "wasm" {
		t.Errorf("default dirs = %q, %q", DefaultInputDir, DefaultOutputDir)
	}
	if DefaultTool != "./wat2wasm" {
		t.Errorf("default tool = %q", DefaultTool)
	}
	if InputExt != ".wat" || OutputExt != ".wasm" {
		t.Errorf("extensions = %q, %q", InputExt, OutputExt)
	}
}
