// Package main is the entry point for the watbuild CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/watbuild"
	"github.com/wippyai/watbuild/convert"
	"github.com/wippyai/watbuild/errors"
	"github.com/wippyai/watbuild/ledger"
	"github.com/wippyai/watbuild/report"
	"github.com/wippyai/watbuild/scan"
	"github.com/wippyai/watbuild/validate"
	"github.com/wippyai/watbuild/wabt"
	"github.com/wippyai/watbuild/watch"
)

// version is set at build time via ldflags.
var version = "dev"

// config holds the effective settings for one invocation, resolved from
// flags, WATBUILD_* environment variables, and an optional watbuild.yaml.
type config struct {
	InputDir   string
	OutputDir  string
	Tool       string
	ToolArgs   []string
	Validate   bool
	ReportPath string
	LedgerPath string
	Verbose    bool
}

var rootCmd = &cobra.Command{
	Use:   "watbuild",
	Short: "Batch-convert WebAssembly text fixtures into binary modules",
	Long: `watbuild enumerates .wat sources in an input directory and invokes an
external wat2wasm binary once per file, sequentially, echoing each command
line before it runs. The tool performs all of the actual conversion;
watbuild owns the orchestration: enumeration, output naming, failure
collection, and optional validation, reports, and run history.

With no flags it reproduces the classic fixed layout: wat/*.wat compiled
into wasm/ with ./wat2wasm.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg.Verbose)

		interactive, _ := cmd.Flags().GetBool("interactive")
		if interactive {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("interactive mode requires a terminal")
			}
			return runInteractive(cmd.Context(), cfg)
		}

		result, err := runBatch(cmd.Context(), cfg, os.Stdout)
		if err != nil {
			return err
		}
		fmt.Println(result.Summary())
		return batchExitError(result)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./watbuild.yaml or ~/.config/watbuild/watbuild.yaml)")
	pf.String("input-dir", watbuild.DefaultInputDir, "directory holding .wat sources")
	pf.String("output-dir", watbuild.DefaultOutputDir, "directory receiving .wasm artifacts")
	pf.String("tool", watbuild.DefaultTool, "conversion tool invocation path")
	pf.String("tool-args", "", "extra tool arguments, shell-style quoted")
	pf.Bool("validate", false, "decode each produced artifact and fail the job if it is not a valid module")
	pf.String("report", "", "write a YAML run report to this path")
	pf.String("ledger", "", "append run history to this SQLite database")
	pf.Bool("verbose", false, "enable debug logging")

	rootCmd.Flags().BoolP("interactive", "i", false, "interactive mode with TUI")

	for _, key := range []string{
		"input-dir", "output-dir", "tool", "tool-args",
		"validate", "report", "ledger", "verbose",
	} {
		if err := viper.BindPFlag(key, pf.Lookup(key)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("watbuild")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "watbuild"))
		}
	}

	viper.SetEnvPrefix("WATBUILD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration from viper.
func loadConfig() (config, error) {
	cfg := config{
		InputDir:   viper.GetString("input-dir"),
		OutputDir:  viper.GetString("output-dir"),
		Tool:       viper.GetString("tool"),
		Validate:   viper.GetBool("validate"),
		ReportPath: viper.GetString("report"),
		LedgerPath: viper.GetString("ledger"),
		Verbose:    viper.GetBool("verbose"),
	}

	args, err := wabt.ParseArgs(viper.GetString("tool-args"))
	if err != nil {
		return config{}, err
	}
	cfg.ToolArgs = args
	return cfg, nil
}

// setupLogging builds the real zap logger and injects it into the library
// packages, which are no-op by default.
func setupLogging(verbose bool) {
	var logger *zap.Logger
	if verbose {
		logger, _ = zap.NewDevelopment()
	} else {
		prodCfg := zap.NewProductionConfig()
		prodCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		logger, _ = prodCfg.Build()
	}
	if logger == nil {
		return
	}
	convert.SetLogger(logger.Named("convert"))
	wabt.SetLogger(logger.Named("wabt"))
	watch.SetLogger(logger.Named("watch"))
}

// runBatch executes one full conversion batch: enumerate, convert
// sequentially with the command echo on echo, then write the optional
// report and ledger entries.
func runBatch(ctx context.Context, cfg config, echo io.Writer) (convert.Result, error) {
	started := time.Now()

	jobs, err := scan.Jobs(cfg.InputDir, cfg.OutputDir)
	if err != nil {
		return convert.Result{}, err
	}

	if len(jobs) > 0 {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return convert.Result{}, errors.IO(errors.PhasePlan, cfg.OutputDir, err)
		}
	}

	runner := convert.Runner{
		Converter: wabt.New(cfg.Tool, cfg.ToolArgs...),
		Echo:      echo,
	}
	if cfg.Validate {
		checker := validate.New(ctx)
		defer checker.Close(ctx)
		runner.PostCheck = checker.CheckJob
	}

	result := runner.Run(ctx, jobs)

	if cfg.ReportPath != "" {
		rep := report.New(report.Meta{
			Tool:      cfg.Tool,
			InputDir:  cfg.InputDir,
			OutputDir: cfg.OutputDir,
			Started:   started,
		}, result)
		if err := rep.Write(cfg.ReportPath); err != nil {
			return result, err
		}
	}

	if cfg.LedgerPath != "" {
		store, err := ledger.Open(cfg.LedgerPath)
		if err != nil {
			return result, err
		}
		defer store.Close()
		if err := store.Record(ctx, ledger.Run{
			Tool:      cfg.Tool,
			InputDir:  cfg.InputDir,
			OutputDir: cfg.OutputDir,
			Started:   started,
		}, result); err != nil {
			return result, err
		}
	}

	return result, nil
}

// batchExitError turns a finished batch into the CLI exit outcome: nil on
// full success, an error naming the damage otherwise.
func batchExitError(result convert.Result) error {
	if result.Interrupted {
		return fmt.Errorf("run interrupted after %d jobs", result.Total())
	}
	if result.HasFailures() {
		return fmt.Errorf("%d of %d conversions failed", result.Failed, result.Total())
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
