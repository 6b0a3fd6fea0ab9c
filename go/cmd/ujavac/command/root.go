// Copyright 2025 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ujavac/ujavac/go/common/constants"
	"github.com/ujavac/ujavac/go/common/diag"
	"github.com/ujavac/ujavac/go/common/ujerrors"
	"github.com/ujavac/ujavac/go/compiler"
	"github.com/ujavac/ujavac/go/servenv"
	"github.com/ujavac/ujavac/go/viperutil"
	"github.com/ujavac/ujavac/go/viperutil/debug"
)

// Exit statuses of the ujavac binary.
const (
	ExitSuccess = 0
	ExitFailure = 1
	// ExitUsage is returned when ujavac runs without any argument.
	ExitUsage = 2
)

// UjavacCommand holds the configuration for the ujavac command
type UjavacCommand struct {
	reg          *viperutil.Registry
	jobs         viperutil.Value[int]
	sourceSuffix viperutil.Value[string]
	outputSuffix viperutil.Value[string]
	system       viperutil.Value[string]
	verbose      viperutil.Value[bool]
	werror       viperutil.Value[bool]
	watch        viperutil.Value[bool]
	vc           *viperutil.ViperConfig
	lg           *servenv.Logger

	fs         afero.Fs
	isTerminal func() bool
	status     int
}

// GetRootCommand creates and returns the ujavac root command.
func GetRootCommand() (*cobra.Command, *UjavacCommand) {
	reg := viperutil.NewRegistry()
	uc := &UjavacCommand{
		reg: reg,
		jobs: viperutil.Configure(reg, "jobs", viperutil.Options[int]{
			Default:  0,
			FlagName: "jobs",
			EnvVars:  []string{"UJ_JOBS"},
		}),
		sourceSuffix: viperutil.Configure(reg, "source-suffix", viperutil.Options[string]{
			Default:  constants.DefaultSourceSuffix,
			FlagName: "source-suffix",
			EnvVars:  []string{"UJ_SOURCE_SUFFIX"},
		}),
		outputSuffix: viperutil.Configure(reg, "output-suffix", viperutil.Options[string]{
			Default:  constants.DefaultOutputSuffix,
			FlagName: "output-suffix",
			EnvVars:  []string{"UJ_OUTPUT_SUFFIX"},
		}),
		system: viperutil.Configure(reg, "system", viperutil.Options[string]{
			Default:  constants.SystemNone,
			FlagName: "system",
			EnvVars:  []string{"UJ_SYSTEM"},
		}),
		verbose: viperutil.Configure(reg, "verbose", viperutil.Options[bool]{
			FlagName: "verbose",
			EnvVars:  []string{"UJ_VERBOSE"},
		}),
		werror: viperutil.Configure(reg, "werror", viperutil.Options[bool]{
			FlagName: "werror",
			EnvVars:  []string{"UJ_WERROR"},
		}),
		watch: viperutil.Configure(reg, "watch", viperutil.Options[bool]{
			FlagName: "watch",
			EnvVars:  []string{"UJ_WATCH"},
		}),
		vc: viperutil.NewViperConfig(reg, constants.EnvPrefix, constants.ServiceUjavac),
		lg: servenv.NewLogger(reg),

		fs: afero.NewOsFs(),
		isTerminal: func() bool {
			fd := os.Stdout.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
	}

	root := &cobra.Command{
		Use:   constants.ServiceUjavac + " <options> <source files>",
		Short: "Lexically check Java source files",
		Long: `ujavac runs the early lexical translation steps of the Java Language
Specification over each source file: UTF-8 decoding, line terminators,
Unicode escapes, comments and literals. Files are checked in parallel and an
empty output file is created for each one. The exit status is 0 only when
every file is valid.`,
		Version:               constants.Version,
		SilenceErrors:         true,
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := uc.vc.LoadConfig(uc.reg); err != nil {
				return err
			}
			uc.lg.SetupLogging()
			if uc.verbose.Get() {
				uc.lg.SetLevel("debug")
				uc.GetLogger().Debug("verbose output enabled", "level", uc.lg.GetLogLevel())
			}
			return nil
		},
		RunE: uc.run,
	}
	root.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	fs := root.Flags()
	fs.IntP("jobs", "j", uc.jobs.Default(), "Number of files compiled in parallel (0 uses one per CPU)")
	fs.String("source-suffix", uc.sourceSuffix.Default(), "Source file suffix replaced when deriving output paths")
	fs.String("output-suffix", uc.outputSuffix.Default(), "Suffix of derived output paths")
	fs.String("system", uc.system.Default(), "Location of system modules: a JDK directory, or none")
	fs.Bool("verbose", uc.verbose.Default(), "Output messages about what the compiler is doing")
	fs.Bool("werror", uc.werror.Default(), "Terminate compilation if warnings occur")
	fs.Bool("watch", uc.watch.Default(), "Recompile files when they change, until interrupted")
	fs.String("print-config", "", "Print the effective configuration (yaml or json) and exit")
	fs.Lookup("print-config").NoOptDefVal = "yaml"
	uc.vc.RegisterFlags(fs)
	uc.lg.RegisterFlags(fs)

	viperutil.BindFlags(fs,
		uc.jobs,
		uc.sourceSuffix,
		uc.outputSuffix,
		uc.system,
		uc.verbose,
		uc.werror,
		uc.watch,
	)

	root.InitDefaultHelpFlag()
	root.InitDefaultVersionFlag()

	return root, uc
}

// Execute runs root with javac-style args and returns the process exit status.
func Execute(root *cobra.Command, uc *UjavacCommand, args []string) int {
	if len(args) == 0 {
		if uc.isTerminal() {
			_ = root.Help()
		}
		return ExitUsage
	}

	normalized, err := NormalizeArgs(root.Flags(), args)
	if err != nil {
		printError(root.ErrOrStderr(), err)
		return ExitFailure
	}

	root.SetArgs(normalized)
	defer uc.lg.Close()
	if err := root.Execute(); err != nil {
		printError(root.ErrOrStderr(), err)
		return ExitFailure
	}
	return uc.status
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s: error: %v\n", constants.ServiceUjavac, err)
}

func (uc *UjavacCommand) run(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("print-config") {
		format, _ := cmd.Flags().GetString("print-config")
		return debug.Write(cmd.OutOrStdout(), uc.reg, cmd.Flags(), format)
	}

	if err := uc.validateSystem(); err != nil {
		return err
	}

	logger := uc.GetLogger()
	if uc.werror.Get() {
		logger.Debug("warnings are treated as errors; no check produces warnings")
	}

	m := compiler.NewManager(args,
		compiler.WithFS(uc.fs),
		compiler.WithSink(diag.NewWriterSink(cmd.ErrOrStderr())),
		compiler.WithLogger(logger),
		compiler.WithJobs(uc.jobs.Get()),
		compiler.WithSuffixes(uc.sourceSuffix.Get(), uc.outputSuffix.Get()),
	)
	uc.status = m.Run()

	if !uc.watch.Get() {
		return nil
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return m.Watch(ctx)
}

// validateSystem checks --system: none, or an existing directory.
func (uc *UjavacCommand) validateSystem() error {
	system := uc.system.Get()
	if system == constants.SystemNone {
		return nil
	}
	if system == "" {
		return ujerrors.UJ2002(system, "empty path")
	}
	isDir, err := afero.IsDir(uc.fs, system)
	switch {
	case err != nil:
		return ujerrors.UJ2002(system, err.Error())
	case !isDir:
		return ujerrors.UJ2002(system, "not a directory")
	}
	return nil
}

// GetLogger returns the command's logger.
func (uc *UjavacCommand) GetLogger() *slog.Logger {
	return uc.lg.GetLogger()
}
