// Package cli implements the lazyseq command, which applies the lazy
// sequence operators to the rows of a CSV file.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type ExitCode int

const (
	exitCodeSuccess = 0
	exitCodeError   = 1
)

const envPrefix = "LAZYSEQ"

// Run executes the command with the process arguments and standard
// streams.
func Run() ExitCode {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) ExitCode {
	a := newApp(stdin, stdout, stderr)

	rootCmd := a.Command()
	// a nil slice makes cobra fall back to os.Args.
	rootCmd.SetArgs(append([]string{}, args...))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		a.logger().Error("command failed", "error", err)
		return exitCodeError
	}

	return exitCodeSuccess
}

// app holds the state shared by the subcommands: configuration, the
// logger, and the process streams.
type app struct {
	conf   *viper.Viper
	log    *slog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{conf: viper.New(), stdin: stdin, stdout: stdout, stderr: stderr}
}

func (a *app) Command() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lazyseq",
		Short:         "Fill, group, and rank the rows of CSV data.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := cmd.Help()
			if err != nil {
				return fmt.Errorf("failed to show help: %w", err)
			}
			return nil
		},
	}
	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringP("input", "i", "", "CSV file to read (default stdin)")
	flags.StringP("format", "f", formatTable, "output format (table, csv, json, yaml)")
	flags.Bool("header", false, "treat the first row of the input as a header")
	flags.BoolP("verbose", "v", false, "set debug logging level")
	flags.String("config", "", "configuration file (yaml, toml, or json)")

	rootCmd.AddCommand(
		NewFillCmd(a).Command(),
		NewGroupCmd(a).Command(),
		NewRankCmd(a).Command(),
	)

	return rootCmd
}

// configure binds the flags of the command being executed to the
// configuration, so that values resolve from flags, then LAZYSEQ_*
// environment variables, then the configuration file, and then the
// flag defaults.
func (a *app) configure(cmd *cobra.Command) error {
	if err := a.conf.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	a.conf.SetEnvPrefix(envPrefix)
	a.conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.conf.AutomaticEnv()

	if path := a.conf.GetString("config"); path != "" {
		a.conf.SetConfigFile(path)
		if err := a.conf.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	a.log = newLogger(a.stderr, a.conf.GetBool("verbose"))
	a.log.Debug("configured", "command", cmd.Name(), "config", a.conf.ConfigFileUsed())

	return nil
}

func (a *app) logger() *slog.Logger {
	if a.log == nil {
		a.log = newLogger(a.stderr, false)
	}
	return a.log
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    w != os.Stderr,
	}))
}
