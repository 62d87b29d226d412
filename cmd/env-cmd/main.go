// Command env-cmd runs a program with an environment loaded from a file.
//
//	env-cmd [flags] <command> [args...]
//
// Variables from the env file (or the selected rc-file environments) are
// merged over the current process environment; file values win unless
// --no-override is given.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"

	envcmd "github.com/raghuramsadineni/env-cmd"
)

const defaultEnvFile = ".env"
const defaultRCFile = ".env-cmdrc"

type options struct {
	envFile      string
	rcFile       string
	environments []string
	fallback     bool
	noOverride   bool
	silent       bool
	useShell     bool
}

func main() {
	flags := flag.NewFlagSet("env-cmd", flag.ExitOnError)
	flags.SetInterspersed(false)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: env-cmd [flags] <command> [args...]\n\nFlags:\n%s", flags.FlagUsages())
	}

	var opts options
	flags.StringVarP(&opts.envFile, "file", "f", defaultEnvFile, "custom env file path")
	flags.StringVarP(&opts.rcFile, "rc-file", "r", defaultRCFile, "custom rc file path")
	flags.StringSliceVarP(&opts.environments, "environments", "e", nil, "rc file environment(s) to use")
	flags.BoolVar(&opts.fallback, "fallback", false, "fall back to the default env file if the custom path is missing")
	flags.BoolVar(&opts.noOverride, "no-override", false, "do not override existing process env vars")
	flags.BoolVar(&opts.silent, "silent", false, "ignore missing env files, run with the process env only")
	flags.BoolVar(&opts.useShell, "use-shell", false, "run the command inside the system shell")

	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "env-cmd:", err)
		os.Exit(2)
	}

	args := flags.Args()
	if len(args) == 0 {
		flags.Usage()
		os.Exit(2)
	}

	code, err := run(context.Background(), opts, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "env-cmd:", err)
	}
	os.Exit(code)
}

// run loads the requested environment and executes the command with it.
// It returns the child's exit code.
func run(ctx context.Context, opts options, args []string) (int, error) {
	fileEnv, err := loadEnv(ctx, opts)
	if err != nil {
		return 1, err
	}

	cmd := buildCommand(opts, args)
	cmd.Env = buildCommandEnv(os.Environ(), fileEnv, opts.noOverride)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return 1, fmt.Errorf("start %s: %w", args[0], err)
	}

	// Forward termination signals so the child can shut down cleanly. The
	// goroutine ends when the channel closes below; Stop guarantees no sends
	// after it returns, so the close is safe.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		for sig := range signals {
			_ = cmd.Process.Signal(sig)
		}
	}()

	waitErr := cmd.Wait()
	signal.Stop(signals)
	close(signals)

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 1, waitErr
	}
	return 0, nil
}

// loadEnv picks the rc branch when environments were requested, the env file
// branch otherwise. --silent tolerates missing files; --fallback retries the
// default env file path.
func loadEnv(ctx context.Context, opts options) (envcmd.Environment, error) {
	loader := envcmd.New(envcmd.Options{})

	if len(opts.environments) > 0 {
		env, err := loader.GetRCFileVars(ctx, opts.rcFile, opts.environments)
		if err != nil && opts.silent && recoverable(err) {
			return envcmd.Environment{}, nil
		}
		return env, err
	}

	env, err := loader.GetEnvFileVars(ctx, opts.envFile)
	if err != nil {
		var pathErr *envcmd.PathError
		if errors.As(err, &pathErr) && opts.fallback && opts.envFile != defaultEnvFile {
			env, err = loader.GetEnvFileVars(ctx, defaultEnvFile)
		}
	}
	if err != nil && opts.silent && recoverable(err) {
		return envcmd.Environment{}, nil
	}
	return env, err
}

// recoverable reports whether --silent may swallow the error. Only missing
// files and missing rc environments qualify; parse failures always surface.
func recoverable(err error) bool {
	var pathErr *envcmd.PathError
	var envErr *envcmd.EnvironmentError
	return errors.As(err, &pathErr) || errors.As(err, &envErr)
}

func buildCommand(opts options, args []string) *exec.Cmd {
	if opts.useShell {
		return exec.Command(shellPath(), "-c", strings.Join(args, " "))
	}
	return exec.Command(args[0], args[1:]...)
}

func shellPath() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/sh"
}

// buildCommandEnv merges file variables over the process environment.
// With noOverride, existing process values are kept.
func buildCommandEnv(processEnv []string, fileEnv envcmd.Environment, noOverride bool) []string {
	merged := make(envcmd.Environment, len(processEnv)+len(fileEnv))
	for _, entry := range processEnv {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		merged[key] = value
	}

	for key, value := range fileEnv {
		if noOverride {
			if _, exists := merged[key]; exists {
				continue
			}
		}
		merged[key] = value
	}

	return merged.Strings()
}
