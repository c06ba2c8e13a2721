// Package cli implements the childexec command.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmgilman/go/childprocess"
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/internal/config"
)

// settings holds the global flags.
type settings struct {
	configPath string
	logLevel   string
	jsonErrors bool

	cwd        string
	env        map[string]string
	encoding   string
	timeout    time.Duration
	maxBuffer  int
	killSignal string
}

// NewRootCmd builds the childexec command tree.
func NewRootCmd() *cobra.Command {
	root, _ := newRootCommand()
	return root
}

func newRootCommand() (*cobra.Command, *settings) {
	s := &settings{}

	root := &cobra.Command{
		Use:   "childexec",
		Short: "Run child processes with timeouts and output limits",
	}

	flags := root.PersistentFlags()
	flags.StringVar(&s.configPath, "config", "", "Path to a defaults file (default "+config.DefaultPath+" if present)")
	flags.StringVar(&s.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.BoolVar(&s.jsonErrors, "json", false, "Render errors as JSON")
	flags.StringVar(&s.cwd, "cwd", "", "Working directory of the child process")
	flags.StringToStringVar(&s.env, "env", nil, "Environment variables added to the inherited environment (KEY=VALUE)")
	flags.StringVar(&s.encoding, "encoding", "", "Charset of the child's input and output")
	flags.DurationVar(&s.timeout, "timeout", 0, "Kill the child after this long")
	flags.IntVar(&s.maxBuffer, "max-buffer", 0, "Kill the child once stdout or stderr exceeds this many bytes")
	flags.StringVar(&s.killSignal, "kill-signal", "", "Signal used to kill the child (default SIGTERM)")

	root.AddCommand(newExecCmd(s))
	root.AddCommand(newFileCmd(s))
	root.AddCommand(newSpawnCmd(s))

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root, s
}

// Execute runs the CLI entrypoint.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, s := newRootCommand()
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		renderError(os.Stderr, err, s.jsonErrors)
	}
	os.Exit(exitCode(err))
}

// options merges the defaults file with the flags that were set.
func (s *settings) options(cmd *cobra.Command) (childprocess.Options, error) {
	defaults, err := config.Load(s.configPath)
	if err != nil {
		return childprocess.Options{}, err
	}
	opts := defaults.Options()

	flags := cmd.Flags()
	if flags.Changed("cwd") {
		opts.Cwd = s.cwd
	}
	if flags.Changed("env") {
		if opts.Env == nil {
			opts.Env = make(map[string]string, len(s.env))
		}
		for k, v := range s.env {
			opts.Env[k] = v
		}
	}
	if flags.Changed("encoding") {
		opts.Encoding = s.encoding
	}
	if flags.Changed("timeout") {
		opts.Timeout = s.timeout
	}
	if flags.Changed("max-buffer") {
		opts.MaxBuffer = s.maxBuffer
	}
	if flags.Changed("kill-signal") {
		opts.KillSignal = s.killSignal
	}
	if opts.Timeout < 0 {
		return childprocess.Options{}, errors.New(errors.CodeInvalidInput, "--timeout must not be negative")
	}
	if opts.MaxBuffer < 0 {
		return childprocess.Options{}, errors.New(errors.CodeInvalidInput, "--max-buffer must not be negative")
	}

	levelName := defaults.LogLevel
	if flags.Changed("log-level") {
		levelName = s.logLevel
	}
	level, err := config.ParseLevel(levelName)
	if err != nil {
		return childprocess.Options{}, err
	}
	opts.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return opts, nil
}

// exitCode mirrors the child's exit code when the error carries one.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var platformErr errors.PlatformError
	if errors.As(err, &platformErr) {
		if code, ok := platformErr.Context()["exit_code"].(int); ok && code > 0 {
			return code
		}
	}
	return 1
}

func renderError(w io.Writer, err error, asJSON bool) {
	if !asJSON {
		fmt.Fprintln(w, err)
		return
	}
	data, marshalErr := json.Marshal(errors.ToJSON(err))
	if marshalErr != nil {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintln(w, string(data))
}
