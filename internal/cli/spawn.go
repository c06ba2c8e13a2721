package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/jmgilman/go/childprocess"
	"github.com/jmgilman/go/errors"
)

func newSpawnCmd(s *settings) *cobra.Command {
	var forwardStdin bool

	cmd := &cobra.Command{
		Use:   "spawn <path> [args...]",
		Short: "Run an executable and stream its output as it arrives",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := s.options(cmd)
			if err != nil {
				return err
			}
			return runSpawn(cmd, args[0], args[1:], opts, forwardStdin)
		},
	}
	cmd.Flags().BoolVar(&forwardStdin, "stdin", false, "Forward standard input to the child")
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runSpawn(cmd *cobra.Command, file string, args []string, opts childprocess.Options, forwardStdin bool) error {
	child := childprocess.SpawnWithArgs(file, args, opts)
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	child.Stdout().OnData(func(chunk string) { _, _ = io.WriteString(out, chunk) })
	child.Stderr().OnData(func(chunk string) { _, _ = io.WriteString(errOut, chunk) })
	child.OnExit(func(status childprocess.ExitStatus) {
		opts.Logger.Info("kill requested", "signal", status.Signal)
	})

	if err := child.Start(); err != nil {
		<-child.Done()
		return err
	}

	if forwardStdin {
		go func() {
			_, _ = io.Copy(child.Stdin(), cmd.InOrStdin())
			_ = child.Stdin().Close()
		}()
	} else {
		_ = child.Stdin().Close()
	}

	ctx := cmd.Context()
	select {
	case <-child.Done():
	case <-ctx.Done():
		if err := child.Kill(opts.KillSignal); err != nil {
			return err
		}
		<-child.Done()
	}

	status, _ := child.Status()
	if status.Code == 0 && status.Signal == "" {
		return nil
	}

	if status.Signal != "" {
		return errors.WithContext(
			errors.Newf(errors.CodeKilledBySignal, "%s terminated by %s", file, status.Signal),
			"exit_code", status.Code)
	}
	return errors.WithContext(
		errors.Newf(errors.CodeNonZeroExit, "%s exited with code %d", file, status.Code),
		"exit_code", status.Code)
}
