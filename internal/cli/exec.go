package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmgilman/go/childprocess"
)

func newExecCmd(s *settings) *cobra.Command {
	var shell string

	cmd := &cobra.Command{
		Use:   "exec <command>",
		Short: "Run a command line through the shell and print its output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := s.options(cmd)
			if err != nil {
				return err
			}
			if shell != "" {
				opts.Shell = shell
			}

			res, err := childprocess.ExecContext(cmd.Context(), args[0], opts)
			printResult(cmd, res)
			return err
		},
	}
	cmd.Flags().StringVar(&shell, "shell", "", "Interpreter used instead of /bin/sh or cmd.exe")

	return cmd
}

func newFileCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file <path> [args...]",
		Short: "Run an executable without a shell and print its output",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := s.options(cmd)
			if err != nil {
				return err
			}

			res, err := childprocess.ExecFileContext(cmd.Context(), args[0], args[1:], opts)
			printResult(cmd, res)
			return err
		},
	}
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func printResult(cmd *cobra.Command, res *childprocess.Result) {
	if res == nil {
		return
	}
	_, _ = io.WriteString(cmd.OutOrStdout(), res.Stdout)
	_, _ = io.WriteString(cmd.ErrOrStderr(), res.Stderr)
	if res.Status.Signal != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "terminated by %s\n", res.Status.Signal)
	}
}
