// Package commands wires the cobra command tree: flag registration shared
// across commands, cancellation on SIGINT/SIGTERM, and the error-to-exit-code
// dispatch that keeps Execute's caller free of domain-specific type switches.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/ravdens/Prebake/pkg/prebakeerrors"
)

func AddHelpFlag(cmd *cobra.Command, commandName string) {
	cmd.Flags().BoolP("help", "h", false, fmt.Sprintf("Help for '%s'", commandName))
}

// CreateCancellableContext returns a context canceled on the process's first
// SIGINT or SIGTERM.
func CreateCancellableContext() context.Context {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		<-signals
		cancel()
	}()

	return ctx
}

// logError wraps a cobra RunE so that command errors are logged exactly
// once, with cobra's own usage/error printing silenced, before the error
// propagates up to Execute for exit-code dispatch.
func logError(logger *log.Logger, f func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		err := f(cmd, args)
		if err != nil {
			logger.Error(err.Error())
			return err
		}
		return nil
	}
}

// ExitCode maps a returned error onto a process exit code: 0 on success,
// 2 when a build cycle was detected, 3 on an I/O failure anywhere in the
// pipeline, 1 for every other failure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cycleErr *prebakeerrors.CycleError
	var ioErr *prebakeerrors.IOError
	switch {
	case errors.As(err, &cycleErr):
		return 2
	case errors.As(err, &ioErr):
		return 3
	default:
		return 1
	}
}
