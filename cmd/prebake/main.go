package main

import (
	"os"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/ravdens/Prebake/internal/commands"
	"github.com/ravdens/Prebake/internal/logging"
)

func main() {
	cobra.EnableCommandSorting = false

	handler := logging.NewLogHandler(os.Stderr)
	logger := &log.Logger{Handler: handler, Level: log.InfoLevel}

	rootCmd := commands.Run(logger)
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if fs := cmd.Flags(); fs != nil {
			if flag, err := fs.GetBool("no-color"); err == nil {
				handler.NoColor = flag
			}
			if flag, err := fs.GetBool("quiet"); err == nil && flag {
				logger.Level = log.WarnLevel
			}
		}
	}
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Show less output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(commands.ExitCode(err))
	}
}
