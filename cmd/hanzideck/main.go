package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var debugMode bool
	rootCommand := cobra.Command{
		Use:           "hanzideck",
		Short:         "Generate Anki packages for learning Chinese vocabulary",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(debugMode)
		},
	}
	flags := rootCommand.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Path to a configuration file")
	flags.BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCommand.AddCommand(newGenerateCommand())

	return rootCommand.Execute()
}

func setupLogger(debugMode bool) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
