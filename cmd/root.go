// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Work-Fort/Zypher/cmd/build"
	"github.com/Work-Fort/Zypher/cmd/clean"
	configCmd "github.com/Work-Fort/Zypher/cmd/config"
	"github.com/Work-Fort/Zypher/cmd/create"
	"github.com/Work-Fort/Zypher/cmd/docs"
	"github.com/Work-Fort/Zypher/cmd/doctor"
	"github.com/Work-Fort/Zypher/cmd/serve"
	"github.com/Work-Fort/Zypher/cmd/version"
	"github.com/Work-Fort/Zypher/pkg/config"
	zerrors "github.com/Work-Fort/Zypher/pkg/errors"
)

var (
	// Version is injected with -ldflags "-X github.com/Work-Fort/Zypher/cmd.Version=x.y.z"
	Version string

	logLevel string
	useTUI   bool
)

var rootCmd = &cobra.Command{
	Use:   "zypher",
	Short: "Flet + Supabase project generator",
	Long: `Zypher - Flet + Supabase project generator

Scaffold Python desktop and web applications built on Flet, with optional
Supabase authentication, then run, compile, clean and document them.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitDirs(); err != nil {
			return err
		}
		// Files are read once the directories exist
		if err := config.LoadConfig(); err != nil {
			return err
		}

		useTUI = config.GetUseTUI()
		logLevel = config.GetLogLevel()
		if err := configureLogging(logLevel); err != nil {
			return err
		}

		log.Debug("zypher: starting", "command", cmd.CommandPath(), "args", args, "version", Version)
		return nil
	},
}

var logLevels = map[string]log.Level{
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
}

// configureLogging sends JSON logs at level to the log file. "disabled"
// discards them and unknown levels fall back to debug.
func configureLogging(level string) error {
	if level == "disabled" {
		log.SetOutput(io.Discard)
		return nil
	}
	lvl, ok := logLevels[level]
	if !ok {
		lvl = log.DebugLevel
	}

	f, err := os.OpenFile(config.GlobalPaths.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerrors.WithPath(zerrors.EWriteFailed, config.GlobalPaths.LogFile, "cannot open log file", err)
	}
	log.SetDefault(log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02T15:04:05.000Z07:00",
		Level:           lvl,
		ReportCaller:    true,
		Formatter:       log.JSONFormatter,
	}))
	return nil
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context, which stops any child process it started.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		log.Error("zypher: command failed", "code", zerrors.GetCode(err), "err", err)

		fmt.Fprintf(os.Stderr, "%s %s\n", config.CurrentTheme.ErrorStyle().Render("Error:"), err)
		os.Exit(zerrors.ExitCode(err))
	}
}

func init() {
	// Until PersistentPreRunE routes logs to the log file
	log.SetReportTimestamp(false)
	log.SetLevel(log.InfoLevel)

	config.InitViper()

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&logLevel, "log-level", "l", "debug", "Log level: disabled, debug, info, warn, error")
	flags.BoolVar(&useTUI, "use-tui", true, "Enable terminal UI mode")
	config.BindFlags(flags)

	rootCmd.AddCommand(
		build.NewBuildCmd(),
		clean.NewCleanCmd(),
		configCmd.NewConfigCmd(),
		create.NewCreateCmd(Version),
		docs.NewDocsCmd(Version),
		doctor.NewDoctorCmd(),
		serve.NewServeCmd(),
		version.NewVersionCmd(Version),
	)

	rootCmd.SetHelpFunc(styledHelpFunc)
	rootCmd.SetUsageFunc(styledUsageFunc)
	// Execute prints errors itself
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	// bash, zsh and fish only
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(newCompletionCmd())
}

// GetRootCommand returns the root command
func GetRootCommand() *cobra.Command {
	return rootCmd
}
