// Package cmd implements the hyperstore command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/hyperstore/internal/containers/domain"
	"github.com/zjrosen/hyperstore/internal/presentation"
)

var version = "dev"

// Exit codes. Store failures map from domain.Kind.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitInvalidInput  = 2
	ExitNotFound      = 3
	ExitAlreadyExists = 4
	ExitInvalidData   = 5
	ExitMigration     = 6
	ExitStorage       = 7
	ExitInterrupted   = 130
)

// newRootCmd builds a fresh command tree. Each invocation gets its own viper
// instance and app state so tests can run commands repeatedly.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hyperstore",
		Short: "Container metadata store for the hypervisor",
		Long: `Manage the SQLite store holding container metadata: schema migrations,
idempotent creation, lookups, status updates and validation.

Output is JSON on stdout. Logs and trace output go to stderr or files.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: ./.hyperstore/config.yaml or ~/.config/hyperstore/config.yaml)")
	flags.String("db", "", "path to the SQLite database (overrides database.path)")
	flags.Bool("debug", false, "log debug output to stderr (or log.path)")
	_ = a.v.BindPFlag("database.path", flags.Lookup("db"))
	_ = a.v.BindPFlag("debug", flags.Lookup("debug"))

	rootCmd.AddCommand(
		newMigrateCmd(a),
		newContainersCmd(a),
		newValidateCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

// Execute runs the root command until it finishes or SIGINT/SIGTERM
// cancels it.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// execute runs one command line and releases whatever it opened, whether
// or not the command succeeded.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{v: viper.New()}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	err = errors.Join(err, a.close(ctx))
	if err != nil {
		rootCmd.PrintErrln("Error:", err)
	}
	return err
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	var usage *usageError
	if errors.As(err, &usage) || presentation.IsValidationError(err) {
		return ExitInvalidInput
	}
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return ExitNotFound
	case domain.KindAlreadyExists:
		return ExitAlreadyExists
	case domain.KindInvalidData:
		return ExitInvalidData
	case domain.KindMigration:
		return ExitMigration
	case domain.KindStorage:
		return ExitStorage
	default:
		return ExitFailure
	}
}

// usageError marks bad command-line input that cobra itself did not catch.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}
