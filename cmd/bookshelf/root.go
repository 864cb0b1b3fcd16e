package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeanmarcjones/bookshelf/pkg/apiclient"
	"github.com/jeanmarcjones/bookshelf/pkg/config"
)

type rootOptions struct {
	logLevel string
}

// NewRootCmd builds the bookshelf command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "bookshelf",
		Short:         "Bookshelf API client",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.logLevel, "log-level", "", "", "Log level, can be one of: debug, info, warn, error (default from LOG_LEVEL)")

	// Add Subcommands
	cmd.AddCommand(GetCmd(opts))
	cmd.AddCommand(SendCmd(opts))
	cmd.AddCommand(LoginCmd(opts))
	cmd.AddCommand(RegisterCmd(opts))
	cmd.AddCommand(LogoutCmd(opts))
	cmd.AddCommand(MeCmd(opts))

	// Set default output
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	return cmd
}

// withApp loads configuration, wires the app for one invocation and tears it down afterwards.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, a *app) error) (err error) {
	cfg, err := config.Parse[config.App]()
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.Close())
	}()

	return fn(ctx, a)
}

// printError writes the server body of a failed call, or the error text.
func printError(cmd *cobra.Command, err error) {
	if re, ok := apiclient.AsResponseError(err); ok {
		cmd.PrintErrln(re.StatusCode, string(re.Body))
		return
	}
	cmd.PrintErrln("Error:", err)
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}
