package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jeanmarcjones/bookshelf/pkg/auth"
)

func LoginCmd(opts *rootOptions) *cobra.Command {
	return credentialsCmd(opts, "login", "Sign in and store the token", "Logged in as %s\n",
		func(ctx context.Context, s *auth.Session, creds auth.Credentials) (*auth.User, error) {
			return s.Login(ctx, creds)
		})
}

func RegisterCmd(opts *rootOptions) *cobra.Command {
	return credentialsCmd(opts, "register", "Create an account and store the token", "Registered and logged in as %s\n",
		func(ctx context.Context, s *auth.Session, creds auth.Credentials) (*auth.User, error) {
			return s.Register(ctx, creds)
		})
}

func credentialsCmd(
	opts *rootOptions,
	use, short string,
	successFormat string,
	action func(ctx context.Context, s *auth.Session, creds auth.Credentials) (*auth.User, error),
) *cobra.Command {
	var creds auth.Credentials

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				user, err := action(ctx, a.session, creds)
				if err != nil {
					return err
				}
				cmd.Printf(successFormat, user.Username)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func LogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				if err := a.session.Logout(ctx); err != nil {
					return err
				}
				cmd.Println("Logged out")
				return nil
			})
		},
	}
}

func MeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				user, err := a.bootstrap(ctx)
				if err != nil {
					return err
				}
				if user == nil {
					cmd.Println("Not logged in")
					return nil
				}
				shown := *user
				shown.Token = ""
				return printJSON(cmd, shown)
			})
		},
	}
}
