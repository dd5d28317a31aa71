package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/storefront-client/internal/domain"
)

func newAuthCmd(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Register, log in and manage the local session",
	}
	cmd.AddCommand(
		newRegisterCmd(sess),
		newLoginCmd(sess),
		newLogoutCmd(sess),
		newStatusCmd(sess),
	)
	return cmd
}

func newRegisterCmd(sess *session) *cobra.Command {
	var (
		reg       domain.Registration
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Long: `Create a new account on the storefront API.

Example:
  printf '%s\n' 'S3cure!' | storefront auth register --username ada --email ada@example.com \
      --first-name Ada --last-name Lovelace --password-stdin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if reg.Username == "" || reg.Email == "" {
				return errors.New("--username and --email are required")
			}
			pw, err := readPassword(cmd, fromStdin)
			if err != nil {
				return err
			}
			reg.Password = pw

			user, err := sess.app.Register(cmd.Context(), reg)
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			return sess.print(cmd.OutOrStdout(), user)
		},
	}

	cmd.Flags().StringVar(&reg.Username, "username", "", "account username")
	cmd.Flags().StringVar(&reg.Email, "email", "", "account email")
	cmd.Flags().StringVar(&reg.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&reg.LastName, "last-name", "", "last name")
	cmd.Flags().BoolVar(&fromStdin, "password-stdin", false, "read the password from stdin")
	return cmd
}

func newLoginCmd(sess *session) *cobra.Command {
	var (
		username  string
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token locally",
		Long: `Exchange a username and password for an access token. The token is stored in
the local session store and sent with every later request.

Tip: avoid passing passwords as arguments; use the prompt or --password-stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" {
				return errors.New("--username is required")
			}
			pw, err := readPassword(cmd, fromStdin)
			if err != nil {
				return err
			}

			tok, err := sess.app.Login(cmd.Context(), username, pw)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Logged in to %s as %s (%s token stored).\n", sess.cfg.APIURL, username, tok.TokenType)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().BoolVar(&fromStdin, "password-stdin", false, "read the password from stdin")
	return cmd
}

func newLogoutCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := sess.app.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Logged out.")
			return nil
		},
	}
}

func newStatusCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether an access token is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := sess.app.Session()
			if err != nil {
				return err
			}
			return sess.print(cmd.OutOrStdout(), st)
		},
	}
}
