package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ncobase/taskdesk/auth"
	"github.com/ncobase/taskdesk/ecode"
	"github.com/ncobase/taskdesk/security/jwt"
	"github.com/spf13/cobra"
)

// NewLoginCommand creates the login command
func NewLoginCommand(a *app) *cobra.Command {
	var body auth.LoginBody

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if body.Password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read password: %w", err)
				}
				body.Password = strings.TrimRight(line, "\r\n")
			}

			creds, err := a.auth.Login(cmd.Context(), &body)
			if err != nil {
				return err
			}
			_, _ = successColor.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", creds.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&body.Username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&body.Password, "password", "p", "", "password, prompted when empty")
	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

// NewWhoamiCommand creates the whoami command
func NewWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			renderSession(cmd.OutOrStdout(), a.store.Current(), time.Now())
			return nil
		},
	}
}

func renderSession(w io.Writer, c *auth.Credentials, now time.Time) {
	name, id := "", ""
	if c.User != nil {
		name, id = c.User.Username, c.User.ID.String()
	}
	fmt.Fprintf(w, "User: %s\n", name)
	if id != "" {
		fmt.Fprintf(w, "ID: %s\n", id)
	}
	claims, err := jwt.Inspect(c.AccessToken)
	if err != nil || !claims.HasExpiry() {
		fmt.Fprintln(w, "Expires: never")
		return
	}
	if claims.IsExpired(now) {
		fmt.Fprintf(w, "Expires: %s (%s)\n", claims.ExpiresAt.Local().Format(time.RFC1123), ecode.Expired("access token"))
		return
	}
	fmt.Fprintf(w, "Expires: %s (in %s)\n",
		claims.ExpiresAt.Local().Format(time.RFC1123), claims.ExpiresIn(now).Round(time.Second))
}
