package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/client"
	"github.com/BlueMycon/hack-or-snooze-ajax-api/internal/credentials"
)

// NewLoginCmd creates the login command.
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and store the session token",
		Long: `Login authenticates against the Hack or Snooze API and stores the
issued session token so later commands can act as you.

The password is read from --password if given, otherwise from stdin:

  # Prompted
  hacksnooze login bob

  # Piped (keeps the password out of shell history)
  printf '%s' "$PASSWORD" | hacksnooze login bob`,
		Args: cobra.ExactArgs(1),
		RunE: runLoginCmd,
	}

	cmd.Flags().StringP("password", "p", "", "Account password (read from stdin if omitted)")

	return cmd
}

// runLoginCmd executes the login command.
func runLoginCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	setupLogger(cfg.Verbose)

	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := runContext()
	defer cancel()

	sess, err := client.Login(ctx, newGateway(cfg), args[0], password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	store := credentials.NewStore("")
	if err := store.Save(credentials.Credentials{Username: sess.Username(), Token: sess.Token()}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%d favorites, %d stories)\n",
		sess.Username(), len(sess.Favorites()), len(sess.OwnStories()))
	return nil
}

// NewSignupCmd creates the signup command.
func NewSignupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup <username>",
		Short: "Create an account and log in",
		Long: `Signup registers a new Hack or Snooze account, logs in, and stores
the issued session token.

Examples:
  # Create an account with a display name
  hacksnooze signup bob --name "Bob Smith"`,
		Args: cobra.ExactArgs(1),
		RunE: runSignupCmd,
	}

	cmd.Flags().StringP("password", "p", "", "Account password (read from stdin if omitted)")
	cmd.Flags().StringP("name", "n", "", "Display name for the new account")

	return cmd
}

// runSignupCmd executes the signup command.
func runSignupCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	setupLogger(cfg.Verbose)

	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return err
	}
	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := runContext()
	defer cancel()

	sess, err := client.Signup(ctx, newGateway(cfg), args[0], password, name)
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	store := credentials.NewStore("")
	if err := store.Save(credentials.Credentials{Username: sess.Username(), Token: sess.Token()}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! You are now logged in.\n", sess.Username())
	return nil
}

// NewLogoutCmd creates the logout command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		Long: `Logout deletes the locally stored session token. The token itself
stays valid server-side; this only forgets it on this machine.`,
		Args: cobra.NoArgs,
		RunE: runLogoutCmd,
	}
}

// runLogoutCmd executes the logout command.
func runLogoutCmd(cmd *cobra.Command, _ []string) error {
	if err := credentials.NewStore("").Clear(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}

// readPassword returns the --password flag value, or reads one line
// from stdin when the flag is empty.
func readPassword(cmd *cobra.Command) (string, error) {
	password, err := cmd.Flags().GetString("password")
	if err != nil {
		return "", err
	}
	if password != "" {
		return password, nil
	}

	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password = strings.TrimSpace(line)
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	return password, nil
}
