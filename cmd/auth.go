package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/scribelabs/scribe-cli/credentials"
	scerrors "github.com/scribelabs/scribe-cli/pkg/errors"
)

// Auth command flags.
var (
	authToken          string
	authFromDesktop    bool
	authNonInteractive bool
)

// NewAuthCommand creates the auth command group.
func NewAuthCommand() *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication",
		Long: `Manage authentication credentials for the Scribe API.

Tokens are stored encrypted in ~/.scribe/credentials.yaml. The encryption key
lives in the system keyring; set SCRIBE_ENCRYPTION_KEY in CI environments.

Token sources, in precedence order:
  1. SCRIBE_TOKEN environment variable
  2. Stored credentials (scribe auth login)
  3. The Scribe desktop app's local storage`,
	}

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API token",
		Long: `Store a Scribe API token in the encrypted credential store.

By default the token is copied from the Scribe desktop app's local storage,
so a machine with the desktop app signed in needs no manual steps.

Examples:
  scribe auth login                      # Import from the desktop app
  scribe auth login --token eyJhbGc...   # Store an explicit token
  scribe auth login --desktop=false      # Prompt for a token instead`,
		RunE: runLogin,
	}
	loginCmd.Flags().StringVar(&authToken, "token", "", "API token to store")
	loginCmd.Flags().BoolVar(&authFromDesktop, "desktop", true, "Import tokens from the desktop app when no token is given")
	loginCmd.Flags().BoolVar(&authNonInteractive, "non-interactive", false, "Fail instead of prompting for input")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show current authentication status",
		RunE:  runAuthStatus,
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		Long: `Remove stored credentials from the local credential store.

The SCRIBE_TOKEN environment variable and the desktop app's own storage are
not affected.`,
		RunE: runLogout,
	}

	authCmd.AddCommand(loginCmd, statusCmd, logoutCmd)
	return authCmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("initializing credential store: %w", err)
	}

	creds := &credentials.Credentials{Source: credentials.SourceManual}

	switch {
	case authToken != "":
		creds.AccessToken = authToken
	case authFromDesktop:
		tokens, err := credentials.ExtractDesktopTokens()
		if err == nil {
			creds.AccessToken = tokens.AccessToken
			creds.RefreshToken = tokens.RefreshToken
			creds.Source = credentials.SourceDesktop
			if tokens.ExpiresIn > 0 {
				creds.ExpiresAt = time.Now().Add(time.Duration(tokens.ExpiresIn) * time.Second)
			}
			break
		}
		if authNonInteractive {
			return fmt.Errorf("importing desktop tokens: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Desktop app tokens unavailable (%v), falling back to prompt.\n", err)
		fallthrough
	default:
		if authNonInteractive {
			return fmt.Errorf("no token provided: %w", scerrors.ErrNoCredentials)
		}
		token, err := promptHidden("Scribe API token")
		if err != nil {
			return err
		}
		if token == "" {
			return fmt.Errorf("empty token: %w", scerrors.ErrNoCredentials)
		}
		creds.AccessToken = token
	}

	if err := store.Save(creds); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}

	path, _ := credentials.CredentialsPath()
	fmt.Fprintf(cmd.OutOrStdout(), "Credentials stored (%s) in %s\n", creds.Source, path)
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if token := os.Getenv("SCRIBE_TOKEN"); token != "" {
		fmt.Fprintln(out, "Source:  environment (SCRIBE_TOKEN)")
		fmt.Fprintf(out, "Token:   %s\n", credentials.MaskToken(token))
		return nil
	}

	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("initializing credential store: %w", err)
	}

	creds, err := store.Load()
	if err != nil {
		if scerrors.IsNoCredentials(err) {
			fmt.Fprintln(out, "Not authenticated. Run 'scribe auth login'.")
			return nil
		}
		return err
	}

	fmt.Fprintf(out, "Source:  stored (%s)\n", creds.Source)
	fmt.Fprintf(out, "Token:   %s\n", credentials.MaskToken(creds.AccessToken))
	fmt.Fprintf(out, "Expires: %s\n", credentials.FormatExpiry(creds.ExpiresAt))
	fmt.Fprintf(out, "Updated: %s\n", creds.LastUpdated.Format(time.RFC3339))
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("initializing credential store: %w", err)
	}

	if !store.Exists() {
		fmt.Fprintln(cmd.OutOrStdout(), "No stored credentials.")
		return nil
	}

	if err := store.Delete(); err != nil {
		return fmt.Errorf("removing credentials: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Credentials removed.")
	return nil
}
