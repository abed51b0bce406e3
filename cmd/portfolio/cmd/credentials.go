package cmd

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zyna-b/portfolio/auth"
)

var credentialsIterations int

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Generate the ADMIN_PASSWORD_* environment values",
	Long: `Prompts for the admin password, derives the PBKDF2 hash with a fresh
random salt, and prints the environment variables to configure the server
with. The password never touches disk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptPassword()
		if err != nil {
			return err
		}
		defer password.Destroy()

		rawSalt := make([]byte, 16)
		if _, err := rand.Read(rawSalt); err != nil {
			return fmt.Errorf("generating salt: %w", err)
		}
		// The salt is used verbatim as UTF-8 bytes during derivation, so
		// the base64 form printed here is the canonical value.
		salt := base64.StdEncoding.EncodeToString(rawSalt)

		key := auth.DerivePasswordKey(password.String(), salt, credentialsIterations, auth.DigestSHA512)

		fmt.Println("Add these to the server environment:")
		fmt.Println()
		fmt.Printf("ADMIN_PASSWORD_SALT=%s\n", salt)
		fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", base64.StdEncoding.EncodeToString(key))
		fmt.Printf("ADMIN_PASSWORD_ITERATIONS=%d\n", credentialsIterations)
		return nil
	},
}

// promptPassword reads the password twice without echo and keeps it in a
// locked memguard buffer until derivation is done.
func promptPassword() (*memguard.LockedBuffer, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal; run interactively")
	}

	fmt.Fprint(os.Stderr, "Admin password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}
	if len(first) == 0 {
		return nil, fmt.Errorf("password must not be empty")
	}

	fmt.Fprint(os.Stderr, "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		memguard.WipeBytes(first)
		return nil, fmt.Errorf("reading confirmation: %w", err)
	}

	if string(first) != string(second) {
		memguard.WipeBytes(first)
		memguard.WipeBytes(second)
		return nil, fmt.Errorf("passwords do not match")
	}
	memguard.WipeBytes(second)

	// NewBufferFromBytes wipes the source slice.
	return memguard.NewBufferFromBytes(first), nil
}

func init() {
	rootCmd.AddCommand(credentialsCmd)
	credentialsCmd.Flags().IntVar(&credentialsIterations, "iterations", auth.DefaultIterations, "PBKDF2 iteration count")
}
