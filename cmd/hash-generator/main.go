// Command hash-generator prints bcrypt hashes for seeding users directly in
// the database, using the same hasher as the server.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/service/auth"
	"github.com/spf13/cobra"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		cost         int
		showPassword bool
	)

	cmd := &cobra.Command{
		Use:          "hash-generator [password...]",
		Short:        "Print bcrypt hashes for passwords",
		Long:         "Print one bcrypt hash per password, in input order. Without arguments, passwords are read one per line from standard input, which keeps them out of shell history.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			hasher := auth.NewBcryptHasher(cost)
			if len(args) > 0 {
				return hashAll(cmd.OutOrStdout(), hasher, args, showPassword)
			}

			var passwords []string
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				if line := scanner.Text(); line != "" {
					passwords = append(passwords, line)
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read passwords: %w", err)
			}
			return hashAll(cmd.OutOrStdout(), hasher, passwords, showPassword)
		},
	}
	cmd.Flags().IntVar(&cost, "cost", 10, "bcrypt cost factor (4-31)")
	cmd.Flags().BoolVar(&showPassword, "show-password", false, "print each password before its hash, tab separated")

	return cmd
}

// hashAll writes one line per password. Plaintext is echoed only when
// showPassword is set; errors name the password by position.
func hashAll(w io.Writer, hasher *auth.BcryptHasher, passwords []string, showPassword bool) error {
	for i, password := range passwords {
		if err := domain.ValidatePassword(password); err != nil {
			return fmt.Errorf("password %d: %w", i+1, err)
		}
		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password %d: %w", i+1, err)
		}
		if showPassword {
			fmt.Fprintf(w, "%s\t%s\n", password, hash)
			continue
		}
		fmt.Fprintln(w, hash)
	}
	return nil
}
